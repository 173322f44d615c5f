// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the root of config.yaml.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	HTTP     HTTPConfig              `mapstructure:"http"`
	Catalog  CatalogConfig           `mapstructure:"catalog"`
	Finder   FinderConfig            `mapstructure:"finder"`
	Compare  CompareConfig           `mapstructure:"compare"`
	Lead     LeadConfig              `mapstructure:"lead"`
	AWS      AWSConfig               `mapstructure:"aws"`
	Registry RegistryConfig          `mapstructure:"registry"`
	Logging  LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

// Enabled reports whether a search cluster is configured.
func (e ElasticsearchConfig) Enabled() bool {
	return len(e.Addresses) > 0
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig tunes a single job worker. Timeout is in milliseconds.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// HTTPConfig configures the public API server.
type HTTPConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout int      `mapstructure:"request_timeout"` // milliseconds
}

const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

// CatalogConfig selects where scholarships are loaded from.
type CatalogConfig struct {
	Source      string `mapstructure:"source"`
	Path        string `mapstructure:"path"`
	CacheTTL    int    `mapstructure:"cache_ttl"` // seconds, 0 disables the redis cache
	SearchIndex string `mapstructure:"search_index"`
}

type FinderConfig struct {
	ShareBaseURL string  `mapstructure:"share_base_url"`
	MaxBonusTN   float64 `mapstructure:"max_bonus_tn"`
	MaxBonusDGNL float64 `mapstructure:"max_bonus_dgnl"`
}

type CompareConfig struct {
	TTL int `mapstructure:"ttl"` // seconds
}

// LeadConfig configures the intake list and lead notifications.
type LeadConfig struct {
	IntakeTTL       int    `mapstructure:"intake_ttl"` // seconds
	AdmissionsEmail string `mapstructure:"admissions_email"`
	FromEmail       string `mapstructure:"from_email"`
	EmailEnabled    bool   `mapstructure:"email_enabled"`
	SMSEnabled      bool   `mapstructure:"sms_enabled"`
	SMSSenderID     string `mapstructure:"sms_sender_id"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetSeconds converts seconds from config to time.Duration
func GetSeconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
