package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: scholarship-workers
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
  postgres:
    host: localhost
    database: scholarships
    user: finder
    password: ${TEST_PG_PASSWORD}
catalog:
  source: file
  path: configs/scholarships.json
workers:
  find-scholarships:
    enabled: true
    max_jobs_active: 8
  capture-lead:
    enabled: false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 2.0, cfg.Finder.MaxBonusTN)
	assert.Equal(t, 20.0, cfg.Finder.MaxBonusDGNL)
	assert.Equal(t, "scholarships", cfg.Catalog.SearchIndex)
	assert.Equal(t, "json", cfg.Logging.Format)

	worker := GetWorkerConfig(cfg, "find-scholarships")
	assert.True(t, worker.Enabled)
	assert.Equal(t, 8, worker.MaxJobsActive)
	assert.Equal(t, 30000, worker.Timeout)
	assert.Equal(t, 3, worker.MaxRetries)

	assert.False(t, IsWorkerEnabled(cfg, "capture-lead"))
	assert.True(t, IsWorkerEnabled(cfg, "search-scholarships"))
}

func TestLoadFromFile_EnvironmentOverride(t *testing.T) {
	t.Setenv("DATABASE_REDIS_ADDRESS", "redis.internal:6380")
	t.Setenv("CATALOG_CACHE_TTL", "300")

	cfg, err := LoadFromFile(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6380", cfg.Database.Redis.Address)
	assert.Equal(t, 300*time.Second, GetSeconds(cfg.Catalog.CacheTTL))
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name: "missing broker",
			content: `
database:
  redis:
    address: localhost:6379
`,
			errMsg: "camunda.broker_address is required",
		},
		{
			name: "broker not needed when camunda disabled",
			content: `
camunda:
  enabled: false
database:
  redis:
    address: localhost:6379
`,
		},
		{
			name: "missing redis",
			content: `
camunda:
  broker_address: localhost:26500
`,
			errMsg: "database.redis.address is required",
		},
		{
			name: "unknown catalog source",
			content: `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
catalog:
  source: s3
`,
			errMsg: "catalog.source must be",
		},
		{
			name: "postgres catalog needs a host",
			content: `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
catalog:
  source: postgres
`,
			errMsg: "database.postgres.host is required",
		},
		{
			name: "email needs addresses",
			content: `
camunda:
  broker_address: localhost:26500
database:
  redis:
    address: localhost:6379
lead:
  email_enabled: true
`,
			errMsg: "lead.admissions_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.content))
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", p.GetDSN())
}
