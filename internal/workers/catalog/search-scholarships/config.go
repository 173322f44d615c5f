// internal/workers/catalog/search-scholarships/config.go
package searchscholarships

import "time"

type Config struct {
	Timeout  time.Duration
	MaxLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		MaxLimit: 50,
	}
}
