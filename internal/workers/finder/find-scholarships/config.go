// internal/workers/finder/find-scholarships/config.go
package findscholarships

import "time"

type Config struct {
	Timeout      time.Duration
	ShareBaseURL string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
