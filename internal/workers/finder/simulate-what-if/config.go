// internal/workers/finder/simulate-what-if/config.go
package simulatewhatif

import "time"

type Config struct {
	Timeout      time.Duration
	MaxBonusTN   float64
	MaxBonusDGNL float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		MaxBonusTN:   2,
		MaxBonusDGNL: 20,
	}
}
