// internal/sources/places/config.go
package places

import "time"

type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxCompetitors int
	MaxSelfLookup  int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:        2 * time.Minute,
		MaxCompetitors: 10,
		MaxSelfLookup:  5,
	}
}
