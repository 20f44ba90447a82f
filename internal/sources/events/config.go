// internal/sources/events/config.go
package events

import "time"

type Config struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	MaxEvents       int
	MinRelevance    int
	MinSpacing      time.Duration
	DailyCallBudget int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:         2 * time.Minute,
		MaxEvents:       12,
		MinRelevance:    20,
		MinSpacing:      3 * time.Second,
		DailyCallBudget: 20,
	}
}
