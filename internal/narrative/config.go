// internal/narrative/config.go
package narrative

import "time"

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	MaxRetries  int
}

func DefaultConfig() *Config {
	return &Config{
		Model:       "gpt-4o-mini",
		Timeout:     45 * time.Second,
		MaxTokens:   1024,
		Temperature: 0.7,
		MaxRetries:  2,
	}
}
