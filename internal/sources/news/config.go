// internal/sources/news/config.go
package news

import "time"

type Config struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxArticles int
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     2 * time.Minute,
		MaxArticles: 8,
	}
}
