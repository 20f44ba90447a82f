// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // env-specific overlay is optional

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "signal-server"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30
	}
	if cfg.Server.WriteTimeout == 0 {
		// Generation calls block on external providers; the write timeout
		// has to cover the slowest adapter path.
		cfg.Server.WriteTimeout = 300
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "industry-intelligence"
	}

	if cfg.Sources.Places.TimeoutSeconds == 0 {
		cfg.Sources.Places.TimeoutSeconds = 120
	}
	if cfg.Sources.Places.MaxCompetitors == 0 {
		cfg.Sources.Places.MaxCompetitors = 10
	}
	if cfg.Sources.Places.MaxSelfLookup == 0 {
		cfg.Sources.Places.MaxSelfLookup = 5
	}
	if cfg.Sources.News.TimeoutSeconds == 0 {
		cfg.Sources.News.TimeoutSeconds = 120
	}
	if cfg.Sources.News.MaxArticles == 0 {
		cfg.Sources.News.MaxArticles = 8
	}
	if cfg.Sources.Events.TimeoutSeconds == 0 {
		cfg.Sources.Events.TimeoutSeconds = 180
	}
	if cfg.Sources.Events.MaxEvents == 0 {
		cfg.Sources.Events.MaxEvents = 12
	}
	if cfg.Sources.Events.MinRelevance == 0 {
		cfg.Sources.Events.MinRelevance = 20
	}
	if cfg.Sources.Events.MinSpacingSeconds == 0 {
		cfg.Sources.Events.MinSpacingSeconds = 3
	}
	if cfg.Sources.Events.DailyCallBudget == 0 {
		cfg.Sources.Events.DailyCallBudget = 20
	}

	if cfg.Narrative.TimeoutSeconds == 0 {
		cfg.Narrative.TimeoutSeconds = 120
	}
	if cfg.Narrative.MaxTokens == 0 {
		cfg.Narrative.MaxTokens = 1024
	}
	if cfg.Narrative.Temperature == 0 {
		cfg.Narrative.Temperature = 0.7
	}
	if cfg.Narrative.MaxRetries == 0 {
		cfg.Narrative.MaxRetries = 2
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Narrative.BaseURL == "" {
		return fmt.Errorf("narrative.base_url is required")
	}
	if cfg.Sources.Events.MinSpacingSeconds < 0 {
		return fmt.Errorf("sources.events.min_spacing_seconds must not be negative")
	}
	if cfg.Sources.Events.DailyCallBudget < 0 {
		return fmt.Errorf("sources.events.daily_call_budget must not be negative")
	}
	return nil
}
