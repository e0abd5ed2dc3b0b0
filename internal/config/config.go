package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fitcoach/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	Plan     PlanConfig
	Log      LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	UIPort          string
	GinMode         string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}

// AIConfig holds model call settings
type AIConfig struct {
	APIKey              string
	Model               string
	Temperature         float64
	MaxTokens           int
	Timeout             time.Duration
	MaxConcurrent       int64
	FallbackToHeuristic bool
}

// PlanConfig holds the realism-adjustment knobs
type PlanConfig struct {
	DeficitStrategy  string
	SurplusKcal      float64
	ActivityBurnKcal float64
}

// LogConfig holds logging settings
type LogConfig struct {
	Development bool
}

// Load reads configuration from an optional config file plus environment
// variables, with env taking precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Env-only keys need a registered default so AutomaticEnv picks them up.
	v.SetDefault("database.url", "")
	v.SetDefault("ai.apikey", "")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.uiport", "8081")
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.shutdowntimeout", 10*time.Second)
	v.SetDefault("database.maxopenconns", 20)
	v.SetDefault("database.maxidleconns", 10)
	v.SetDefault("database.connlifetime", 5*time.Minute)
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.maxtokens", 2500)
	v.SetDefault("ai.timeout", 120*time.Second)
	v.SetDefault("ai.maxconcurrent", 4)
	v.SetDefault("ai.fallbacktoheuristic", true)
	v.SetDefault("plan.deficitstrategy", "least_aggressive")
	v.SetDefault("plan.surpluskcal", 300)
	v.SetDefault("plan.activityburnkcal", 400)
	v.SetDefault("log.development", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; env vars alone are enough.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Validate checks settings that have no usable zero value.
func (c *Config) Validate(requireAI, requireDB bool) error {
	if requireAI && c.AI.APIKey == "" {
		return errors.ConfigInvalid("AI_APIKEY is required")
	}
	if requireDB && c.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	return nil
}
