package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default configuration values applied when neither the environment nor a
// config file provides a setting.
const (
	defaultPort                 = 8080
	defaultLogLevel             = "info"
	defaultTokenLifetimeMinutes = 30
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// TASKDECK_ prefix with underscores for nesting (e.g. TASKDECK_AUTH_JWT_SECRET)
// and take precedence over file values. The populated Config is validated
// before being returned.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("auth.token_lifetime_minutes", defaultTokenLifetimeMinutes)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment can carry
		// everything. Any other read error is fatal.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys through Unmarshal;
	// binding each known key makes the environment authoritative.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
