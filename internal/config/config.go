// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	// Backend is "memory" or "firestore".
	Backend   string
	ProjectID string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from an optional config file and the
// environment. Env var overrides use the FINCOACH_ prefix, e.g.
// FINCOACH_SERVER_PORT.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8111")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:1234"})
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.project_id", "")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/fincoach")

	v.SetEnvPrefix("FINCOACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env carry it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Port:           v.GetString("server.port"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
		},
		Store: StoreConfig{
			Backend:   v.GetString("store.backend"),
			ProjectID: v.GetString("store.project_id"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "memory":
	case "firestore":
		if c.Store.ProjectID == "" {
			return fmt.Errorf("store.project_id is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
