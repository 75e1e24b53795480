// Package config loads application settings from environment variables
// and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds settings for both the terminal client and the API server.
type Config struct {
	Client ClientConfig
	Server ServerConfig
	JWT    JWTConfig
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// ClientConfig holds the terminal client's settings.
type ClientConfig struct {
	// APIBaseURL is the root of the task-manager REST API.
	APIBaseURL string
	// StateFile is where the session credential and identity persist.
	StateFile string
	// LogFile receives client logs; the TUI owns the terminal.
	LogFile string
	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration
}

// ServerConfig holds the reference API server's settings.
type ServerConfig struct {
	// Addr is the listen address (host:port).
	Addr string
	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string
}

// JWTConfig holds token signing settings for the server.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Load reads configuration, applying defaults first, then the optional
// .env file, then environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; environment variables still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read .env: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		Client: ClientConfig{
			APIBaseURL:     v.GetString("API_BASE_URL"),
			StateFile:      v.GetString("STATE_FILE"),
			LogFile:        v.GetString("CLIENT_LOG_FILE"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		},
		Server: ServerConfig{
			Addr:        v.GetString("SERVER_ADDR"),
			DatabaseDSN: v.GetString("DATABASE_DSN"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	stateDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		stateDir = filepath.Join(home, ".task-manager")
	}

	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("STATE_FILE", filepath.Join(stateDir, "session.json"))
	v.SetDefault("CLIENT_LOG_FILE", filepath.Join(stateDir, "client.log"))
	v.SetDefault("REQUEST_TIMEOUT", "10s")

	v.SetDefault("SERVER_ADDR", "localhost:8080")
	v.SetDefault("DATABASE_DSN", "")

	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("JWT_ISSUER", "task-manager")

	v.SetDefault("LOG_LEVEL", "info")
}

// Validate checks the loaded values for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.Client.APIBaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("invalid JWT TTL: %s", c.JWT.TTL)
	}
	return nil
}
