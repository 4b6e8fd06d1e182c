package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	// HTTP Server
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8081"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Storage
	DataBackend  string `env:"DATA_BACKEND" envDefault:"file"`
	DataDir      string `env:"DATA_DIR" envDefault:"./data"`
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/expenses.db"`
	PostgresDSN  string `env:"POSTGRES_DSN"`

	// Export
	CSVQuoting bool `env:"CSV_QUOTING" envDefault:"false"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var validBackends = []string{"memory", "file", "sqlite", "postgres"}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate listen address
	if _, port, err := net.SplitHostPort(c.ListenAddr); err != nil {
		errors = append(errors, fmt.Sprintf("invalid listen address '%s': %v", c.ListenAddr, err))
	} else if p, err := strconv.Atoi(port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", port))
	} else if p < 1 || p > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", p))
	}

	if !contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "file":
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using file backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			errors = append(errors, "POSTGRES_DSN is required when using postgres backend")
		} else if !strings.HasPrefix(c.PostgresDSN, "postgres://") && !strings.HasPrefix(c.PostgresDSN, "postgresql://") {
			errors = append(errors, "invalid POSTGRES_DSN scheme: must be 'postgres' or 'postgresql'")
		}
	}

	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}

	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	} else if c.ShutdownTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at most 5 minutes", c.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
