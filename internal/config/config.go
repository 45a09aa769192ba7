// Package config loads the application configuration from an optional
// YAML file plus environment variables (an .env file is honored when
// present). Flags parsed in main override both.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int    `yaml:"port" validate:"gt=0"`
	Env  string `yaml:"env" validate:"oneof=development staging production"`
}

// DirectoryConfig points at the external route/stop/schedule directory.
// An empty BaseURL selects the built-in in-memory directory, which is
// only useful for development.
type DirectoryConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// LoggingConfig selects the log output shape.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Directory DirectoryConfig `yaml:"directory"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Default returns the development defaults used when no file exists.
func Default() Config {
	return Config{
		Server:    ServerConfig{Port: 4000, Env: "development"},
		Directory: DirectoryConfig{TimeoutMS: 10000},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads the configuration file at path (missing file is fine, the
// defaults apply), overlays environment variables, and validates the
// result. Environment variables: WORKSPACE_PORT, WORKSPACE_ENV,
// WORKSPACE_DIRECTORY_URL, WORKSPACE_LOG_LEVEL.
func Load(path string) (Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env + defaults
		case err != nil:
			return Config{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if v := os.Getenv("WORKSPACE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WORKSPACE_PORT %q", v)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("WORKSPACE_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("WORKSPACE_DIRECTORY_URL"); v != "" {
		cfg.Directory.BaseURL = v
	}
	if v := os.Getenv("WORKSPACE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
