// Package config loads sheetconv settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetconv-go/pkg/sheetconv"
)

// Environment variable names.
const (
	EnvAddr            = "SHEETCONV_ADDR"
	EnvLogLevel        = "SHEETCONV_LOG_LEVEL"
	EnvMaxUploadMB     = "SHEETCONV_MAX_UPLOAD_MB"
	EnvEmptySheets     = "SHEETCONV_EMPTY_SHEETS"
	EnvShutdownTimeout = "SHEETCONV_SHUTDOWN_TIMEOUT"
)

// DefaultEnvFile is loaded when present and no other file is named.
const DefaultEnvFile = ".env"

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Export ExportConfig
	// LogLevel is the minimum level logged.
	LogLevel logrus.Level
}

// ServerConfig holds HTTP service settings
type ServerConfig struct {
	Addr            string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// ExportConfig holds export defaults
type ExportConfig struct {
	EmptySheets sheetconv.EmptySheetPolicy
}

// Options returns the export options the configuration selects.
func (c *Config) Options() sheetconv.Options {
	opts := sheetconv.DefaultOptions()
	opts.EmptySheets = c.Export.EmptySheets
	return opts
}

// Load reads an env file into the process environment and then builds the
// configuration from environment variables. A named envFile must exist;
// the default .env file is optional. Variables already set in the
// environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", DefaultEnvFile, err)
	}

	return FromEnv()
}

// FromEnv builds the configuration from environment variables alone.
func FromEnv() (*Config, error) {
	level, err := logrus.ParseLevel(getEnvOrDefault(EnvLogLevel, "info"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	maxUploadMB, err := getEnvInt(EnvMaxUploadMB, 32)
	if err != nil {
		return nil, err
	}
	if maxUploadMB <= 0 {
		return nil, fmt.Errorf("%s: must be positive, got %d", EnvMaxUploadMB, maxUploadMB)
	}

	shutdown, err := getEnvDuration(EnvShutdownTimeout, 10*time.Second)
	if err != nil {
		return nil, err
	}

	policy, err := sheetconv.ParseEmptySheetPolicy(os.Getenv(EnvEmptySheets))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvEmptySheets, err)
	}

	return &Config{
		Server: ServerConfig{
			Addr:            getEnvOrDefault(EnvAddr, ":8080"),
			MaxUploadBytes:  int64(maxUploadMB) << 20,
			ShutdownTimeout: shutdown,
		},
		Export: ExportConfig{
			EmptySheets: policy,
		},
		LogLevel: level,
	}, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
