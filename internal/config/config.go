package config

import (
	"os"
	"strconv"
	"strings"

	"mosaic/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Identity  IdentityConfig
	Dashboard DashboardConfig
	Profiling ProfilingConfig
	Log       LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig points at the tabular file loaded at startup
type DataConfig struct {
	File  string
	Sheet string
}

// IdentityConfig names the side-table columns used for enrichment
type IdentityConfig struct {
	KeyColumn  string
	NameColumn string
}

// DashboardConfig holds page and chart labels
type DashboardConfig struct {
	Title      string
	ChartTitle string
	NotesFile  string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Identity:  *loadIdentityConfig(),
		Dashboard: *loadDashboardConfig(),
		Profiling: *loadProfilingConfig(),
		Log:       LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8050"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:  getEnvOrDefault("DATA_FILE", "simple.csv"),
		Sheet: getEnvOrDefault("DATA_SHEET", ""),
	}
}

func loadIdentityConfig() *IdentityConfig {
	return &IdentityConfig{
		KeyColumn:  getEnvOrDefault("IDENTITY_KEY_COLUMN", "address"),
		NameColumn: getEnvOrDefault("IDENTITY_NAME_COLUMN", "ens_name"),
	}
}

func loadDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		Title:      getEnvOrDefault("DASHBOARD_TITLE", "Optimism Airdrop Criteria"),
		ChartTitle: getEnvOrDefault("CHART_TITLE", "Airdrop Criteria Analysis"),
		NotesFile:  getEnvOrDefault("NOTES_FILE", ""),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Data.File) == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be a number, got " + strconv.Quote(config.Server.Port))
	}
	if config.Profiling.Enabled {
		if _, err := strconv.Atoi(config.Profiling.Port); err != nil {
			return errors.ConfigInvalid("PPROF_PORT must be a number, got " + strconv.Quote(config.Profiling.Port))
		}
		if config.Profiling.Port == config.Server.Port {
			return errors.ConfigInvalid("PPROF_PORT must differ from PORT")
		}
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
