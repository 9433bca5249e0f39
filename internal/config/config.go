// Package config loads application configuration.
// Priority: env vars → config.toml → defaults.
package config

import "os"

// Config holds application configuration loaded from environment and file.
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":3001")
	ServerPort string

	// Environment is the deployment mode ("development" or "production").
	// Production suppresses upstream error details in responses.
	Environment string

	// MockMode bypasses all upstream calls and fabricates responses
	MockMode bool

	// DBPath is the SQLite file backing the request/usage log
	DBPath string

	// LogLevel is the slog level name ("debug", "info", "warn", "error")
	LogLevel string

	// Providers carries optional per-provider URL/model overrides from the
	// config file. Env vars still win; see provider.LoadProfiles.
	Providers map[string]ProviderFile

	// Prompts carries optional persona prompt overrides from the config file
	Prompts map[string]string
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	fileConfig, _ := LoadFile() // Ignore error, use defaults

	return &Config{
		ServerPort:  normalizePort(getEnvOrFile("PORT", fileConfig.ServerPort, "3001")),
		Environment: getEnvOrFile("APP_ENV", fileConfig.Environment, "development"),
		MockMode:    getEnvBool("MOCK_MODE", false),
		DBPath:      getEnvOrFile("DB_PATH", fileConfig.DBPath, DBPath()),
		LogLevel:    getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, "info"),
		Providers:   fileConfig.Providers,
		Prompts:     fileConfig.Prompts,
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// normalizePort accepts both "3001" and ":3001" forms.
func normalizePort(port string) string {
	if port == "" {
		return ":3001"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBool parses a boolean environment variable.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
