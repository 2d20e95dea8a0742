package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Upstream clinic API
	BackendBaseURL   string
	BackendAuthToken string

	// Background refresh of mirrored collections
	RefreshEnabled  bool
	RefreshInterval time.Duration

	// Snapshot cache
	RedisAddr     string
	RedisPassword string
	RedisEnabled  bool

	// Session tokens issued by the auth service
	SessionJWTSecret string

	// Clinic timezone used for appointment timestamps
	ClinicTimezone string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		BackendBaseURL:   getEnv("BACKEND_BASE_URL", "https://dental-backend-htv7.onrender.com"),
		BackendAuthToken: getEnv("BACKEND_AUTH_TOKEN", ""),

		RefreshEnabled:  getEnvAsBool("REFRESH_ENABLED", true),
		RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", 5*time.Minute),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", false),

		SessionJWTSecret: getEnv("SESSION_JWT_SECRET", ""),

		ClinicTimezone: getEnv("CLINIC_TIMEZONE", "Local"),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", nil),
	}
}

// Location resolves the configured clinic timezone; "Local" or an
// unloadable zone means the process-local zone.
func (c *Config) Location() *time.Location {
	if c.ClinicTimezone == "" || c.ClinicTimezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping
// empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
