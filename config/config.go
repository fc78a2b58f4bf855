package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string // "sqlite" or "postgres"
	DBPath     string // sqlite file
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Upstream recipe APIs
	EdamamAppID             string
	EdamamAppKey            string
	EdamamBaseURL           string
	EdamamRequestsPerMinute int
	RapidAPIKey             string
	RapidAPIHost            string
	RapidAPIBaseURL         string
	UpstreamTimeout         time.Duration
	UpstreamMaxRetries      int
	CacheTTL                time.Duration

	// Meal plan defaults
	PlanPolicy         string
	PlanMaxPerCategory int
	PlanConcurrency    int
	DefaultDiet        string

	// HTTP surface
	RateLimitPerMinute int
	CORSAllowedOrigins []string

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig creates a new Config instance from environment variables,
// Docker secrets and defaults, then validates it for the current environment.
func LoadConfig() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	var errs []string

	intVar := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}
	durVar := func(key string, def time.Duration) time.Duration {
		v, err := getEnvDuration(key, def)
		if err != nil {
			errs = append(errs, err.Error())
		}
		return v
	}

	cfg := &Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost: getEnvOrDefault("SERVER_HOST", "0.0.0.0"),

		DBDriver:   getEnvOrDefault("DB_DRIVER", "sqlite"),
		DBPath:     getEnvOrDefault("DB_PATH", "mealplan.db"),
		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBUser:     getSecretOrEnv("DB_USER", "db_user", "postgres"),
		DBPassword: getSecretOrEnv("DB_PASSWORD", "db_password", ""),
		DBName:     getEnvOrDefault("DB_NAME", "mealplan"),
		DBSSLMode:  getEnvOrDefault("DB_SSL_MODE", "disable"),

		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getSecretOrEnv("REDIS_PASSWORD", "redis_password", ""),
		RedisDB:       intVar("REDIS_DB", 0),
		RedisURL:      os.Getenv("REDIS_URL"),

		EdamamAppID:             getSecretOrEnv("EDAMAM_APP_ID", "edamam_app_id", ""),
		EdamamAppKey:            getSecretOrEnv("EDAMAM_APP_KEY", "edamam_app_key", ""),
		EdamamBaseURL:           getEnvOrDefault("EDAMAM_BASE_URL", "https://api.edamam.com"),
		EdamamRequestsPerMinute: intVar("EDAMAM_REQUESTS_PER_MINUTE", 10),
		RapidAPIKey:             getSecretOrEnv("RAPIDAPI_KEY", "rapidapi_key", ""),
		RapidAPIHost:            getEnvOrDefault("RAPIDAPI_HOST", "recipe-food-nutrition15.p.rapidapi.com"),
		UpstreamTimeout:         durVar("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamMaxRetries:      intVar("UPSTREAM_MAX_RETRIES", 2),
		CacheTTL:                durVar("CACHE_TTL", 15*time.Minute),

		PlanPolicy:         getEnvOrDefault("PLAN_POLICY", "top_n"),
		PlanMaxPerCategory: intVar("PLAN_MAX_PER_CATEGORY", 2),
		PlanConcurrency:    intVar("PLAN_CONCURRENCY", 4),
		DefaultDiet:        getEnvOrDefault("DEFAULT_DIET", "low-carb"),

		RateLimitPerMinute: intVar("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:8081,http://localhost:19006")),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stdout"),
	}
	cfg.RapidAPIBaseURL = getEnvOrDefault("RAPIDAPI_BASE_URL", "https://"+cfg.RapidAPIHost)

	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// PostgresDSN builds the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be a duration, got %q", key, raw)
	}
	return v, nil
}

// getSecretOrEnv prefers the environment variable and falls back to the
// Docker secret file of the same concern.
func getSecretOrEnv(envKey, secretName, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	if value := readSecret(secretName); value != "" {
		return value
	}
	return defaultValue
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
