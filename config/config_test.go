package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at a clean environment and an empty secrets dir.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "SERVER_HOST", "DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSL_MODE", "EDAMAM_REQUESTS_PER_MINUTE", "UPSTREAM_MAX_RETRIES", "DEFAULT_DIET",
		"REDIS_URL", "REDIS_DB", "EDAMAM_APP_ID", "EDAMAM_APP_KEY", "EDAMAM_BASE_URL",
		"RAPIDAPI_KEY", "RAPIDAPI_HOST", "RAPIDAPI_BASE_URL", "UPSTREAM_TIMEOUT", "CACHE_TTL",
		"PLAN_POLICY", "PLAN_MAX_PER_CATEGORY", "PLAN_CONCURRENCY", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "mealplan.db", cfg.DBPath)
	assert.Equal(t, "https://api.edamam.com", cfg.EdamamBaseURL)
	assert.Equal(t, "https://recipe-food-nutrition15.p.rapidapi.com", cfg.RapidAPIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "top_n", cfg.PlanPolicy)
	assert.Equal(t, 2, cfg.PlanMaxPerCategory)
	assert.Equal(t, "low-carb", cfg.DefaultDiet)
	assert.Equal(t, []string{"http://localhost:8081", "http://localhost:19006"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "planner")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("EDAMAM_APP_ID", "app-id")
	t.Setenv("EDAMAM_APP_KEY", "app-key")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("PLAN_POLICY", "random")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "app-id", cfg.EdamamAppID)
	assert.Equal(t, "app-key", cfg.EdamamAppKey)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "random", cfg.PlanPolicy)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "host=db port=5432 user=planner password=secret dbname=mealplan sslmode=disable", cfg.PostgresDSN())
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	isolate(t)
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edamam_app_id"), []byte("secret-id\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "edamam_app_key"), []byte(" secret-key "), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret-id", cfg.EdamamAppID)
	assert.Equal(t, "secret-key", cfg.EdamamAppKey)
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	isolate(t)
	t.Setenv("PLAN_CONCURRENCY", "many")
	t.Setenv("CACHE_TTL", "forever")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PLAN_CONCURRENCY must be an integer")
	assert.Contains(t, err.Error(), "CACHE_TTL must be a duration")
}

func TestValidateConfig(t *testing.T) {
	t.Run("unknown policy and driver", func(t *testing.T) {
		isolate(t)
		t.Setenv("PLAN_POLICY", "best")
		t.Setenv("DB_DRIVER", "mysql")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown policy "best"`)
		assert.Contains(t, err.Error(), `unsupported driver "mysql"`)
	})

	t.Run("production requires edamam credentials", func(t *testing.T) {
		isolate(t)
		t.Setenv("ENV", "production")
		assert.True(t, IsProduction())

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EDAMAM_APP_ID: is required in production")
		assert.Contains(t, err.Error(), "EDAMAM_APP_KEY: is required in production")
	})

	t.Run("ci detected from CI variable", func(t *testing.T) {
		isolate(t)
		t.Setenv("CI", "true")
		assert.Equal(t, CI, GetEnvironment())
		assert.False(t, IsProduction())

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is required in ci")
	})
}
