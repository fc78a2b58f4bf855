package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplan/backend/config"
	"github.com/pageza/mealplan/backend/internal/model"
)

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "fetches.db"),
	}

	db, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	assert.NoError(t, HealthCheck(context.Background(), db))

	entry := model.FetchLog{Provider: "edamam", Category: "lunch", Status: model.FetchOK, Candidates: 3}
	require.NoError(t, db.Create(&entry).Error)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", entry.ID.String())

	var count int64
	require.NoError(t, db.Model(&model.FetchLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db, err := New(&config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "m.db")})
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db))
	assert.NoError(t, RunMigrations(db))
	assert.True(t, db.Migrator().HasTable(&model.FetchLog{}))
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "mysql"})
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient(&config.Config{RedisURL: "://nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
