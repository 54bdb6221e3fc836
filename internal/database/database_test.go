package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/macrochef/backend/config"
	"github.com/macrochef/backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: ":memory:",
	}
	db, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestNewSQLite(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, HealthCheck(context.Background(), db))
}

func TestNewUnknownDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "oracle"}
	_, err := New(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db, zap.NewNop()))
	// Running again must not fail on existing columns
	require.NoError(t, Migrate(db, zap.NewNop()))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.Recipe{}))
	assert.True(t, migrator.HasTable(&models.GenerationLog{}))
	for _, col := range recipeColumnUpgrades {
		assert.True(t, migrator.HasColumn(&models.Recipe{}, col.name), col.name)
	}
}

func TestMigrateUpgradesLegacySchema(t *testing.T) {
	db := openTestDB(t)

	// A store created before favorites, ratings, tags and categories existed
	require.NoError(t, db.Exec(`
		CREATE TABLE recipes (
			id TEXT PRIMARY KEY,
			created_at DATETIME,
			updated_at DATETIME,
			title VARCHAR(255) NOT NULL,
			servings INTEGER NOT NULL,
			ingredients TEXT NOT NULL DEFAULT '[]',
			steps TEXT NOT NULL DEFAULT '[]',
			nutrition_per_recipe TEXT NOT NULL DEFAULT '{}',
			nutrition_per_serving TEXT NOT NULL DEFAULT '{}'
		)
	`).Error)

	require.NoError(t, Migrate(db, zap.NewNop()))

	migrator := db.Migrator()
	for _, col := range recipeColumnUpgrades {
		assert.True(t, migrator.HasColumn(&models.Recipe{}, col.name), col.name)
	}
}
