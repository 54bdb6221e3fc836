package database

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/macrochef/backend/internal/models"
)

// Columns added to the recipes table after the first release. Stores created by
// older versions lack them, so each is applied defensively at startup.
var recipeColumnUpgrades = []struct {
	name string
	ddl  string
}{
	{"rating", "ALTER TABLE recipes ADD COLUMN rating INTEGER"},
	{"is_favorite", "ALTER TABLE recipes ADD COLUMN is_favorite BOOLEAN DEFAULT FALSE"},
	{"tags", "ALTER TABLE recipes ADD COLUMN tags TEXT DEFAULT '[]'"},
	{"dietary_restriction", "ALTER TABLE recipes ADD COLUMN dietary_restriction VARCHAR(50) DEFAULT 'None'"},
	{"cuisine_type", "ALTER TABLE recipes ADD COLUMN cuisine_type VARCHAR(50)"},
	{"meal_type", "ALTER TABLE recipes ADD COLUMN meal_type VARCHAR(50)"},
	{"cooking_time", "ALTER TABLE recipes ADD COLUMN cooking_time VARCHAR(50)"},
	{"difficulty_level", "ALTER TABLE recipes ADD COLUMN difficulty_level VARCHAR(50)"},
}

// Migrate brings the schema up to date. It is idempotent and safe to run on every
// startup, including against stores created by older versions of the application.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(&models.Recipe{}, &models.GenerationLog{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	migrator := db.Migrator()
	for _, col := range recipeColumnUpgrades {
		if migrator.HasColumn(&models.Recipe{}, col.name) {
			continue
		}
		if err := db.Exec(col.ddl).Error; err != nil {
			// Another process may have added the column between the check and
			// the ALTER; treat duplicates as already applied.
			if isDuplicateColumnErr(err) {
				continue
			}
			return fmt.Errorf("failed to add column %s: %w", col.name, err)
		}
		log.Info("added column to recipes table", zap.String("column", col.name))
	}

	return nil
}

func isDuplicateColumnErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate column") || strings.Contains(msg, "already exists")
}
