package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationLog is one entry of the append-only generation audit trail. Entries are
// never mutated or deleted individually; they only go away in a bulk clear together
// with all recipes.
type GenerationLog struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	InputIngredients string     `gorm:"type:text;not null" json:"input_ingredients"`
	RecipeID         *uuid.UUID `gorm:"type:uuid" json:"recipe_id,omitempty"` // weak link, no FK cascade
	Success          bool       `gorm:"not null" json:"success"`
	ErrorMessage     string     `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// TableName returns the table name for the GenerationLog model
func (GenerationLog) TableName() string {
	return "recipe_history"
}
