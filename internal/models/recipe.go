package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is a custom type for handling string slices stored as JSON text
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Ingredient is one recipe ingredient with its quantity in grams
type Ingredient struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

// IngredientList is a custom type for handling ingredient slices stored as JSON text
type IngredientList []Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// MacroMap is a custom type for handling macro snapshots stored as JSON text
type MacroMap map[string]float64

// Value implements the driver.Valuer interface
func (m MacroMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *MacroMap) Scan(value interface{}) error {
	if value == nil {
		*m = MacroMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Recipe is a generated recipe together with the macro snapshots captured at save
// time. The snapshots are deliberately never recomputed after saving.
type Recipe struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	Title               string         `gorm:"size:255;not null" json:"title"`
	Servings            int            `gorm:"not null" json:"servings"`
	Ingredients         IngredientList `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Steps               StringList     `gorm:"type:text;not null;default:'[]'" json:"steps"`
	Tags                StringList     `gorm:"type:text;default:'[]'" json:"tags"`
	NutritionPerRecipe  MacroMap       `gorm:"type:text;not null;default:'{}'" json:"nutrition_per_recipe"`
	NutritionPerServing MacroMap       `gorm:"type:text;not null;default:'{}'" json:"nutrition_per_serving"`
	Rating              *int           `json:"rating,omitempty"`
	IsFavorite          bool           `gorm:"default:false" json:"is_favorite"`
	DietaryRestriction  string         `gorm:"size:50;default:'None'" json:"dietary_restriction"`
	CuisineType         *string        `gorm:"size:50" json:"cuisine_type,omitempty"`
	MealType            *string        `gorm:"size:50" json:"meal_type,omitempty"`
	CookingTime         *string        `gorm:"size:50" json:"cooking_time,omitempty"`
	DifficultyLevel     *string        `gorm:"size:50" json:"difficulty_level,omitempty"`
}

// TableName returns the table name for the Recipe model
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an id when none is set; sqlite has no uuid default
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
