package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/macrochef/backend/internal/models"
)

// RecipeSpec is the validated shape of a generated recipe before persistence
type RecipeSpec struct {
	Title              string              `json:"title"`
	Servings           int                 `json:"servings"`
	Ingredients        []models.Ingredient `json:"ingredients_grams"`
	Steps              []string            `json:"steps"`
	DietaryRestriction string              `json:"dietary_restriction"`
	CuisineType        string              `json:"cuisine_type,omitempty"`
	MealType           string              `json:"meal_type,omitempty"`
	CookingTime        string              `json:"cooking_time,omitempty"`
	DifficultyLevel    string              `json:"difficulty_level,omitempty"`
}

// QualityReport scores how plausible a repaired recipe is. Derived fresh from a
// RecipeSpec every time; never stored as authoritative state.
type QualityReport struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

// ValidationError reports a single schema violation with its field path
type ValidationError struct {
	Field      string
	Constraint string
	Value      interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid recipe: field %q %s (got %v)", e.Field, e.Constraint, e.Value)
}

// Closed vocabularies for the categorical fields. The dietary restriction is
// mandatory after coercion; the other four may be absent.
var (
	DietaryRestrictions = []string{"None", "Vegetarian", "Vegan", "Keto", "Paleo"}
	CuisineTypes        = []string{"Italian", "Asian", "Mexican", "Mediterranean", "American", "Indian", "French", "Thai", "None"}
	MealTypes           = []string{"Breakfast", "Lunch", "Dinner", "Snacks", "Desserts"}
	CookingTimes        = []string{"Quick (15min)", "Medium (30min)", "Long (60min+)"}
	DifficultyLevels    = []string{"Beginner", "Intermediate", "Advanced"}
)

const (
	MinServings = 1
	MaxServings = 12
)

// ValidateRecipe turns an extracted JSON object into a RecipeSpec. It is a pure
// transform: the input map is never mutated. The dietary restriction is coerced
// to "None" when missing, null or blank before the strict enum check, because
// models are observed to omit the field despite instructions.
func ValidateRecipe(raw map[string]interface{}) (*RecipeSpec, error) {
	spec := &RecipeSpec{}

	title, err := stringField(raw, "title", true)
	if err != nil {
		return nil, err
	}
	spec.Title = title

	servings, err := intField(raw, "servings")
	if err != nil {
		return nil, err
	}
	if servings < MinServings || servings > MaxServings {
		return nil, &ValidationError{Field: "servings", Constraint: fmt.Sprintf("must be between %d and %d", MinServings, MaxServings), Value: servings}
	}
	spec.Servings = servings

	ingredients, err := ingredientsField(raw)
	if err != nil {
		return nil, err
	}
	spec.Ingredients = ingredients

	steps, err := stepsField(raw)
	if err != nil {
		return nil, err
	}
	spec.Steps = steps

	// Coercion happens before the enum check, never instead of it
	dietary := coerceDietary(raw["dietary_restriction"])
	if !containsString(DietaryRestrictions, dietary) {
		return nil, &ValidationError{Field: "dietary_restriction", Constraint: fmt.Sprintf("must be one of %v", DietaryRestrictions), Value: dietary}
	}
	spec.DietaryRestriction = dietary

	if spec.CuisineType, err = optionalEnumField(raw, "cuisine_type", CuisineTypes); err != nil {
		return nil, err
	}
	if spec.MealType, err = optionalEnumField(raw, "meal_type", MealTypes); err != nil {
		return nil, err
	}
	if spec.CookingTime, err = optionalEnumField(raw, "cooking_time", CookingTimes); err != nil {
		return nil, err
	}
	if spec.DifficultyLevel, err = optionalEnumField(raw, "difficulty_level", DifficultyLevels); err != nil {
		return nil, err
	}

	return spec, nil
}

func coerceDietary(v interface{}) string {
	if v == nil {
		return "None"
	}
	s, ok := v.(string)
	if !ok {
		return "None"
	}
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

func stringField(raw map[string]interface{}, field string, required bool) (string, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		if required {
			return "", &ValidationError{Field: field, Constraint: "is required", Value: nil}
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: field, Constraint: "must be a string", Value: v}
	}
	if required && strings.TrimSpace(s) == "" {
		return "", &ValidationError{Field: field, Constraint: "must not be empty", Value: s}
	}
	return s, nil
}

func intField(raw map[string]interface{}, field string) (int, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return 0, &ValidationError{Field: field, Constraint: "is required", Value: nil}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &ValidationError{Field: field, Constraint: "must be an integer", Value: v}
	}
	if f != math.Trunc(f) {
		return 0, &ValidationError{Field: field, Constraint: "must be an integer", Value: v}
	}
	return int(f), nil
}

func ingredientsField(raw map[string]interface{}) ([]models.Ingredient, error) {
	// The prompt asks for ingredients_grams, but models occasionally shorten it
	field := "ingredients_grams"
	v, ok := raw[field]
	if !ok {
		field = "ingredients"
		v = raw[field]
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, &ValidationError{Field: field, Constraint: "must be a list of {name, grams} objects", Value: v}
	}
	if len(list) == 0 {
		return nil, &ValidationError{Field: field, Constraint: "must not be empty", Value: list}
	}

	ingredients := make([]models.Ingredient, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, &ValidationError{Field: fmt.Sprintf("%s[%d]", field, i), Constraint: "must be a {name, grams} object", Value: item}
		}
		name, ok := obj["name"].(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("%s[%d].name", field, i), Constraint: "must be a non-empty string", Value: obj["name"]}
		}
		grams, ok := obj["grams"].(float64)
		if !ok {
			return nil, &ValidationError{Field: fmt.Sprintf("%s[%d].grams", field, i), Constraint: "must be a number", Value: obj["grams"]}
		}
		if grams < 0 {
			return nil, &ValidationError{Field: fmt.Sprintf("%s[%d].grams", field, i), Constraint: "must not be negative", Value: grams}
		}
		ingredients = append(ingredients, models.Ingredient{Name: name, Grams: grams})
	}
	return ingredients, nil
}

func stepsField(raw map[string]interface{}) ([]string, error) {
	v, ok := raw["steps"]
	if !ok || v == nil {
		return nil, &ValidationError{Field: "steps", Constraint: "is required", Value: nil}
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, &ValidationError{Field: "steps", Constraint: "must be a list of strings", Value: v}
	}

	steps := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, &ValidationError{Field: fmt.Sprintf("steps[%d]", i), Constraint: "must be a string", Value: item}
		}
		if strings.TrimSpace(s) == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("steps[%d]", i), Constraint: "must not be empty", Value: s}
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func optionalEnumField(raw map[string]interface{}, field string, allowed []string) (string, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: field, Constraint: fmt.Sprintf("must be one of %v", allowed), Value: v}
	}
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	if !containsString(allowed, s) {
		return "", &ValidationError{Field: field, Constraint: fmt.Sprintf("must be one of %v", allowed), Value: s}
	}
	return s, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
