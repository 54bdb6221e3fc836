package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrochef/backend/internal/models"
)

func rawRecipe(t *testing.T, mutate func(map[string]interface{})) map[string]interface{} {
	t.Helper()
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(validRecipeJSON), &raw))
	raw["dietary_restriction"] = "None"
	if mutate != nil {
		mutate(raw)
	}
	return raw
}

func TestValidateRecipeOK(t *testing.T) {
	spec, err := ValidateRecipe(rawRecipe(t, func(raw map[string]interface{}) {
		raw["cuisine_type"] = "Asian"
		raw["meal_type"] = "Dinner"
		raw["cooking_time"] = "Medium (30min)"
		raw["difficulty_level"] = "Beginner"
	}))
	require.NoError(t, err)

	assert.Equal(t, "Chicken Rice Bowl", spec.Title)
	assert.Equal(t, 2, spec.Servings)
	assert.Equal(t, []models.Ingredient{
		{Name: "chicken breast", Grams: 300},
		{Name: "rice", Grams: 200},
	}, spec.Ingredients)
	assert.Len(t, spec.Steps, 3)
	assert.Equal(t, "None", spec.DietaryRestriction)
	assert.Equal(t, "Asian", spec.CuisineType)
	assert.Equal(t, "Medium (30min)", spec.CookingTime)
}

func TestValidateRecipeDietaryCoercion(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"absent", "ABSENT"},
		{"null", nil},
		{"blank", "  "},
		{"non-string", float64(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rawRecipe(t, nil)
			if tt.value == "ABSENT" {
				delete(raw, "dietary_restriction")
			} else {
				raw["dietary_restriction"] = tt.value
			}
			spec, err := ValidateRecipe(raw)
			require.NoError(t, err)
			assert.Equal(t, "None", spec.DietaryRestriction)
		})
	}
}

func TestValidateRecipeRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		field  string
	}{
		{"missing title", func(r map[string]interface{}) { delete(r, "title") }, "title"},
		{"blank title", func(r map[string]interface{}) { r["title"] = "   " }, "title"},
		{"servings zero", func(r map[string]interface{}) { r["servings"] = float64(0) }, "servings"},
		{"servings thirteen", func(r map[string]interface{}) { r["servings"] = float64(13) }, "servings"},
		{"servings fractional", func(r map[string]interface{}) { r["servings"] = 2.5 }, "servings"},
		{"servings string", func(r map[string]interface{}) { r["servings"] = "2" }, "servings"},
		{"missing ingredients", func(r map[string]interface{}) { delete(r, "ingredients_grams") }, "ingredients"},
		{"empty ingredients", func(r map[string]interface{}) { r["ingredients_grams"] = []interface{}{} }, "ingredients_grams"},
		{"blank ingredient name", func(r map[string]interface{}) {
			r["ingredients_grams"] = []interface{}{map[string]interface{}{"name": "", "grams": float64(100)}}
		}, "ingredients_grams[0].name"},
		{"negative grams", func(r map[string]interface{}) {
			r["ingredients_grams"] = []interface{}{map[string]interface{}{"name": "rice", "grams": float64(-1)}}
		}, "ingredients_grams[0].grams"},
		{"grams string", func(r map[string]interface{}) {
			r["ingredients_grams"] = []interface{}{map[string]interface{}{"name": "rice", "grams": "100"}}
		}, "ingredients_grams[0].grams"},
		{"missing steps", func(r map[string]interface{}) { delete(r, "steps") }, "steps"},
		{"blank step", func(r map[string]interface{}) { r["steps"] = []interface{}{"Cook.", ""} }, "steps[1]"},
		{"step not string", func(r map[string]interface{}) { r["steps"] = []interface{}{float64(1)} }, "steps[0]"},
		{"unknown dietary", func(r map[string]interface{}) { r["dietary_restriction"] = "Carnivore" }, "dietary_restriction"},
		{"unknown cuisine", func(r map[string]interface{}) { r["cuisine_type"] = "Martian" }, "cuisine_type"},
		{"unknown cooking time", func(r map[string]interface{}) { r["cooking_time"] = "30 minutes" }, "cooking_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRecipe(rawRecipe(t, tt.mutate))
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateRecipeIngredientsFallbackKey(t *testing.T) {
	raw := rawRecipe(t, func(r map[string]interface{}) {
		r["ingredients"] = r["ingredients_grams"]
		delete(r, "ingredients_grams")
	})
	spec, err := ValidateRecipe(raw)
	require.NoError(t, err)
	assert.Len(t, spec.Ingredients, 2)
}

func TestValidateRecipeOptionalFieldsAbsent(t *testing.T) {
	spec, err := ValidateRecipe(rawRecipe(t, nil))
	require.NoError(t, err)
	assert.Empty(t, spec.CuisineType)
	assert.Empty(t, spec.MealType)
	assert.Empty(t, spec.CookingTime)
	assert.Empty(t, spec.DifficultyLevel)
}

func TestValidateRecipeDoesNotMutateInput(t *testing.T) {
	raw := rawRecipe(t, func(r map[string]interface{}) { delete(r, "dietary_restriction") })
	_, err := ValidateRecipe(raw)
	require.NoError(t, err)
	_, present := raw["dietary_restriction"]
	assert.False(t, present)
}
