package api

// GenerateRecipeRequest is the body of a generation request. Ingredients are
// required; the preference fields are optional hints forwarded to the model.
type GenerateRecipeRequest struct {
	Ingredients        []string `json:"ingredients" binding:"required,min=1"`
	DietaryRestriction string   `json:"dietary_restriction"`
	CuisineType        string   `json:"cuisine_type"`
	MealType           string   `json:"meal_type"`
	CookingTime        string   `json:"cooking_time"`
	DifficultyLevel    string   `json:"difficulty_level"`
	Tags               []string `json:"tags"`
}

// RateRecipeRequest is the body of a rating update
type RateRecipeRequest struct {
	Rating int `json:"rating" binding:"required"`
}
