package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/macrochef/backend/config"
	"github.com/macrochef/backend/internal/database"
	"github.com/macrochef/backend/internal/models"
	"github.com/macrochef/backend/internal/service"
)

// Inserts a handful of sample recipes so a fresh database has something to
// browse. Intended for local development only.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	for _, sample := range sampleRecipes() {
		perServing := service.PerServing(sample.perRecipe, sample.spec.Servings)
		recipe, err := recipes.SaveRecipe(ctx, sample.spec, sample.perRecipe, perServing, sample.tags)
		if err != nil {
			logger.Fatal("failed to seed recipe", zap.String("title", sample.spec.Title), zap.Error(err))
		}
		logger.Info("seeded recipe", zap.String("id", recipe.ID.String()), zap.String("title", recipe.Title))
	}
}

type sampleRecipe struct {
	spec      *service.RecipeSpec
	perRecipe map[string]float64
	tags      []string
}

func sampleRecipes() []sampleRecipe {
	return []sampleRecipe{
		{
			spec: &service.RecipeSpec{
				Title:    "Grilled Chicken Rice Bowl",
				Servings: 2,
				Ingredients: []models.Ingredient{
					{Name: "chicken breast", Grams: 300},
					{Name: "rice", Grams: 200},
					{Name: "broccoli", Grams: 150},
				},
				Steps: []string{
					"Cook the rice.",
					"Season and grill the chicken breast.",
					"Steam the broccoli.",
					"Slice the chicken and assemble the bowls.",
				},
				DietaryRestriction: "None",
				CuisineType:        "Asian",
				MealType:           "Dinner",
				CookingTime:        "Medium (30min)",
				DifficultyLevel:    "Beginner",
			},
			perRecipe: map[string]float64{
				service.KeyProtein:  102.8,
				service.KeyCarbs:    66.6,
				service.KeyFat:      12.2,
				service.KeyFiber:    6.1,
				service.KeyCalories: 787.4,
			},
			tags: []string{"high-protein", "meal-prep"},
		},
		{
			spec: &service.RecipeSpec{
				Title:    "Chickpea Spinach Curry",
				Servings: 3,
				Ingredients: []models.Ingredient{
					{Name: "chickpeas", Grams: 400},
					{Name: "spinach", Grams: 200},
					{Name: "coconut milk", Grams: 250},
					{Name: "tomato", Grams: 150},
				},
				Steps: []string{
					"Saute the tomato until soft.",
					"Add the chickpeas and coconut milk and simmer.",
					"Stir in the spinach until wilted.",
					"Season and serve.",
				},
				DietaryRestriction: "Vegan",
				CuisineType:        "Indian",
				MealType:           "Dinner",
				CookingTime:        "Medium (30min)",
				DifficultyLevel:    "Intermediate",
			},
			perRecipe: map[string]float64{
				service.KeyProtein:  42.5,
				service.KeyCarbs:    125.3,
				service.KeyFat:      55.8,
				service.KeyFiber:    32.4,
				service.KeyCalories: 1173.4,
			},
			tags: []string{"vegan", "one-pot"},
		},
		{
			spec: &service.RecipeSpec{
				Title:    "Greek Yogurt Berry Parfait",
				Servings: 1,
				Ingredients: []models.Ingredient{
					{Name: "greek yogurt", Grams: 200},
					{Name: "blueberries", Grams: 100},
					{Name: "granola", Grams: 40},
				},
				Steps: []string{
					"Layer the yogurt into a glass.",
					"Add the blueberries.",
					"Top with granola.",
				},
				DietaryRestriction: "Vegetarian",
				CuisineType:        "Mediterranean",
				MealType:           "Breakfast",
				CookingTime:        "Quick (15min)",
				DifficultyLevel:    "Beginner",
			},
			perRecipe: map[string]float64{
				service.KeyProtein:  24.6,
				service.KeyCarbs:    46.2,
				service.KeyFat:      9.8,
				service.KeyFiber:    5.3,
				service.KeyCalories: 371.4,
			},
			tags: []string{"breakfast", "quick"},
		},
	}
}
