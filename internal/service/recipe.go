package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macrochef/backend/internal/models"
)

// RecipeFilters narrows a recipe listing. Empty or "All" values match
// everything, same as omitting the predicate.
type RecipeFilters struct {
	DietaryRestriction string
	CuisineType        string
	MealType           string
	CookingTime        string
	DifficultyLevel    string
	FavoritesOnly      bool
	Search             string
	Limit              int
	Offset             int
}

// RecipeStats summarizes the store for the dashboard. Computed on demand from
// the tables, never cached.
type RecipeStats struct {
	TotalRecipes    int64   `json:"total_recipes"`
	FavoriteRecipes int64   `json:"favorite_recipes"`
	AverageRating   float64 `json:"average_rating"`
	TotalAttempts   int64   `json:"total_attempts"`
	SuccessRate     float64 `json:"success_rate"`
}

// RecipeService handles recipe persistence
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SaveRecipe stores a repaired recipe together with its macro snapshots. The
// snapshots are captured once here and never recomputed afterwards.
func (s *RecipeService) SaveRecipe(ctx context.Context, spec *RecipeSpec, perRecipe, perServing map[string]float64, tags []string) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:               spec.Title,
		Servings:            spec.Servings,
		Ingredients:         models.IngredientList(spec.Ingredients),
		Steps:               models.StringList(spec.Steps),
		Tags:                models.StringList(tags),
		NutritionPerRecipe:  models.MacroMap(perRecipe),
		NutritionPerServing: models.MacroMap(perServing),
		DietaryRestriction:  spec.DietaryRestriction,
		CuisineType:         optionalColumn(spec.CuisineType),
		MealType:            optionalColumn(spec.MealType),
		CookingTime:         optionalColumn(spec.CookingTime),
		DifficultyLevel:     optionalColumn(spec.DifficultyLevel),
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns stored recipes newest first, narrowed by the filters
func (s *RecipeService) ListRecipes(ctx context.Context, filters RecipeFilters) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")

	query = applyCategoryFilter(query, "dietary_restriction", filters.DietaryRestriction)
	query = applyCategoryFilter(query, "cuisine_type", filters.CuisineType)
	query = applyCategoryFilter(query, "meal_type", filters.MealType)
	query = applyCategoryFilter(query, "cooking_time", filters.CookingTime)
	query = applyCategoryFilter(query, "difficulty_level", filters.DifficultyLevel)

	if filters.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("title LIKE ? OR ingredients LIKE ?", like, like)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRating sets the rating for a recipe
func (s *RecipeService) UpdateRating(ctx context.Context, id uuid.UUID, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	result := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new state
func (s *RecipeService) ToggleFavorite(ctx context.Context, id uuid.UUID) (bool, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return false, err
	}

	newStatus := !recipe.IsFavorite
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("is_favorite", newStatus).Error; err != nil {
		return false, err
	}
	return newStatus, nil
}

// Favorites returns the favorited recipes newest first
func (s *RecipeService) Favorites(ctx context.Context) ([]models.Recipe, error) {
	return s.ListRecipes(ctx, RecipeFilters{FavoritesOnly: true})
}

// DeleteRecipe removes a recipe permanently. History entries keep their weak
// reference to the vanished id.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetStats computes store statistics on demand
func (s *RecipeService) GetStats(ctx context.Context) (*RecipeStats, error) {
	stats := &RecipeStats{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Recipe{}).Count(&stats.TotalRecipes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Recipe{}).Where("is_favorite = ?", true).Count(&stats.FavoriteRecipes).Error; err != nil {
		return nil, err
	}

	var avg *float64
	if err := db.Model(&models.Recipe{}).Select("AVG(rating)").Where("rating IS NOT NULL").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AverageRating = math.Round(*avg*100) / 100
	}

	if err := db.Model(&models.GenerationLog{}).Count(&stats.TotalAttempts).Error; err != nil {
		return nil, err
	}
	if stats.TotalAttempts > 0 {
		var successful int64
		if err := db.Model(&models.GenerationLog{}).Where("success = ?", true).Count(&successful).Error; err != nil {
			return nil, err
		}
		stats.SuccessRate = math.Round(float64(successful)/float64(stats.TotalAttempts)*100*100) / 100
	}

	return stats, nil
}

// ClearAll wipes recipes and the generation history together. This is the only
// operation that removes history entries.
func (s *RecipeService) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.GenerationLog{}).Error
	})
}

func applyCategoryFilter(query *gorm.DB, column, value string) *gorm.DB {
	if value == "" || value == "All" {
		return query
	}
	return query.Where(column+" = ?", value)
}

func optionalColumn(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
