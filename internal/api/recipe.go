package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macrochef/backend/internal/service"
)

// RecipeHandler exposes the stored-recipe operations
type RecipeHandler struct {
	recipes *service.RecipeService
	history *service.HistoryService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService, history *service.HistoryService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, history: history}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/stats", h.GetStats)
		recipes.DELETE("", h.ClearAll)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.POST("/:id/rating", h.RateRecipe)
		recipes.POST("/:id/favorite", h.ToggleFavorite)
	}
	router.GET("/history", h.ListHistory)
}

// ListRecipes returns stored recipes newest first, narrowed by query filters
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filters := service.RecipeFilters{
		DietaryRestriction: c.Query("dietary_restriction"),
		CuisineType:        c.Query("cuisine_type"),
		MealType:           c.Query("meal_type"),
		CookingTime:        c.Query("cooking_time"),
		DifficultyLevel:    c.Query("difficulty_level"),
		FavoritesOnly:      c.Query("favorites") == "true",
		Search:             c.Query("q"),
		Limit:              intQuery(c, "limit"),
		Offset:             intQuery(c, "offset"),
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns one stored recipe by id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a stored recipe permanently
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// RateRecipe sets the rating for a stored recipe
func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	var req RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.recipes.UpdateRating(c.Request.Context(), id, req.Rating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating updated", "rating": req.Rating})
}

// ToggleFavorite flips the favorite flag on a stored recipe
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	id, ok := parseRecipeID(c)
	if !ok {
		return
	}

	status, err := h.recipes.ToggleFavorite(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": status})
}

// GetStats returns aggregate statistics over the store
func (h *RecipeHandler) GetStats(c *gin.Context) {
	stats, err := h.recipes.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ClearAll wipes all recipes and the generation history
func (h *RecipeHandler) ClearAll(c *gin.Context) {
	if err := h.recipes.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All recipes and history cleared"})
}

// ListHistory returns generation attempts newest first
func (h *RecipeHandler) ListHistory(c *gin.Context) {
	entries, err := h.history.ListHistory(c.Request.Context(), intQuery(c, "limit"), intQuery(c, "offset"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func parseRecipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
