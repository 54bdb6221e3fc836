package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/macrochef/backend/internal/service"
)

// GenerateHandler exposes the recipe generation pipeline
type GenerateHandler struct {
	generator *service.GeneratorService
}

// NewGenerateHandler creates a new GenerateHandler instance
func NewGenerateHandler(generator *service.GeneratorService) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// RegisterRoutes registers the generation routes
func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/generate", h.GenerateRecipe)
}

// GenerateRecipe runs one generation attempt for the posted ingredients
func (h *GenerateHandler) GenerateRecipe(c *gin.Context) {
	var req GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredients := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}
	if len(ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients must not be empty"})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), service.GenerationRequest{
		Ingredients:        ingredients,
		DietaryRestriction: req.DietaryRestriction,
		CuisineType:        req.CuisineType,
		MealType:           req.MealType,
		CookingTime:        req.CookingTime,
		DifficultyLevel:    req.DifficultyLevel,
		Tags:               req.Tags,
	})
	if err != nil {
		status := http.StatusInternalServerError
		var extractErr *service.ExtractionError
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &extractErr), errors.As(err, &validationErr):
			// The model answered but did not produce a usable recipe
			status = http.StatusUnprocessableEntity
		case errors.Is(err, service.ErrModelRequest):
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
