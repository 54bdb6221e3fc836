package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/macrochef/backend/internal/models"
)

// ErrModelRequest marks upstream model API failures, as opposed to a model
// response that could not be turned into a recipe
var ErrModelRequest = errors.New("model request failed")

// GenerationResult is the full outcome of one generation run: the repaired
// recipe, its quality report and the computed nutrition. Recipe is nil when
// persistence failed but the rest of the pipeline succeeded.
type GenerationResult struct {
	Recipe         *models.Recipe     `json:"recipe,omitempty"`
	Spec           *RecipeSpec        `json:"spec"`
	Quality        *QualityReport     `json:"quality"`
	IngredientRows []IngredientMacros `json:"ingredient_macros"`
	PerRecipe      map[string]float64 `json:"nutrition_per_recipe"`
	PerServing     map[string]float64 `json:"nutrition_per_serving"`
	Saved          bool               `json:"saved"`
	Warning        string             `json:"warning,omitempty"`
}

// GenerationRequest carries the user's inputs into a generation run
type GenerationRequest struct {
	Ingredients        []string
	DietaryRestriction string
	CuisineType        string
	MealType           string
	CookingTime        string
	DifficultyLevel    string
	Tags               []string
}

// GeneratorService runs the full pipeline: model call, extraction,
// validation, repair, nutrition lookup and persistence.
type GeneratorService struct {
	llm     *LLMService
	macros  *MacroService
	recipes *RecipeService
	history *HistoryService
	logger  *zap.Logger
}

// NewGeneratorService creates a new GeneratorService instance
func NewGeneratorService(llm *LLMService, macros *MacroService, recipes *RecipeService, history *HistoryService, logger *zap.Logger) *GeneratorService {
	return &GeneratorService{
		llm:     llm,
		macros:  macros,
		recipes: recipes,
		history: history,
		logger:  logger,
	}
}

// Generate runs one generation attempt end to end. Every attempt is logged to
// history whether or not it produced a recipe. Failures before repair abort
// the run; failures to persist do not, the caller still gets the full result.
func (g *GeneratorService) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	raw, err := g.llm.GenerateRecipe(ctx, req)
	if err != nil {
		g.logFailure(ctx, req.Ingredients, err)
		return nil, fmt.Errorf("%w: %v", ErrModelRequest, err)
	}

	extracted, err := ExtractRecipeJSON(raw)
	if err != nil {
		g.logger.Warn("extraction failed",
			zap.Int("response_length", len(raw)),
			zap.Error(err))
		g.logFailure(ctx, req.Ingredients, err)
		return nil, err
	}

	spec, err := ValidateRecipe(extracted)
	if err != nil {
		g.logger.Warn("validation failed", zap.Error(err))
		g.logFailure(ctx, req.Ingredients, err)
		return nil, err
	}

	repaired, quality := RepairRecipe(spec, req.Ingredients)

	rows, perRecipe := g.macros.ComputeMacros(ctx, repaired.Ingredients)
	perServing := PerServing(perRecipe, repaired.Servings)

	result := &GenerationResult{
		Spec:           repaired,
		Quality:        quality,
		IngredientRows: rows,
		PerRecipe:      perRecipe,
		PerServing:     perServing,
	}

	recipe, saveErr := g.recipes.SaveRecipe(ctx, repaired, perRecipe, perServing, req.Tags)
	if saveErr != nil {
		g.logger.Warn("recipe generated but not saved", zap.Error(saveErr))
		g.logFailure(ctx, req.Ingredients, saveErr)
		result.Warning = "recipe generated but could not be saved"
		return result, nil
	}

	result.Recipe = recipe
	result.Saved = true

	if err := g.history.LogGeneration(ctx, req.Ingredients, &recipe.ID, true, ""); err != nil {
		g.logger.Warn("failed to log generation attempt", zap.Error(err))
	}

	g.logger.Info("recipe generated",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("title", recipe.Title),
		zap.Int("quality_score", quality.Score))
	return result, nil
}

func (g *GeneratorService) logFailure(ctx context.Context, ingredients []string, cause error) {
	if err := g.history.LogGeneration(ctx, ingredients, nil, false, cause.Error()); err != nil {
		g.logger.Warn("failed to log generation attempt", zap.Error(err))
	}
}
