package service

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/macrochef/backend/internal/models"
)

// Keys of the macro totals map. They match the column labels the nutrition
// snapshots were historically stored under.
const (
	KeyProtein  = "Protein (g)"
	KeyCarbs    = "Carbs (g)"
	KeyFat      = "Fat (g)"
	KeyFiber    = "Fiber (g)"
	KeyCalories = "Calories"
)

// Calories per gram of each macro, used because the source data's own calorie
// field is inconsistent across food records.
const (
	caloriesPerGramProtein = 4
	caloriesPerGramCarbs   = 4
	caloriesPerGramFat     = 9
)

// IngredientMacros is the per-ingredient breakdown row
type IngredientMacros struct {
	Name    string  `json:"name"`
	Grams   float64 `json:"grams"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
	Note    string  `json:"note,omitempty"`
}

const noMatchNote = "no nutrition match"

// MacroService computes per-ingredient macro breakdowns and recipe totals
type MacroService struct {
	nutrition NutritionLookup
	workers   int
}

// NewMacroService creates a new MacroService instance
func NewMacroService(nutrition NutritionLookup, workers int) *MacroService {
	if workers < 1 {
		workers = 1
	}
	return &MacroService{nutrition: nutrition, workers: workers}
}

// ComputeMacros looks up every ingredient and returns the per-ingredient rows
// plus recipe totals. Lookups are independent, so they run concurrently under a
// small worker bound; rows come back in input order. A failed lookup produces a
// zero row with a note and never aborts the computation.
func (s *MacroService) ComputeMacros(ctx context.Context, ingredients []models.Ingredient) ([]IngredientMacros, map[string]float64) {
	rows := make([]IngredientMacros, len(ingredients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, ing := range ingredients {
		i, ing := i, ing
		g.Go(func() error {
			rows[i] = s.lookupRow(gctx, ing)
			return nil
		})
	}
	// Workers only write their own row and never return an error
	_ = g.Wait()

	totals := map[string]float64{KeyProtein: 0, KeyCarbs: 0, KeyFat: 0, KeyFiber: 0}
	for _, row := range rows {
		totals[KeyProtein] += row.Protein
		totals[KeyCarbs] += row.Carbs
		totals[KeyFat] += row.Fat
		totals[KeyFiber] += row.Fiber
	}
	for k, v := range totals {
		totals[k] = round2(v)
	}
	totals[KeyCalories] = round2(
		caloriesPerGramProtein*totals[KeyProtein] +
			caloriesPerGramCarbs*totals[KeyCarbs] +
			caloriesPerGramFat*totals[KeyFat])

	return rows, totals
}

func (s *MacroService) lookupRow(ctx context.Context, ing models.Ingredient) IngredientMacros {
	row := IngredientMacros{Name: ing.Name, Grams: ing.Grams}

	per100g, found := s.nutrition.LookupPer100g(ctx, ing.Name)
	if !found {
		row.Note = noMatchNote
		return row
	}

	factor := 0.0
	if ing.Grams != 0 {
		factor = ing.Grams / 100.0
	}
	row.Protein = round2(per100g.Protein * factor)
	row.Carbs = round2(per100g.Carbs * factor)
	row.Fat = round2(per100g.Fat * factor)
	row.Fiber = round2(per100g.Fiber * factor)
	return row
}

// PerServing divides totals by the serving count. When servings is zero the
// totals come back unchanged rather than divided; callers rely on that.
func PerServing(totals map[string]float64, servings int) map[string]float64 {
	perServing := make(map[string]float64, len(totals))
	if servings == 0 {
		for k, v := range totals {
			perServing[k] = v
		}
		return perServing
	}
	for k, v := range totals {
		perServing[k] = round2(v / float64(servings))
	}
	return perServing
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
