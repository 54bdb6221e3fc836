package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/macrochef/backend/internal/models"
)

// Repair thresholds. The correction pair (rule 2) resizes servings; the scoring
// pair (rule 3) is stricter and only reports.
const (
	minGramsPerServing      = 100
	maxGramsPerServing      = 1000
	reportMinGramsPerServe  = 150
	reportMaxGramsPerServe  = 800
	ingredientClampCeiling  = 500
	ingredientClampToUpper  = 300
	ingredientClampFloor    = 5
	ingredientClampToLower  = 10
	minRecommendedSteps     = 3
	missingIngredientPoints = 20
	servingSizePoints       = 10
	shortStepsPoints        = 15
)

// RepairRecipe runs the post-validation repair pass. It never rejects: a valid
// but implausible recipe is downgraded into a more plausible one plus a report.
// The input spec is not modified; the returned spec is an adjusted copy.
func RepairRecipe(spec *RecipeSpec, originalIngredients []string) (*RecipeSpec, *QualityReport) {
	out := *spec
	out.Ingredients = append([]models.Ingredient(nil), spec.Ingredients...)
	out.Steps = append([]string(nil), spec.Steps...)

	report := &QualityReport{Score: 100, Issues: []string{}}

	// Rule 1: every requested ingredient should appear in the recipe
	if missing := missingIngredients(out.Ingredients, originalIngredients); len(missing) > 0 {
		report.Issues = append(report.Issues, fmt.Sprintf(
			"missing ingredients: %s (check spelling or use simpler names)",
			strings.Join(missing, ", ")))
		report.Score -= missingIngredientPoints
	}

	totalGrams := 0.0
	for _, ing := range out.Ingredients {
		totalGrams += ing.Grams
	}

	// Rule 2: resize implausible serving counts; only one branch fires and the
	// result is not re-checked
	if out.Servings > 0 {
		gramsPerServing := totalGrams / float64(out.Servings)
		if gramsPerServing < minGramsPerServing {
			out.Servings = maxInt(1, int(math.Floor(totalGrams/200)))
		} else if gramsPerServing > maxGramsPerServing {
			out.Servings = maxInt(1, int(math.Floor(totalGrams/500)))
		}
	}

	// Rule 3: stricter thresholds, scoring only, using the updated servings
	if out.Servings > 0 {
		gramsPerServing := totalGrams / float64(out.Servings)
		if gramsPerServing < reportMinGramsPerServe {
			report.Issues = append(report.Issues, "serving size may be too small")
			report.Score -= servingSizePoints
		} else if gramsPerServing > reportMaxGramsPerServe {
			report.Issues = append(report.Issues, "serving size may be too large")
			report.Score -= servingSizePoints
		}
	}

	// Rule 4: per-ingredient bound clamp. The targets are asymmetric on
	// purpose: oversized amounts drop to 300, undersized ones rise to 10.
	for i := range out.Ingredients {
		if out.Ingredients[i].Grams > ingredientClampCeiling {
			out.Ingredients[i].Grams = math.Min(out.Ingredients[i].Grams, ingredientClampToUpper)
		} else if out.Ingredients[i].Grams < ingredientClampFloor {
			out.Ingredients[i].Grams = math.Max(out.Ingredients[i].Grams, ingredientClampToLower)
		}
	}

	// Rule 5: recipes with fewer than three steps read as incomplete
	if len(out.Steps) < minRecommendedSteps {
		report.Issues = append(report.Issues, "instructions could be more detailed")
		report.Score -= shortStepsPoints
	}

	// Rule 6: final score clamp
	if report.Score < 0 {
		report.Score = 0
	}
	if report.Score > 100 {
		report.Score = 100
	}

	return &out, report
}

// missingIngredients returns the requested ingredients that do not match any
// recipe ingredient. A match is a case-folded substring relation either way.
func missingIngredients(recipeIngredients []models.Ingredient, requested []string) []string {
	var missing []string
	for _, want := range requested {
		wantFolded := strings.ToLower(strings.TrimSpace(want))
		if wantFolded == "" {
			continue
		}
		found := false
		for _, ing := range recipeIngredients {
			haveFolded := strings.ToLower(ing.Name)
			if strings.Contains(haveFolded, wantFolded) || strings.Contains(wantFolded, haveFolded) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, strings.TrimSpace(want))
		}
	}
	return missing
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
