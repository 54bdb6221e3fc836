package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/macrochef/backend/config"
)

// Macros holds nutrient masses per 100 g of a food
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}

// USDA FoodData Central nutrient names for the four macros we track
const (
	nutrientProtein = "Protein"
	nutrientCarbs   = "Carbohydrate, by difference"
	nutrientFat     = "Total lipid (fat)"
	nutrientFiber   = "Fiber, total dietary"
)

// NutritionLookup resolves an ingredient name to per-100g macros
type NutritionLookup interface {
	LookupPer100g(ctx context.Context, name string) (Macros, bool)
}

// NutritionService looks up per-100g macros through the USDA FoodData Central
// API. Every failure mode degrades to "no match": one unresolvable ingredient
// must never abort a recipe's macro computation.
type NutritionService struct {
	client   *resty.Client
	apiKey   string
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewNutritionService creates a new NutritionService instance. The redis client
// is optional; pass nil to look up every ingredient directly.
func NewNutritionService(cfg *config.Config, cache *redis.Client, logger *zap.Logger) *NutritionService {
	client := resty.New().
		SetBaseURL(cfg.USDABaseURL).
		SetTimeout(cfg.USDATimeout)

	return &NutritionService{
		client:   client,
		apiKey:   cfg.USDAAPIKey,
		cache:    cache,
		cacheTTL: cfg.CacheTTL,
		logger:   logger,
	}
}

type fdcSearchResponse struct {
	Foods []struct {
		FdcID int64 `json:"fdcId"`
	} `json:"foods"`
}

type fdcFoodResponse struct {
	FoodNutrients []struct {
		Nutrient struct {
			Name string `json:"name"`
		} `json:"nutrient"`
		Amount *float64 `json:"amount"`
	} `json:"foodNutrients"`
}

// LookupPer100g resolves an ingredient name to per-100g macros. The second
// return value is false when the name has no match or the API is unreachable.
func (s *NutritionService) LookupPer100g(ctx context.Context, name string) (Macros, bool) {
	cacheKey := "macros:per100g:" + strings.ToLower(strings.TrimSpace(name))
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Macros
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true
			}
		}
	}

	fdcID, ok := s.searchFood(ctx, name)
	if !ok {
		return Macros{}, false
	}

	macros, ok := s.fetchNutrients(ctx, fdcID)
	if !ok {
		return Macros{}, false
	}

	if s.cache != nil {
		if data, err := json.Marshal(macros); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache macro lookup", zap.String("name", name), zap.Error(err))
			}
		}
	}

	return macros, true
}

// searchFood finds the most relevant FDC ID for a food name by grabbing the
// top search match
func (s *NutritionService) searchFood(ctx context.Context, name string) (int64, bool) {
	var result fdcSearchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":    name,
			"pageSize": "1",
			"api_key":  s.apiKey,
		}).
		SetResult(&result).
		Get("/foods/search")
	if err != nil {
		s.logger.Warn("USDA search failed", zap.String("name", name), zap.Error(err))
		return 0, false
	}
	if resp.IsError() {
		s.logger.Warn("USDA search returned error status",
			zap.String("name", name), zap.Int("status", resp.StatusCode()))
		return 0, false
	}
	if len(result.Foods) == 0 {
		return 0, false
	}
	return result.Foods[0].FdcID, true
}

// fetchNutrients reads the detail record for an FDC ID and picks out the four
// macro nutrients. Amounts are per 100 g for Foundation and Survey data; any
// nutrient not present stays 0.
func (s *NutritionService) fetchNutrients(ctx context.Context, fdcID int64) (Macros, bool) {
	var result fdcFoodResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", s.apiKey).
		SetResult(&result).
		Get(fmt.Sprintf("/food/%d", fdcID))
	if err != nil {
		s.logger.Warn("USDA detail fetch failed", zap.Int64("fdc_id", fdcID), zap.Error(err))
		return Macros{}, false
	}
	if resp.IsError() {
		s.logger.Warn("USDA detail fetch returned error status",
			zap.Int64("fdc_id", fdcID), zap.Int("status", resp.StatusCode()))
		return Macros{}, false
	}

	var macros Macros
	for _, n := range result.FoodNutrients {
		if n.Amount == nil {
			continue
		}
		switch n.Nutrient.Name {
		case nutrientProtein:
			macros.Protein = *n.Amount
		case nutrientCarbs:
			macros.Carbs = *n.Amount
		case nutrientFat:
			macros.Fat = *n.Amount
		case nutrientFiber:
			macros.Fiber = *n.Amount
		}
	}
	return macros, true
}
