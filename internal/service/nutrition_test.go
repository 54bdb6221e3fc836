package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/macrochef/backend/config"
)

const chickenFoodDetail = `{"foodNutrients": [
	{"nutrient": {"name": "Protein"}, "amount": 31},
	{"nutrient": {"name": "Carbohydrate, by difference"}, "amount": 0},
	{"nutrient": {"name": "Total lipid (fat)"}, "amount": 3.6},
	{"nutrient": {"name": "Fiber, total dietary"}, "amount": 0},
	{"nutrient": {"name": "Energy"}, "amount": 165},
	{"nutrient": {"name": "Sodium, Na"}}
]}`

func newNutritionService(t *testing.T, handler http.Handler) *NutritionService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		USDAAPIKey:  "test-key",
		USDABaseURL: server.URL,
		USDATimeout: 2 * time.Second,
	}
	return NewNutritionService(cfg, nil, zap.NewNop())
}

func TestLookupPer100gFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/foods/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chicken breast", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"foods": [{"fdcId": 171477}]}`)
	})
	mux.HandleFunc("/food/171477", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chickenFoodDetail)
	})
	svc := newNutritionService(t, mux)

	macros, found := svc.LookupPer100g(context.Background(), "chicken breast")

	require.True(t, found)
	assert.Equal(t, 31.0, macros.Protein)
	assert.Equal(t, 0.0, macros.Carbs)
	assert.Equal(t, 3.6, macros.Fat)
	assert.Equal(t, 0.0, macros.Fiber)
}

func TestLookupPer100gNoSearchResults(t *testing.T) {
	svc := newNutritionService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"foods": []}`)
	}))

	macros, found := svc.LookupPer100g(context.Background(), "dragonfruit essence")

	assert.False(t, found)
	assert.Equal(t, Macros{}, macros)
}

func TestLookupPer100gSearchErrorDegrades(t *testing.T) {
	svc := newNutritionService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, found := svc.LookupPer100g(context.Background(), "chicken breast")
	assert.False(t, found)
}

func TestLookupPer100gDetailErrorDegrades(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/foods/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"foods": [{"fdcId": 9}]}`)
	})
	mux.HandleFunc("/food/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	svc := newNutritionService(t, mux)

	_, found := svc.LookupPer100g(context.Background(), "chicken breast")
	assert.False(t, found)
}

func TestLookupPer100gTimeoutDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"foods": []}`)
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		USDAAPIKey:  "test-key",
		USDABaseURL: server.URL,
		USDATimeout: 20 * time.Millisecond,
	}
	svc := NewNutritionService(cfg, nil, zap.NewNop())

	_, found := svc.LookupPer100g(context.Background(), "chicken breast")
	assert.False(t, found)
}

func TestLookupPer100gMissingNutrientsStayZero(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/foods/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"foods": [{"fdcId": 12}]}`)
	})
	mux.HandleFunc("/food/12", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"foodNutrients": [{"nutrient": {"name": "Protein"}, "amount": 5}]}`)
	})
	svc := newNutritionService(t, mux)

	macros, found := svc.LookupPer100g(context.Background(), "egg white")

	require.True(t, found)
	assert.Equal(t, 5.0, macros.Protein)
	assert.Zero(t, macros.Carbs)
	assert.Zero(t, macros.Fat)
	assert.Zero(t, macros.Fiber)
}
