package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/macrochef/backend/config"
)

// LLMService handles chat-completion calls to the model API
type LLMService struct {
	apiKey      string
	apiURL      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg *config.Config, logger *zap.Logger) (*LLMService, error) {
	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("LLM API key must be set")
	}

	return &LLMService{
		apiKey:      cfg.LLMAPIKey,
		apiURL:      cfg.LLMAPIURL,
		model:       cfg.LLMModel,
		temperature: cfg.LLMTemperature,
		maxTokens:   cfg.LLMMaxTokens,
		httpClient:  &http.Client{Timeout: cfg.LLMTimeout},
		logger:      logger,
	}, nil
}

// chatMessage represents a message in the chat
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents a chat-completion request
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// Complete sends a system/user prompt pair and returns the raw response text.
// The text is untrusted: prose, markdown fences and truncated JSON all happen.
func (s *LLMService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("model API request failed",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", body))
		return "", fmt.Errorf("model API request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from model API")
	}

	return result.Choices[0].Message.Content, nil
}

// GenerateRecipe asks the model for a structured JSON recipe built only from
// the requested ingredients and returns its raw text response
func (s *LLMService) GenerateRecipe(ctx context.Context, req GenerationRequest) (string, error) {
	return s.Complete(ctx, recipeSystemPrompt(), recipeUserPrompt(req))
}

func recipeSystemPrompt() string {
	return "You are a nutritionist-chef. Create a healthy, tasty recipe ONLY with the ingredients provided. " +
		"Return STRICT JSON with keys: title (string), servings (int 1-12), " +
		"ingredients_grams (list of objects {name, grams}), steps (list of strings), " +
		"dietary_restriction (one of: " + strings.Join(DietaryRestrictions, ", ") + "), " +
		"cuisine_type (one of: " + strings.Join(CuisineTypes, ", ") + "), " +
		"meal_type (one of: " + strings.Join(MealTypes, ", ") + "), " +
		"cooking_time (one of: " + strings.Join(quoteAll(CookingTimes), ", ") + "), " +
		"difficulty_level (one of: " + strings.Join(DifficultyLevels, ", ") + "). " +
		"All ingredient quantities MUST have grams; estimate sensible amounts. " +
		"Do not add ingredients not provided, except basic salt/pepper which you may exclude from macros."
}

func recipeUserPrompt(req GenerationRequest) string {
	var b strings.Builder
	b.WriteString("Ingredients: " + strings.Join(req.Ingredients, ", ") + "\n")
	writePreference(&b, "Dietary restriction", req.DietaryRestriction)
	writePreference(&b, "Cuisine type", req.CuisineType)
	writePreference(&b, "Meal type", req.MealType)
	writePreference(&b, "Cooking time", req.CookingTime)
	writePreference(&b, "Difficulty level", req.DifficultyLevel)
	b.WriteString("\nRules:\n" +
		"1) Use only these ingredients (ignore pantry basics for macros).\n" +
		"2) Provide realistic grams per ingredient so totals are ~400-700g per serving for a meal.\n" +
		"3) Servings must be an integer.\n" +
		"4) Output VALID JSON only. No extra commentary.")
	return b.String()
}

func writePreference(b *strings.Builder, label, value string) {
	if value == "" || value == "None" || value == "All" {
		return
	}
	b.WriteString(label + ": " + value + "\n")
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return quoted
}
