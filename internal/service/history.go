package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macrochef/backend/internal/models"
)

// HistoryService records generation attempts. Entries are append-only; the
// only way they leave the table is RecipeService.ClearAll.
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// LogGeneration appends one attempt. recipeID is nil for failed attempts and
// errMessage is empty for successful ones.
func (s *HistoryService) LogGeneration(ctx context.Context, ingredients []string, recipeID *uuid.UUID, success bool, errMessage string) error {
	entry := &models.GenerationLog{
		InputIngredients: strings.Join(ingredients, ", "),
		RecipeID:         recipeID,
		Success:          success,
		ErrorMessage:     errMessage,
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

// ListHistory returns generation attempts newest first
func (s *HistoryService) ListHistory(ctx context.Context, limit, offset int) ([]models.GenerationLog, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var entries []models.GenerationLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
