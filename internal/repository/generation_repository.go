//go:generate mockery --name GenerationRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_10x_cards/internal/middleware"
	"go_10x_cards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerationRepository は生成監査レコードの永続化境界です。
type GenerationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, generation *model.Generation) error
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID, generationID uint) (*model.Generation, error)
	Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, generationID uint, updates map[string]interface{}) error
	IncrementAcceptedCounts(ctx context.Context, tx *gorm.DB, userID uuid.UUID, generationID uint, edited, unedited int) error
}

type gormGenerationRepository struct{}

func NewGormGenerationRepository() GenerationRepository {
	return &gormGenerationRepository{}
}

func (r *gormGenerationRepository) Create(ctx context.Context, tx *gorm.DB, generation *model.Generation) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(generation)
	if result.Error != nil {
		logger.Error("Error creating generation in DB",
			"error", result.Error,
			"user_id", generation.UserID.String(),
			"source_text_hash", generation.SourceTextHash,
		)
		return fmt.Errorf("gormGenerationRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormGenerationRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID, generationID uint) (*model.Generation, error) {
	logger := middleware.GetLogger(ctx)
	var generation model.Generation
	result := db.WithContext(ctx).Where("user_id = ? AND generation_id = ?", userID, generationID).First(&generation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding generation by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"generation_id", generationID,
		)
		return nil, fmt.Errorf("gormGenerationRepository.FindByID: %w", result.Error)
	}
	return &generation, nil
}

func (r *gormGenerationRepository) Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, generationID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Generation{}).
		Where("user_id = ? AND generation_id = ?", userID, generationID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating generation in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"generation_id", generationID,
		)
		return fmt.Errorf("gormGenerationRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormGenerationRepository) IncrementAcceptedCounts(ctx context.Context, tx *gorm.DB, userID uuid.UUID, generationID uint, edited, unedited int) error {
	logger := middleware.GetLogger(ctx)
	if edited == 0 && unedited == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Generation{}).
		Where("user_id = ? AND generation_id = ?", userID, generationID).
		Updates(map[string]interface{}{
			"accepted_edited_count":   gorm.Expr("accepted_edited_count + ?", edited),
			"accepted_unedited_count": gorm.Expr("accepted_unedited_count + ?", unedited),
		})
	if result.Error != nil {
		logger.Error("Error incrementing accepted counts in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"generation_id", generationID,
		)
		return fmt.Errorf("gormGenerationRepository.IncrementAcceptedCounts: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
