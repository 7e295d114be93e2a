//go:generate mockery --name GenerationErrorLogRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_10x_cards/internal/middleware"
	"go_10x_cards/internal/model"

	"gorm.io/gorm"
)

// GenerationErrorLogRepository はAI生成失敗時の監査ログを記録します。
// 記録はベストエフォートで、呼び出し側は失敗しても処理を継続します。
type GenerationErrorLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, errorLog *model.GenerationErrorLog) error
}

type gormGenerationErrorLogRepository struct{}

func NewGormGenerationErrorLogRepository() GenerationErrorLogRepository {
	return &gormGenerationErrorLogRepository{}
}

func (r *gormGenerationErrorLogRepository) Create(ctx context.Context, tx *gorm.DB, errorLog *model.GenerationErrorLog) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(errorLog)
	if result.Error != nil {
		logger.Error("Error creating generation error log in DB",
			"error", result.Error,
			"user_id", errorLog.UserID.String(),
			"error_code", errorLog.ErrorCode,
		)
		return fmt.Errorf("gormGenerationErrorLogRepository.Create: %w", result.Error)
	}
	return nil
}
