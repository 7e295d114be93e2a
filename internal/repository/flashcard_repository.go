//go:generate mockery --name FlashcardRepository --output ./mocks --outpkg mocks --case=underscore
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

// FlashcardRepository はフラッシュカードの永続化境界です。
// 全操作が所有者IDでスコープされ、他ユーザーのレコードには到達できません。
type FlashcardRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, flashcards []*model.Flashcard) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Flashcard, error)
	FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID, flashcardID uint) (*model.Flashcard, error)
	Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, flashcardID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, flashcardID uint) error
}

type gormFlashcardRepository struct{}

func NewGormFlashcardRepository() FlashcardRepository {
	return &gormFlashcardRepository{}
}

func (r *gormFlashcardRepository) CreateBatch(ctx context.Context, tx *gorm.DB, flashcards []*model.Flashcard) error {
	logger := middleware.GetLogger(ctx)
	if len(flashcards) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Create(flashcards)
	if result.Error != nil {
		logger.Error("Error creating flashcards in DB",
			"error", result.Error,
			"count", len(flashcards),
		)
		return fmt.Errorf("gormFlashcardRepository.CreateBatch: %w", result.Error)
	}
	return nil
}

func (r *gormFlashcardRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)
	var flashcards []*model.Flashcard
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&flashcards)
	if result.Error != nil {
		logger.Error("Error finding flashcards by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormFlashcardRepository.FindByUser: %w", result.Error)
	}
	return flashcards, nil
}

func (r *gormFlashcardRepository) FindByID(ctx context.Context, db *gorm.DB, userID uuid.UUID, flashcardID uint) (*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)
	var flashcard model.Flashcard
	result := db.WithContext(ctx).Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).First(&flashcard)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// 他ユーザーの所有分も「存在しない」として扱う (所有権の漏洩防止)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding flashcard by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"flashcard_id", flashcardID,
		)
		return nil, fmt.Errorf("gormFlashcardRepository.FindByID: %w", result.Error)
	}
	return &flashcard, nil
}

func (r *gormFlashcardRepository) Update(ctx context.Context, tx *gorm.DB, userID uuid.UUID, flashcardID uint, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.Flashcard{}).
		Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating flashcard in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"flashcard_id", flashcardID,
		)
		return fmt.Errorf("gormFlashcardRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormFlashcardRepository) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, flashcardID uint) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("user_id = ? AND flashcard_id = ?", userID, flashcardID).Delete(&model.Flashcard{})
	if result.Error != nil {
		logger.Error("Error deleting flashcard in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"flashcard_id", flashcardID,
		)
		return fmt.Errorf("gormFlashcardRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
