//go:generate mockery --name FlashcardService --output ./mocks --outpkg mocks --case=underscore --structname MockFlashcardService
package service

import (
	"context"
	"errors"

	"go_10x_cards/internal/middleware"
	"go_10x_cards/internal/model"
	"go_10x_cards/internal/repository"
	"go_10x_cards/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlashcardService interface {
	CreateFlashcards(ctx context.Context, userID uuid.UUID, req *model.CreateFlashcardsRequest) ([]*model.Flashcard, error)
	ListFlashcards(ctx context.Context, userID uuid.UUID) ([]*model.Flashcard, error)
	UpdateFlashcard(ctx context.Context, userID uuid.UUID, flashcardID uint, req *model.PatchFlashcardRequest) (*model.Flashcard, error)
	DeleteFlashcard(ctx context.Context, userID uuid.UUID, flashcardID uint) error
}

type flashcardService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	cardRepo repository.FlashcardRepository
	genRepo  repository.GenerationRepository
}

func NewFlashcardService(db *gorm.DB, cardRepo repository.FlashcardRepository, genRepo repository.GenerationRepository) FlashcardService {
	return &flashcardService{
		db:       db,
		cardRepo: cardRepo,
		genRepo:  genRepo,
	}
}

// CreateFlashcards は1〜N枚のフラッシュカードを一括保存します。
// 全件の検証に通った場合のみ保存し、1枚でも不正なら全体を拒否します。
func (s *flashcardService) CreateFlashcards(ctx context.Context, userID uuid.UUID, req *model.CreateFlashcardsRequest) ([]*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)

	if appErr := validation.ValidateFlashcardsCommand(req); appErr != nil {
		return nil, appErr
	}

	flashcards := make([]*model.Flashcard, 0, len(req.Flashcards))
	for _, item := range req.Flashcards {
		flashcards = append(flashcards, &model.Flashcard{
			UserID:       userID,
			Front:        item.Front,
			Back:         item.Back,
			Source:       item.Source,
			GenerationID: item.GenerationID,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.cardRepo.CreateBatch(ctx, tx, flashcards)
	})
	if err != nil {
		logger.Error("Transaction failed for CreateFlashcards", "error", err, "user_id", userID.String())
		return nil, model.ErrInternalServer
	}

	// 生成レコードの受け入れカウンタをベストエフォートで更新する。
	// 失敗してもカードは保存済みなので、ログに残して成功応答を返す。
	s.incrementAcceptedCounts(ctx, userID, req.Flashcards)

	return flashcards, nil
}

// incrementAcceptedCounts はAI由来カードの枚数を generation_id ごとに集計して加算します。
func (s *flashcardService) incrementAcceptedCounts(ctx context.Context, userID uuid.UUID, items []model.FlashcardCreateRequest) {
	logger := middleware.GetLogger(ctx)

	type counts struct{ edited, unedited int }
	byGeneration := make(map[uint]*counts)
	for _, item := range items {
		if !item.Source.IsAI() || item.GenerationID == nil {
			continue
		}
		c, ok := byGeneration[*item.GenerationID]
		if !ok {
			c = &counts{}
			byGeneration[*item.GenerationID] = c
		}
		if item.Source == model.SourceAIEdited {
			c.edited++
		} else {
			c.unedited++
		}
	}

	for generationID, c := range byGeneration {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.genRepo.IncrementAcceptedCounts(ctx, tx, userID, generationID, c.edited, c.unedited)
		})
		if err != nil {
			logger.Warn("Failed to increment accepted counts",
				"error", err,
				"generation_id", generationID,
				"user_id", userID.String(),
			)
		}
	}
}

func (s *flashcardService) ListFlashcards(ctx context.Context, userID uuid.UUID) ([]*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)
	flashcards, err := s.cardRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Error listing flashcards", "error", err, "user_id", userID.String())
		return nil, model.ErrInternalServer
	}
	return flashcards, nil
}

// UpdateFlashcard は front / back の部分更新を行います。更新後のカードを返します。
func (s *flashcardService) UpdateFlashcard(ctx context.Context, userID uuid.UUID, flashcardID uint, req *model.PatchFlashcardRequest) (*model.Flashcard, error) {
	logger := middleware.GetLogger(ctx)

	updates := make(map[string]interface{})
	if req.Front != nil {
		updates["front"] = *req.Front
	}
	if req.Back != nil {
		updates["back"] = *req.Back
	}
	if len(updates) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "更新対象のフィールドを1つ以上指定してください。", "", model.ErrInvalidInput)
	}

	var updated *model.Flashcard
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 所有権の確認を兼ねて存在チェック
		if _, err := s.cardRepo.FindByID(ctx, tx, userID, flashcardID); err != nil {
			return err
		}
		if err := s.cardRepo.Update(ctx, tx, userID, flashcardID, updates); err != nil {
			return err
		}
		card, err := s.cardRepo.FindByID(ctx, tx, userID, flashcardID)
		if err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Transaction failed for UpdateFlashcard", "error", err, "flashcard_id", flashcardID)
		return nil, model.ErrInternalServer
	}
	return updated, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, userID uuid.UUID, flashcardID uint) error {
	logger := middleware.GetLogger(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.cardRepo.FindByID(ctx, tx, userID, flashcardID); err != nil {
			return err
		}
		return s.cardRepo.Delete(ctx, tx, userID, flashcardID)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		logger.Error("Transaction failed for DeleteFlashcard", "error", err, "flashcard_id", flashcardID)
		return model.ErrInternalServer
	}
	return nil
}
