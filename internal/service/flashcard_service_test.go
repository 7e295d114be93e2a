// internal/service/flashcard_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"go_10x_cards/internal/model"
	"go_10x_cards/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBFlashcard() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

func ptrUint(v uint) *uint { return &v }
func ptrStr(v string) *string { return &v }

// --- Test CreateFlashcards ---

func Test_flashcardService_CreateFlashcards(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("正常系: 混在バッチの保存と受け入れカウンタの更新", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		genRepo := new(mocks.GenerationRepository)
		svc := NewFlashcardService(db, cardRepo, genRepo)

		req := &model.CreateFlashcardsRequest{
			Flashcards: []model.FlashcardCreateRequest{
				{Front: "Q1", Back: "A1", Source: model.SourceAIFull, GenerationID: ptrUint(3)},
				{Front: "Q2", Back: "A2", Source: model.SourceAIEdited, GenerationID: ptrUint(3)},
				{Front: "Q3", Back: "A3", Source: model.SourceAIFull, GenerationID: ptrUint(3)},
				{Front: "Q4", Back: "A4", Source: model.SourceManual},
			},
		}

		cardRepo.On("CreateBatch", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(cards []*model.Flashcard) bool {
			if len(cards) != 4 {
				return false
			}
			for _, card := range cards {
				if card.UserID != userID {
					return false
				}
			}
			return cards[3].Source == model.SourceManual && cards[3].GenerationID == nil
		})).Return(nil).Once()
		// ai-edited 1枚、ai-full 2枚としてカウントされる (manualは対象外)
		genRepo.On("IncrementAcceptedCounts", ctx, mock.AnythingOfType("*gorm.DB"), userID, uint(3), 1, 2).
			Return(nil).Once()

		flashcards, err := svc.CreateFlashcards(ctx, userID, req)

		require.NoError(t, err)
		assert.Len(t, flashcards, 4)
		cardRepo.AssertExpectations(t)
		genRepo.AssertExpectations(t)
	})

	t.Run("異常系: 1枚でも不正ならリポジトリは呼ばれない", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		genRepo := new(mocks.GenerationRepository)
		svc := NewFlashcardService(db, cardRepo, genRepo)

		req := &model.CreateFlashcardsRequest{
			Flashcards: []model.FlashcardCreateRequest{
				{Front: "Q1", Back: "A1", Source: model.SourceManual},
				{Front: "Q2", Back: "A2", Source: model.SourceAIFull}, // generation_idがない
			},
		}

		_, err := svc.CreateFlashcards(ctx, userID, req)

		require.Error(t, err)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Equal(t, "generation_id", appErr.Field)
		cardRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: 空配列は拒否される", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		genRepo := new(mocks.GenerationRepository)
		svc := NewFlashcardService(db, cardRepo, genRepo)

		_, err := svc.CreateFlashcards(ctx, userID, &model.CreateFlashcardsRequest{})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("異常系: 保存失敗は内部エラー", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		genRepo := new(mocks.GenerationRepository)
		svc := NewFlashcardService(db, cardRepo, genRepo)

		cardRepo.On("CreateBatch", ctx, mock.AnythingOfType("*gorm.DB"), mock.Anything).
			Return(errors.New("db down")).Once()

		_, err := svc.CreateFlashcards(ctx, userID, &model.CreateFlashcardsRequest{
			Flashcards: []model.FlashcardCreateRequest{{Front: "Q1", Back: "A1", Source: model.SourceManual}},
		})

		assert.ErrorIs(t, err, model.ErrInternalServer)
		genRepo.AssertNotCalled(t, "IncrementAcceptedCounts",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("正常系: カウンタ更新の失敗は成功応答を妨げない", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		genRepo := new(mocks.GenerationRepository)
		svc := NewFlashcardService(db, cardRepo, genRepo)

		cardRepo.On("CreateBatch", ctx, mock.AnythingOfType("*gorm.DB"), mock.Anything).
			Return(nil).Once()
		genRepo.On("IncrementAcceptedCounts", ctx, mock.AnythingOfType("*gorm.DB"), userID, uint(7), 0, 1).
			Return(errors.New("update failed")).Once()

		flashcards, err := svc.CreateFlashcards(ctx, userID, &model.CreateFlashcardsRequest{
			Flashcards: []model.FlashcardCreateRequest{
				{Front: "Q1", Back: "A1", Source: model.SourceAIFull, GenerationID: ptrUint(7)},
			},
		})

		require.NoError(t, err)
		assert.Len(t, flashcards, 1)
	})

	t.Run("正常系: manualのみのバッチではカウンタ更新は行わない", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		genRepo := new(mocks.GenerationRepository)
		svc := NewFlashcardService(db, cardRepo, genRepo)

		cardRepo.On("CreateBatch", ctx, mock.AnythingOfType("*gorm.DB"), mock.Anything).
			Return(nil).Once()

		_, err := svc.CreateFlashcards(ctx, userID, &model.CreateFlashcardsRequest{
			Flashcards: []model.FlashcardCreateRequest{{Front: "Q1", Back: "A1", Source: model.SourceManual}},
		})

		require.NoError(t, err)
		genRepo.AssertNotCalled(t, "IncrementAcceptedCounts",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// --- Test ListFlashcards ---

func Test_flashcardService_ListFlashcards(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("正常系: 一覧が返る", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		svc := NewFlashcardService(db, cardRepo, new(mocks.GenerationRepository))

		want := []*model.Flashcard{
			{FlashcardID: 2, UserID: userID, Front: "Q2", Back: "A2", Source: model.SourceManual},
			{FlashcardID: 1, UserID: userID, Front: "Q1", Back: "A1", Source: model.SourceManual},
		}
		cardRepo.On("FindByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).Return(want, nil).Once()

		got, err := svc.ListFlashcards(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("異常系: リポジトリ失敗は内部エラー", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		svc := NewFlashcardService(db, cardRepo, new(mocks.GenerationRepository))

		cardRepo.On("FindByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(nil, errors.New("db down")).Once()

		_, err := svc.ListFlashcards(ctx, userID)
		assert.ErrorIs(t, err, model.ErrInternalServer)
	})
}

// --- Test UpdateFlashcard ---

func Test_flashcardService_UpdateFlashcard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	flashcardID := uint(5)

	t.Run("正常系: frontのみ更新", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		svc := NewFlashcardService(db, cardRepo, new(mocks.GenerationRepository))

		existing := &model.Flashcard{FlashcardID: flashcardID, UserID: userID, Front: "Q", Back: "A", Source: model.SourceManual}
		updated := &model.Flashcard{FlashcardID: flashcardID, UserID: userID, Front: "Q改", Back: "A", Source: model.SourceManual}

		cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID).
			Return(existing, nil).Once()
		cardRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID,
			map[string]interface{}{"front": "Q改"}).Return(nil).Once()
		cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID).
			Return(updated, nil).Once()

		got, err := svc.UpdateFlashcard(ctx, userID, flashcardID, &model.PatchFlashcardRequest{Front: ptrStr("Q改")})

		require.NoError(t, err)
		assert.Equal(t, "Q改", got.Front)
		cardRepo.AssertExpectations(t)
	})

	t.Run("異常系: 更新対象フィールドなし", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		svc := NewFlashcardService(db, cardRepo, new(mocks.GenerationRepository))

		_, err := svc.UpdateFlashcard(ctx, userID, flashcardID, &model.PatchFlashcardRequest{})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		cardRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: 存在しない (または他ユーザーの) カード", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		svc := NewFlashcardService(db, cardRepo, new(mocks.GenerationRepository))

		cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID).
			Return(nil, model.ErrNotFound).Once()

		_, err := svc.UpdateFlashcard(ctx, userID, flashcardID, &model.PatchFlashcardRequest{Back: ptrStr("A改")})

		assert.ErrorIs(t, err, model.ErrNotFound)
		cardRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// --- Test DeleteFlashcard ---

func Test_flashcardService_DeleteFlashcard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	flashcardID := uint(5)

	t.Run("正常系: 削除成功", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		svc := NewFlashcardService(db, cardRepo, new(mocks.GenerationRepository))

		existing := &model.Flashcard{FlashcardID: flashcardID, UserID: userID, Front: "Q", Back: "A", Source: model.SourceManual}
		cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID).
			Return(existing, nil).Once()
		cardRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID).
			Return(nil).Once()

		err := svc.DeleteFlashcard(ctx, userID, flashcardID)

		require.NoError(t, err)
		cardRepo.AssertExpectations(t)
	})

	t.Run("異常系: 存在しないカード", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		svc := NewFlashcardService(db, cardRepo, new(mocks.GenerationRepository))

		cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID).
			Return(nil, model.ErrNotFound).Once()

		err := svc.DeleteFlashcard(ctx, userID, flashcardID)

		assert.ErrorIs(t, err, model.ErrNotFound)
		cardRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: 削除時のDB障害は内部エラー", func(t *testing.T) {
		db := setupTestDBFlashcard()
		cardRepo := new(mocks.FlashcardRepository)
		svc := NewFlashcardService(db, cardRepo, new(mocks.GenerationRepository))

		existing := &model.Flashcard{FlashcardID: flashcardID, UserID: userID}
		cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID).
			Return(existing, nil).Once()
		cardRepo.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), userID, flashcardID).
			Return(errors.New("db down")).Once()

		err := svc.DeleteFlashcard(ctx, userID, flashcardID)
		assert.ErrorIs(t, err, model.ErrInternalServer)
	})
}
