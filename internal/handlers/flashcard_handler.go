// internal/handlers/flashcard_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_10x_cards/internal/middleware"
	"go_10x_cards/internal/model"
	"go_10x_cards/internal/service"
	"go_10x_cards/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type FlashcardHandler struct {
	service service.FlashcardService
	logger  *slog.Logger
}

func NewFlashcardHandler(s service.FlashcardService, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		service: s,
		logger:  logger,
	}
}

// requireUserID は認証済みユーザーIDを取り出します。失敗時はレスポンス済み。
func (h *FlashcardHandler) requireUserID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return userID, true
}

// parseFlashcardID はURLパラメータのflashcard_idを解釈します。失敗時はレスポンス済み。
func (h *FlashcardHandler) parseFlashcardID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uint, bool) {
	idStr := chi.URLParam(r, "flashcard_id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Warn("Invalid flashcard ID format in URL", slog.String("flashcard_id_str", idStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "flashcard_idの形式が正しくありません。", "flashcard_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return 0, false
	}
	return uint(id), true
}

// PostFlashcards はフラッシュカードを一括作成するハンドラ
func (h *FlashcardHandler) PostFlashcards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostFlashcards"))

	userID, ok := h.requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.CreateFlashcardsRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)

			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	flashcards, err := h.service.CreateFlashcards(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error creating flashcards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcards created successfully", slog.Int("count", len(flashcards)))
	webutil.RespondWithJSON(w, http.StatusCreated, model.CreateFlashcardsResponse{Flashcards: flashcards}, logger)
}

// GetFlashcards はユーザーのフラッシュカード一覧を取得するハンドラ
func (h *FlashcardHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFlashcards"))

	userID, ok := h.requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	flashcards, err := h.service.ListFlashcards(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing flashcards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if flashcards == nil {
		flashcards = []*model.Flashcard{}
	}
	logger.Info("Flashcards listed successfully", slog.Int("count", len(flashcards)))
	webutil.RespondWithJSON(w, http.StatusOK, model.FlashcardsListResponse{Data: flashcards}, logger)
}

// PatchFlashcard はフラッシュカードの表裏を部分更新するハンドラ
func (h *FlashcardHandler) PatchFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchFlashcard"))

	userID, ok := h.requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	flashcardID, ok := h.parseFlashcardID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Uint64("flashcard_id", uint64(flashcardID)))

	var req model.PatchFlashcardRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))

			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)

			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	flashcard, err := h.service.UpdateFlashcard(r.Context(), userID, flashcardID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Flashcard not found for update")
			appErr := model.NewAppError("NOT_FOUND", "フラッシュカードが見つかりません。", "", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error updating flashcard in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcard updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, flashcard, logger)
}

// DeleteFlashcard はフラッシュカードを削除するハンドラ
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteFlashcard"))

	userID, ok := h.requireUserID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	flashcardID, ok := h.parseFlashcardID(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.Uint64("flashcard_id", uint64(flashcardID)))

	if err := h.service.DeleteFlashcard(r.Context(), userID, flashcardID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Flashcard not found for delete")
			appErr := model.NewAppError("NOT_FOUND", "フラッシュカードが見つかりません。", "", model.ErrNotFound)
			webutil.HandleError(w, logger, appErr)
			return
		}
		logger.Error("Error deleting flashcard in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcard deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
