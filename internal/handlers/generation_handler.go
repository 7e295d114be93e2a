// internal/handlers/generation_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_10x_cards/internal/middleware"
	"go_10x_cards/internal/model"
	"go_10x_cards/internal/service"
	"go_10x_cards/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type GenerationHandler struct {
	service service.GenerationService
	logger  *slog.Logger
}

func NewGenerationHandler(s service.GenerationService, logger *slog.Logger) *GenerationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerationHandler{
		service: s,
		logger:  logger,
	}
}

// PostGeneration は学習テキストからフラッシュカード案を生成するハンドラ
func (h *GenerationHandler) PostGeneration(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostGeneration"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var req model.GenerateFlashcardsRequest
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

	resp, err := h.service.Generate(r.Context(), userID, &req)
	if err != nil {
		logger.Error("Error generating flashcards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Flashcards generated successfully",
		slog.Uint64("generation_id", uint64(resp.GenerationID)),
		slog.Int("generated_count", resp.GeneratedCount),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, resp, logger)
}
