// internal/validation/validation.go
package validation

import (
	"fmt"
	"unicode/utf8"

	"go_10x_cards/internal/model"
)

// source_text の許容文字数。文字数はルーン単位で数えます (バイト数ではない)。
const (
	SourceTextMinLength = 1000
	SourceTextMaxLength = 10000
)

// front / back の最大文字数。
const (
	FrontMaxLength = 200
	BackMaxLength  = 500
)

// ValidateSourceText は学習テキストの文字数を検証します。
// 失敗時はフィールド名付きの *model.AppError を返します。
func ValidateSourceText(sourceText string) *model.AppError {
	length := utf8.RuneCountInString(sourceText)
	if length < SourceTextMinLength {
		return model.NewAppError(
			"VALIDATION_ERROR",
			fmt.Sprintf("source_textは%d文字以上で入力してください。", SourceTextMinLength),
			"source_text",
			model.ErrInvalidInput,
		)
	}
	if length > SourceTextMaxLength {
		return model.NewAppError(
			"VALIDATION_ERROR",
			fmt.Sprintf("source_textは%d文字以下で入力してください。", SourceTextMaxLength),
			"source_text",
			model.ErrInvalidInput,
		)
	}
	return nil
}

// ValidateFlashcard は1枚分のフラッシュカード入力を検証します。
// source と generation_id の組み合わせ規則:
//   - ai-full / ai-edited は generation_id 必須
//   - manual は generation_id を持ってはならない
func ValidateFlashcard(req *model.FlashcardCreateRequest) *model.AppError {
	if req.Front == "" {
		return model.NewAppError("VALIDATION_ERROR", "表面は必須です。", "front", model.ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Front) > FrontMaxLength {
		return model.NewAppError(
			"VALIDATION_ERROR",
			fmt.Sprintf("表面は%d文字以下で入力してください。", FrontMaxLength),
			"front",
			model.ErrInvalidInput,
		)
	}
	if req.Back == "" {
		return model.NewAppError("VALIDATION_ERROR", "裏面は必須です。", "back", model.ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.Back) > BackMaxLength {
		return model.NewAppError(
			"VALIDATION_ERROR",
			fmt.Sprintf("裏面は%d文字以下で入力してください。", BackMaxLength),
			"back",
			model.ErrInvalidInput,
		)
	}

	source := req.Source
	if !source.Valid() {
		return model.NewAppError(
			"VALIDATION_ERROR",
			"作成元はai-full、ai-edited、manualのいずれかを指定してください。",
			"source",
			model.ErrInvalidInput,
		)
	}
	if source.IsAI() && req.GenerationID == nil {
		return model.NewAppError(
			"VALIDATION_ERROR",
			"AI作成のフラッシュカードにはgeneration_idが必要です。",
			"generation_id",
			model.ErrInvalidInput,
		)
	}
	if source == model.SourceManual && req.GenerationID != nil {
		return model.NewAppError(
			"VALIDATION_ERROR",
			"手動作成のフラッシュカードにgeneration_idは指定できません。",
			"generation_id",
			model.ErrInvalidInput,
		)
	}
	return nil
}

// ValidateFlashcardsCommand は一括保存リクエスト全体を検証します。
func ValidateFlashcardsCommand(req *model.CreateFlashcardsRequest) *model.AppError {
	if len(req.Flashcards) == 0 {
		return model.NewAppError(
			"VALIDATION_ERROR",
			"フラッシュカードを1枚以上指定してください。",
			"flashcards",
			model.ErrInvalidInput,
		)
	}
	for i := range req.Flashcards {
		if appErr := ValidateFlashcard(&req.Flashcards[i]); appErr != nil {
			return appErr
		}
	}
	return nil
}
