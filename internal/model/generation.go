// internal/model/generation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Generation は1回の生成呼び出しの監査レコードです。
// accepted_* カウンタはカード保存時にベストエフォートで更新されるため、
// 厳密な台帳ではなく監査用の概算値です。
type Generation struct {
	GenerationID          uint      `gorm:"primaryKey;autoIncrement" json:"generation_id"`
	UserID                uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	SourceTextHash        string    `gorm:"size:64;not null" json:"source_text_hash"` // SHA-256 (hex)
	SourceTextLength      int       `gorm:"not null" json:"source_text_length"`
	Model                 string    `gorm:"size:100;not null" json:"model"`
	GeneratedCount        int       `gorm:"not null;default:0" json:"generated_count"`
	GenerationDuration    int       `gorm:"not null;default:0" json:"generation_duration"` // ミリ秒
	AcceptedEditedCount   int       `gorm:"not null;default:0" json:"accepted_edited_count"`
	AcceptedUneditedCount int       `gorm:"not null;default:0" json:"accepted_unedited_count"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (Generation) TableName() string {
	return "generations"
}

// 生成リクエストDTO。文字数の詳細チェックは validation パッケージで行います。
type GenerateFlashcardsRequest struct {
	SourceText string `json:"source_text" validate:"required"`
}

// FlashcardProposal はAIが提案したカード案です。保存されるまでDBには存在しません。
type FlashcardProposal struct {
	Front  string          `json:"front"`
	Back   string          `json:"back"`
	Source FlashcardSource `json:"source"`
}

// 生成レスポンスDTO
type GenerationCreateResponse struct {
	GenerationID        uint                `json:"generation_id"`
	FlashcardsProposals []FlashcardProposal `json:"flashcards_proposals"`
	GeneratedCount      int                 `json:"generated_count"`
}
