// internal/model/flashcard.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlashcardSource はフラッシュカードの出自を表す列挙型です。
type FlashcardSource string

const (
	SourceAIFull   FlashcardSource = "ai-full"   // AI生成・未編集
	SourceAIEdited FlashcardSource = "ai-edited" // AI生成・ユーザー編集済み
	SourceManual   FlashcardSource = "manual"    // 手動作成
)

// Valid は既知のsource値かどうかを判定します。
func (s FlashcardSource) Valid() bool {
	switch s {
	case SourceAIFull, SourceAIEdited, SourceManual:
		return true
	}
	return false
}

// IsAI はAI由来（generation_id必須）のsourceかどうかを判定します。
func (s FlashcardSource) IsAI() bool {
	return s == SourceAIFull || s == SourceAIEdited
}

// CardOrigin は source と generation_id の組み合わせを表す直和型です。
// 不正な組み合わせ（manualにgeneration_idが付く等）をコード上で構築できないよう、
// コンストラクタ経由でのみ生成します。
type CardOrigin struct {
	source       FlashcardSource
	generationID *uint
}

func ManualOrigin() CardOrigin {
	return CardOrigin{source: SourceManual}
}

func AIFullOrigin(generationID uint) CardOrigin {
	id := generationID
	return CardOrigin{source: SourceAIFull, generationID: &id}
}

func AIEditedOrigin(generationID uint) CardOrigin {
	id := generationID
	return CardOrigin{source: SourceAIEdited, generationID: &id}
}

func (o CardOrigin) Source() FlashcardSource { return o.source }

func (o CardOrigin) GenerationID() *uint {
	if o.generationID == nil {
		return nil
	}
	id := *o.generationID
	return &id
}

// Flashcard は保存済みのフラッシュカードを表します
type Flashcard struct {
	FlashcardID  uint            `gorm:"primaryKey;autoIncrement" json:"flashcard_id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Front        string          `gorm:"size:200;not null" json:"front"` // 表面（質問）
	Back         string          `gorm:"size:500;not null" json:"back"`  // 裏面（回答）
	Source       FlashcardSource `gorm:"size:20;not null" json:"source"`
	GenerationID *uint           `gorm:"index" json:"generation_id"` // manualの場合はnull
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"` // 論理削除用
}

func (Flashcard) TableName() string {
	return "flashcards"
}

// フラッシュカード1件分の作成DTO
type FlashcardCreateRequest struct {
	Front        string          `json:"front" validate:"required,max=200"`
	Back         string          `json:"back" validate:"required,max=500"`
	Source       FlashcardSource `json:"source" validate:"required"`
	GenerationID *uint           `json:"generation_id"`
}

// 一括作成リクエストDTO
type CreateFlashcardsRequest struct {
	Flashcards   []FlashcardCreateRequest `json:"flashcards" validate:"required,min=1"`
	GenerationID *uint                    `json:"generation_id,omitempty"`
}

// 一括作成レスポンスDTO
type CreateFlashcardsResponse struct {
	Flashcards []*Flashcard `json:"flashcards"`
}

// 一覧レスポンスDTO
type FlashcardsListResponse struct {
	Data []*Flashcard `json:"data"`
}

// 部分更新リクエストDTO (front/backのみ編集可能)
type PatchFlashcardRequest struct {
	Front *string `json:"front,omitempty" validate:"omitempty,min=1,max=200"`
	Back  *string `json:"back,omitempty" validate:"omitempty,min=1,max=500"`
}
