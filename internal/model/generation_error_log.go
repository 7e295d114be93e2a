// internal/model/generation_error_log.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// GenerationErrorLog はLLM呼び出し・応答解析の失敗を記録するレコードです。
// 記録自体はベストエフォートで、失敗しても生成フローのエラー応答には影響しません。
type GenerationErrorLog struct {
	ErrorLogID       uint      `gorm:"primaryKey;autoIncrement" json:"error_log_id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	GenerationID     *uint     `gorm:"index" json:"generation_id"`
	ErrorCode        string    `gorm:"size:50;not null" json:"error_code"`
	ErrorMessage     string    `gorm:"not null" json:"error_message"`
	Model            string    `gorm:"size:100;not null" json:"model"`
	SourceTextHash   string    `gorm:"size:64;not null" json:"source_text_hash"`
	SourceTextLength int       `gorm:"not null" json:"source_text_length"`
	CreatedAt        time.Time `json:"created_at"`
}

func (GenerationErrorLog) TableName() string {
	return "generation_error_logs"
}
