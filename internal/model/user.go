package model

import "github.com/google/uuid"

type ContextKey string

const (
	// UserIDKey は認証ミドルウェアがコンテキストに設定するユーザーIDのキー
	UserIDKey ContextKey = "userID"
)

// DefaultUserID は認証無効時（開発・デモ環境）に使用される匿名ユーザーのIDです。
// Supabase側のシードデータと合わせて全ゼロUUIDを使用します。
var DefaultUserID = uuid.MustParse("00000000-0000-0000-0000-000000000000")
