// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("resource conflict")
	ErrUpstream       = errors.New("upstream service error") // LLMゲートウェイ等の外部サービス起因
)

// IsSentinel は err が上記のセンチネルエラーそのものかどうかを判定します。
// クライアントへの details 出力に内部メッセージを混ぜないための判定に使います。
func IsSentinel(err error) bool {
	switch err {
	case ErrNotFound, ErrInvalidInput, ErrInternalServer,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrUpstream:
		return true
	default:
		return false
	}
}

// AppError はエラーコード・メッセージ・対象フィールドを持つアプリケーションエラーです。
// Err にはセンチネルエラーか原因エラーをラップします。
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Field:   field,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
