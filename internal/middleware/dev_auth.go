// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"go_10x_cards/internal/model"
	"go_10x_cards/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware は認証無効時用のミドルウェアです。
// X-User-ID ヘッダーがあればそのUUIDを、なければ匿名ユーザーIDをコンテキストに設定します。
// トークン検証は行いません。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userID := model.DefaultUserID
		if userIDStr := r.Header.Get("X-User-ID"); userIDStr != "" {
			parsed, err := uuid.Parse(userIDStr)
			if err != nil {
				logger.Warn("[DEV AUTH] Invalid X-User-ID format", "x_user_id", userIDStr)
				appErr := model.NewAppError("UNAUTHORIZED", "X-User-IDヘッダーの形式が正しくありません。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}
			userID = parsed
		}

		ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
