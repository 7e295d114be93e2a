// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go_10x_cards/internal/config"
	"go_10x_cards/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = testSecret
	userID := uuid.New()

	// 検証成功時にコンテキストのユーザーIDを記録するハンドラ
	var gotUserID uuid.UUID
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
	handler := JWTAuthMiddleware(cfg)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
	}{
		{
			name: "正常系: 有効なトークン",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": userID.String(),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "異常系: Authorizationヘッダーなし",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "異常系: Bearer形式でない",
			authHeader:     "Basic abcdef",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "異常系: 署名キーが違う",
			authHeader: "Bearer " + signToken(t, "wrong-secret", jwt.MapClaims{
				"sub": userID.String(),
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "異常系: 期限切れトークン",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": userID.String(),
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "異常系: subクレームなし",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "異常系: subがUUIDでない",
			authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": "user-123",
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = uuid.Nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantStatusCode == http.StatusOK {
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func TestDevUserContextMiddleware(t *testing.T) {
	var gotUserID uuid.UUID
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
	handler := DevUserContextMiddleware(nextHandler)

	t.Run("正常系: X-User-IDヘッダーのUUIDが使われる", func(t *testing.T) {
		userID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", userID.String())
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("正常系: ヘッダーなしは匿名ユーザーID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, model.DefaultUserID, gotUserID)
	})

	t.Run("異常系: 不正な形式のX-User-IDは401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-User-ID", "not-a-uuid")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, err := GetUserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInternalServer)
}
