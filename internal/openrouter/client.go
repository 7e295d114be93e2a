// internal/openrouter/client.go
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// エラー分類コード。Retryable なものだけがリトライ対象になります。
const (
	CodeAuthError      = "AUTH_ERROR"       // 401: 再試行しない
	CodeRateLimitError = "RATE_LIMIT_ERROR" // 429: 再試行する
	CodeServerError    = "SERVER_ERROR"     // 500: 再試行する
	CodeAPIError       = "API_ERROR"        // その他HTTPエラー: 5xxのみ再試行
	CodeTimeoutError   = "TIMEOUT_ERROR"    // タイムアウト: 再試行する
	CodeNetworkError   = "NETWORK_ERROR"    // トランスポート障害: 再試行する
	CodeParseError     = "PARSE_ERROR"      // ボディがJSONでない: 再試行しない
)

// Error はOpenRouter呼び出しの失敗を分類付きで表します。
type Error struct {
	Code      string
	Message   string
	Status    int // HTTPステータス (HTTP層に到達しなかった場合は0)
	Retryable bool
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("openrouter: %s (%s, status=%d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("openrouter: %s (%s)", e.Message, e.Code)
}

// リトライポリシー。初回1000msから2倍ずつ、1回あたり上限10000ms。
const (
	initialRetryDelay = 1000 * time.Millisecond
	maxRetryDelay     = 10000 * time.Millisecond
	backoffFactor     = 2
)

// Config はクライアント構築時に一度だけ与える設定です。
// プロセス全体で共有する場合も、シングルトンではなく生成したインスタンスをDIします。
type Config struct {
	APIKey      string
	BaseURL     string        // 省略時 https://openrouter.ai/api/v1
	Model       string        // 既定モデル
	Temperature float64       // 既定temperature (省略時 0.7)
	Timeout     time.Duration // 1試行あたりのタイムアウト (省略時 30s)
	MaxRetries  int           // 総試行回数 (省略時 3)
}

type Client struct {
	cfg        Config
	httpClient *http.Client

	// テストからバックオフ待ちを差し替えられるようにしておく
	sleep func(ctx context.Context, d time.Duration) error
}

// New は設定を検証してクライアントを生成します。APIキーは必須です。
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		sleep:      sleepContext,
	}, nil
}

// ChatCompletion はチャット補完APIを呼び出します。
// Retryable なエラーは指数バックオフで最大 MaxRetries 回まで順次再試行します。
// 同時に飛ぶ試行は常に1つだけです。
func (c *Client) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	payload := c.buildPayload(req)

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		resp, err := c.execute(ctx, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var apiErr *Error
		if !errors.As(err, &apiErr) || !apiErr.Retryable || attempt == c.cfg.MaxRetries {
			return nil, err
		}

		delay := backoffDelay(attempt)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (c *Client) buildPayload(req ChatRequest) *chatPayload {
	payload := &chatPayload{
		Messages:       req.Messages,
		Model:          req.Model,
		Temperature:    c.cfg.Temperature,
		ResponseFormat: req.ResponseFormat,
	}
	if payload.Model == "" {
		payload.Model = c.cfg.Model
	}
	if req.Temperature != nil {
		payload.Temperature = *req.Temperature
	}
	return payload
}

// backoffDelay は attempt 回目(1始まり)の失敗後に待つ時間を返します。
func backoffDelay(attempt int) time.Duration {
	delay := initialRetryDelay
	for i := 1; i < attempt; i++ {
		delay *= backoffFactor
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}

// execute は1回分のHTTP呼び出しを行い、失敗を *Error に分類します。
func (c *Client) execute(ctx context.Context, payload *chatPayload) (*ChatResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openrouter: marshal request: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openrouter: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(attemptCtx, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &Error{Code: CodeNetworkError, Message: err.Error(), Retryable: true}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(httpResp.StatusCode, respBody)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, &Error{Code: CodeParseError, Message: "failed to parse response body", Retryable: false}
	}
	return &chatResp, nil
}

func classifyTransportError(attemptCtx context.Context, err error) *Error {
	// 1試行のデッドライン超過はタイムアウト扱い。呼び出し元のキャンセルも同じ分類で返す。
	if errors.Is(err, context.DeadlineExceeded) || attemptCtx.Err() != nil {
		return &Error{Code: CodeTimeoutError, Message: "request timed out", Retryable: true}
	}
	return &Error{Code: CodeNetworkError, Message: err.Error(), Retryable: true}
}

func classifyHTTPError(status int, body []byte) *Error {
	switch status {
	case http.StatusUnauthorized:
		return &Error{Code: CodeAuthError, Message: "authentication failed", Status: status, Retryable: false}
	case http.StatusTooManyRequests:
		return &Error{Code: CodeRateLimitError, Message: "rate limit exceeded", Status: status, Retryable: true}
	case http.StatusInternalServerError:
		return &Error{Code: CodeServerError, Message: "server error", Status: status, Retryable: true}
	default:
		message := "request failed"
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
			message = eb.Error.Message
		}
		return &Error{Code: CodeAPIError, Message: message, Status: status, Retryable: status >= 500}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
