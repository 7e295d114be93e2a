// internal/openrouter/types.go
package openrouter

import "encoding/json"

// Message はチャットの1発言です。
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// ResponseFormat はOpenRouterの response_format パラメータです。
// json_schema を指定するとモデル出力がスキーマに拘束されます。
type ResponseFormat struct {
	Type       string      `json:"type"` // "json_schema"
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

type JSONSchema struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

// ChatRequest はチャット補完の呼び出しパラメータです。
// Model / Temperature が未指定の場合はクライアント既定値が使われます。
type ChatRequest struct {
	Messages       []Message
	Model          string
	Temperature    *float64
	ResponseFormat *ResponseFormat
}

// chatPayload はAPIへ送信するJSONボディです。
type chatPayload struct {
	Messages       []Message       `json:"messages"`
	Model          string          `json:"model"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ChatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// errorBody はOpenRouterのエラーレスポンスボディです。
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}
