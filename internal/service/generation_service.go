//go:generate mockery --name GenerationService --output ./mocks --outpkg mocks --case=underscore --structname MockGenerationService
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"

	"go_10x_cards/internal/config"
	"go_10x_cards/internal/middleware"
	"go_10x_cards/internal/model"
	"go_10x_cards/internal/openrouter"
	"go_10x_cards/internal/repository"
	"go_10x_cards/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LLMClient はチャット補完APIの呼び出し境界です。
// 本番では *openrouter.Client を注入し、テストではスタブを注入します。
type LLMClient interface {
	ChatCompletion(ctx context.Context, req openrouter.ChatRequest) (*openrouter.ChatResponse, error)
}

type GenerationService interface {
	Generate(ctx context.Context, userID uuid.UUID, req *model.GenerateFlashcardsRequest) (*model.GenerationCreateResponse, error)
}

type generationService struct {
	db         *gorm.DB
	genRepo    repository.GenerationRepository
	errLogRepo repository.GenerationErrorLogRepository
	llm        LLMClient
	cfg        *config.Config
}

func NewGenerationService(db *gorm.DB, genRepo repository.GenerationRepository, errLogRepo repository.GenerationErrorLogRepository, llm LLMClient, cfg *config.Config) GenerationService {
	return &generationService{
		db:         db,
		genRepo:    genRepo,
		errLogRepo: errLogRepo,
		llm:        llm,
		cfg:        cfg,
	}
}

// フラッシュカード生成用のシステムプロンプト。
// 出力は response_format の JSON Schema でも拘束しますが、プロンプト側にも明記します。
const generationSystemPrompt = `You are an AI assistant that creates educational flashcards from the provided text.
Generate 3 to 5 concise question-answer pairs covering the key concepts in the text.
Rules:
- "front" is the question side (max 200 characters).
- "back" is the answer side (max 500 characters). Rephrase in your own words, do not copy sentences verbatim.
- Write the flashcards in the same language as the source text.
- Return ONLY a JSON object of the form {"flashcards": [{"front": "...", "back": "..."}]}.`

// モデル出力を拘束するJSONスキーマ (strict)。
var flashcardsSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "flashcards": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "front": {"type": "string"},
          "back": {"type": "string"}
        },
        "required": ["front", "back"],
        "additionalProperties": false
      }
    }
  },
  "required": ["flashcards"],
  "additionalProperties": false
}`)

// llmFlashcardsPayload はモデル出力のパース先です。
type llmFlashcardsPayload struct {
	Flashcards []struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"flashcards"`
}

// Generate は学習テキストからフラッシュカード案を生成します。
// 流れ:
//  1. source_text の文字数検証
//  2. SHA-256ハッシュ計算とプレースホルダ行のINSERT (失敗したら中断)
//  3. LLM呼び出し (失敗したら generation_error_logs に記録して中断)
//  4. レスポンスのパース (失敗も同様に記録して中断)
//  5. generated_count / generation_duration のベストエフォート更新
//
// 手順2で作った行は、後続が失敗してもロールバックせず監査記録として残します。
func (s *generationService) Generate(ctx context.Context, userID uuid.UUID, req *model.GenerateFlashcardsRequest) (*model.GenerationCreateResponse, error) {
	logger := middleware.GetLogger(ctx)

	if appErr := validation.ValidateSourceText(req.SourceText); appErr != nil {
		return nil, appErr
	}

	sourceTextLength := utf8.RuneCountInString(req.SourceText)
	hashBytes := sha256.Sum256([]byte(req.SourceText))
	sourceTextHash := hex.EncodeToString(hashBytes[:])

	// 2. プレースホルダ行のINSERT
	generation := &model.Generation{
		UserID:           userID,
		SourceTextHash:   sourceTextHash,
		SourceTextLength: sourceTextLength,
		Model:            s.cfg.OpenRouter.Model,
	}
	if err := s.genRepo.Create(ctx, s.db, generation); err != nil {
		logger.Error("Failed to insert generation record", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("PERSISTENCE_ERROR", "生成履歴の保存に失敗しました。", "", err)
	}

	// 3. LLM呼び出し
	startedAt := time.Now()
	chatResp, err := s.llm.ChatCompletion(ctx, openrouter.ChatRequest{
		Messages: []openrouter.Message{
			{Role: "system", Content: generationSystemPrompt},
			{Role: "user", Content: req.SourceText},
		},
		ResponseFormat: &openrouter.ResponseFormat{
			Type: "json_schema",
			JSONSchema: &openrouter.JSONSchema{
				Name:   "flashcards",
				Strict: true,
				Schema: flashcardsSchema,
			},
		},
	})
	if err != nil {
		s.logGenerationError(ctx, userID, &generation.GenerationID, errorCodeOf(err), err.Error(), sourceTextHash, sourceTextLength)
		logger.Error("LLM call failed", "error", err, "generation_id", generation.GenerationID)
		return nil, model.NewAppError("UPSTREAM_ERROR", "AIによるフラッシュカードの生成に失敗しました。", "", err)
	}
	duration := time.Since(startedAt)

	// 4. パース
	proposals, parseErr := parseProposals(chatResp)
	if parseErr != nil {
		s.logGenerationError(ctx, userID, &generation.GenerationID, openrouter.CodeParseError, parseErr.Error(), sourceTextHash, sourceTextLength)
		logger.Error("Failed to parse LLM response", "error", parseErr, "generation_id", generation.GenerationID)
		return nil, model.NewAppError("PARSE_ERROR", "AIによるフラッシュカードの生成に失敗しました。", "", parseErr)
	}

	// 5. 件数と所要時間のベストエフォート更新。失敗してもレスポンスは返す。
	updates := map[string]interface{}{
		"generated_count":     len(proposals),
		"generation_duration": int(duration.Milliseconds()),
	}
	if err := s.genRepo.Update(ctx, s.db, userID, generation.GenerationID, updates); err != nil {
		logger.Warn("Failed to update generation counters", "error", err, "generation_id", generation.GenerationID)
	}

	return &model.GenerationCreateResponse{
		GenerationID:        generation.GenerationID,
		FlashcardsProposals: proposals,
		GeneratedCount:      len(proposals),
	}, nil
}

// parseProposals は最初のchoiceの content をJSONとして解釈し、提案リストへ変換します。
func parseProposals(chatResp *openrouter.ChatResponse) ([]model.FlashcardProposal, error) {
	if chatResp == nil || len(chatResp.Choices) == 0 {
		return nil, errors.New("LLM response contains no choices")
	}
	content := chatResp.Choices[0].Message.Content
	if content == "" {
		return nil, errors.New("LLM response content is empty")
	}

	var payload llmFlashcardsPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, errors.New("LLM response is not valid JSON")
	}
	if payload.Flashcards == nil {
		return nil, errors.New("LLM response is missing flashcards field")
	}

	proposals := make([]model.FlashcardProposal, 0, len(payload.Flashcards))
	for _, card := range payload.Flashcards {
		proposals = append(proposals, model.FlashcardProposal{
			Front:  card.Front,
			Back:   card.Back,
			Source: model.SourceAIFull,
		})
	}
	return proposals, nil
}

// errorCodeOf はLLMエラーの分類コードを取り出します。分類できない場合は UNKNOWN_ERROR。
func errorCodeOf(err error) string {
	var orErr *openrouter.Error
	if errors.As(err, &orErr) {
		return orErr.Code
	}
	return "UNKNOWN_ERROR"
}

// logGenerationError は失敗を generation_error_logs に記録します。
// 記録自体の失敗はログに残すだけで、呼び出し元のエラーを上書きしません。
func (s *generationService) logGenerationError(ctx context.Context, userID uuid.UUID, generationID *uint, code, message, sourceTextHash string, sourceTextLength int) {
	logger := middleware.GetLogger(ctx)
	errorLog := &model.GenerationErrorLog{
		UserID:           userID,
		GenerationID:     generationID,
		ErrorCode:        code,
		ErrorMessage:     message,
		Model:            s.cfg.OpenRouter.Model,
		SourceTextHash:   sourceTextHash,
		SourceTextLength: sourceTextLength,
	}
	if err := s.errLogRepo.Create(ctx, s.db, errorLog); err != nil {
		logger.Error("Failed to write generation error log", "error", err, "error_code", code)
	}
}
