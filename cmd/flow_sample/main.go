// 生成からレビュー、保存までの一連の流れをAPI越しに実行するサンプルです。
// サーバーを起動した状態で実行してください。
//
//	APP_SERVER_URL (デフォルト http://localhost:8080)
//	SAMPLE_USER_ID (認証無効時に X-User-ID として送るUUID、省略可)
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"go_10x_cards/internal/model"
	"go_10x_cards/internal/review"
	"go_10x_cards/internal/validation"
)

type apiClient struct {
	baseURL string
	userID  string
	http    *http.Client
}

func (c *apiClient) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d: %s", http.MethodPost, path, resp.StatusCode, string(respBody))
	}
	if out != nil {
		return json.Unmarshal(respBody, out)
	}
	return nil
}

// SaveFlashcards は review.Saver をAPI呼び出しで実装します。
func (c *apiClient) SaveFlashcards(ctx context.Context, cards []model.FlashcardCreateRequest) error {
	req := model.CreateFlashcardsRequest{Flashcards: cards}
	return c.postJSON(ctx, "/api/v1/flashcards", req, nil)
}

func main() {
	baseURL := os.Getenv("APP_SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &apiClient{
		baseURL: baseURL,
		userID:  os.Getenv("SAMPLE_USER_ID"),
		http:    &http.Client{Timeout: 120 * time.Second},
	}
	ctx := context.Background()

	// --- 1. 学習テキストの用意とクライアント側検証 ---
	sourceText := strings.Repeat("Go言語は並行処理を言語仕様として備えたプログラミング言語です。", 40)
	if appErr := validation.ValidateSourceText(sourceText); appErr != nil {
		log.Fatalf("Source text is invalid: %v", appErr)
	}
	fmt.Printf("Source text: %d characters\n", len([]rune(sourceText)))

	// --- 2. フラッシュカード案の生成 ---
	fmt.Println("\n--- Generating flashcard proposals ---")
	var genResp model.GenerationCreateResponse
	err := client.postJSON(ctx, "/api/v1/generations", model.GenerateFlashcardsRequest{SourceText: sourceText}, &genResp)
	if err != nil {
		log.Fatalf("Failed to generate flashcards: %v", err)
	}
	fmt.Printf("Generation ID: %d, proposals: %d\n", genResp.GenerationID, genResp.GeneratedCount)

	// --- 3. レビューセッションで受け入れ・編集 ---
	session := review.NewSession(client)
	session.SetSourceText(sourceText)
	token := session.NextToken()
	session.Apply(token, genResp.GenerationID, genResp.FlashcardsProposals)

	proposals := session.Proposals()
	for i, p := range proposals {
		fmt.Printf("  [%d] %s / %s\n", p.ID, p.Front, p.Back)
		if err := session.Accept(p.ID); err != nil {
			log.Fatalf("Failed to accept proposal: %v", err)
		}
		// 最初の1枚だけ編集してみる (ai-edited として保存される)
		if i == 0 {
			if err := session.Edit(p.ID, p.Front, p.Back+" (補足あり)"); err != nil {
				log.Fatalf("Failed to edit proposal: %v", err)
			}
		}
	}

	// --- 4. 受け入れたカードの保存 ---
	fmt.Println("\n--- Saving accepted flashcards ---")
	if err := session.SaveAccepted(ctx); err != nil {
		log.Fatalf("Failed to save flashcards: %v", err)
	}
	fmt.Println("Saved. Review session cleared:", len(session.Proposals()) == 0)
}
