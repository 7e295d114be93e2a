// internal/review/session_test.go
package review

import (
	"context"
	"errors"
	"testing"

	"go_10x_cards/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSaver は保存された内容を記録するテスト用Saverです。
type fakeSaver struct {
	saved [][]model.FlashcardCreateRequest
	err   error
}

func (f *fakeSaver) SaveFlashcards(ctx context.Context, cards []model.FlashcardCreateRequest) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, cards)
	return nil
}

func proposals(pairs ...[2]string) []model.FlashcardProposal {
	result := make([]model.FlashcardProposal, 0, len(pairs))
	for _, p := range pairs {
		result = append(result, model.FlashcardProposal{Front: p[0], Back: p[1], Source: model.SourceAIFull})
	}
	return result
}

func newLoadedSession(t *testing.T, saver Saver, generationID uint, cards ...[2]string) *Session {
	t.Helper()
	s := NewSession(saver)
	token := s.NextToken()
	require.True(t, s.Apply(token, generationID, proposals(cards...)))
	return s
}

func TestSession_Apply(t *testing.T) {
	t.Run("正常系: 最新トークンの結果は反映される", func(t *testing.T) {
		s := NewSession(&fakeSaver{})
		token := s.NextToken()
		ok := s.Apply(token, 1, proposals([2]string{"Q1", "A1"}, [2]string{"Q2", "A2"}))

		assert.True(t, ok)
		ps := s.Proposals()
		require.Len(t, ps, 2)
		assert.Equal(t, "Q1", ps[0].Front)
		assert.Equal(t, "Q2", ps[1].Front)
		assert.False(t, ps[0].Accepted)
		assert.False(t, ps[0].Edited)
	})

	t.Run("正常系: 古いトークンの結果は破棄される", func(t *testing.T) {
		s := NewSession(&fakeSaver{})
		oldToken := s.NextToken()
		newToken := s.NextToken()

		// 新しい生成の結果が先に届く
		require.True(t, s.Apply(newToken, 2, proposals([2]string{"new", "card"})))
		// 遅れて届いた古い生成の結果は無視される
		assert.False(t, s.Apply(oldToken, 1, proposals([2]string{"old", "card"})))

		ps := s.Proposals()
		require.Len(t, ps, 1)
		assert.Equal(t, "new", ps[0].Front)
	})

	t.Run("正常系: 再Applyで前のバッチが置き換わる", func(t *testing.T) {
		s := newLoadedSession(t, &fakeSaver{}, 1, [2]string{"Q1", "A1"})
		firstID := s.Proposals()[0].ID

		token := s.NextToken()
		require.True(t, s.Apply(token, 2, proposals([2]string{"Q2", "A2"})))

		ps := s.Proposals()
		require.Len(t, ps, 1)
		assert.Equal(t, "Q2", ps[0].Front)
		// IDはバッチをまたいで再利用されない
		assert.NotEqual(t, firstID, ps[0].ID)
	})
}

func TestSession_Accept(t *testing.T) {
	s := newLoadedSession(t, &fakeSaver{}, 1, [2]string{"Q1", "A1"})
	id := s.Proposals()[0].ID

	require.NoError(t, s.Accept(id))
	assert.True(t, s.Proposals()[0].Accepted)

	// トグルなので2回目で元に戻る
	require.NoError(t, s.Accept(id))
	assert.False(t, s.Proposals()[0].Accepted)

	assert.ErrorIs(t, s.Accept(999), ErrUnknownProposal)
}

func TestSession_Reject(t *testing.T) {
	s := newLoadedSession(t, &fakeSaver{}, 1, [2]string{"Q1", "A1"}, [2]string{"Q2", "A2"}, [2]string{"Q3", "A3"})
	ps := s.Proposals()

	require.NoError(t, s.Reject(ps[1].ID))

	remaining := s.Proposals()
	require.Len(t, remaining, 2)
	assert.Equal(t, "Q1", remaining[0].Front)
	assert.Equal(t, "Q3", remaining[1].Front)
	// 却下しても残りの提案のIDは変わらない
	assert.Equal(t, ps[0].ID, remaining[0].ID)
	assert.Equal(t, ps[2].ID, remaining[1].ID)

	// 却下後も残りの提案を受け入れられる
	require.NoError(t, s.Accept(ps[2].ID))
	assert.True(t, s.Proposals()[1].Accepted)

	assert.ErrorIs(t, s.Reject(ps[1].ID), ErrUnknownProposal)
}

func TestSession_Edit(t *testing.T) {
	s := newLoadedSession(t, &fakeSaver{}, 1, [2]string{"Q1", "A1"})
	id := s.Proposals()[0].ID

	require.NoError(t, s.Edit(id, "Q1改", "A1改"))
	p := s.Proposals()[0]
	assert.Equal(t, "Q1改", p.Front)
	assert.Equal(t, "A1改", p.Back)
	assert.True(t, p.Edited)
	assert.False(t, p.Accepted, "編集は受け入れ状態を変えない")

	// 内容を元に戻しても編集済みマークは残る
	require.NoError(t, s.Edit(id, "Q1", "A1"))
	assert.True(t, s.Proposals()[0].Edited)

	assert.ErrorIs(t, s.Edit(999, "x", "y"), ErrUnknownProposal)
}

func TestSession_SaveAccepted(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 受け入れ済みのみ保存され、編集有無でsourceが変わる", func(t *testing.T) {
		saver := &fakeSaver{}
		s := newLoadedSession(t, saver, 42, [2]string{"Q1", "A1"}, [2]string{"Q2", "A2"}, [2]string{"Q3", "A3"})
		ps := s.Proposals()

		require.NoError(t, s.Accept(ps[0].ID))
		require.NoError(t, s.Accept(ps[1].ID))
		require.NoError(t, s.Edit(ps[1].ID, "Q2改", "A2改"))

		require.NoError(t, s.SaveAccepted(ctx))

		require.Len(t, saver.saved, 1)
		cards := saver.saved[0]
		require.Len(t, cards, 2)
		assert.Equal(t, "Q1", cards[0].Front)
		assert.Equal(t, model.SourceAIFull, cards[0].Source)
		assert.Equal(t, "Q2改", cards[1].Front)
		assert.Equal(t, model.SourceAIEdited, cards[1].Source)
		for _, card := range cards {
			require.NotNil(t, card.GenerationID)
			assert.Equal(t, uint(42), *card.GenerationID)
		}

		// 保存成功後はセッションがクリアされる
		assert.Empty(t, s.Proposals())
		assert.Empty(t, s.SourceText())
		// クリア後の再保存はgeneration ID不在エラー
		assert.ErrorIs(t, s.SaveAccepted(ctx), ErrMissingGenerationID)
	})

	t.Run("異常系: 1枚も受け入れていない場合は保存しない", func(t *testing.T) {
		saver := &fakeSaver{}
		s := newLoadedSession(t, saver, 1, [2]string{"Q1", "A1"})

		assert.ErrorIs(t, s.SaveAccepted(ctx), ErrNoSelection)
		assert.Empty(t, saver.saved, "Saverは呼ばれないはず")
		assert.Len(t, s.Proposals(), 1, "状態は保たれる")
	})

	t.Run("異常系: generation ID未設定 (生成前) はNO_SELECTIONより優先", func(t *testing.T) {
		s := NewSession(&fakeSaver{})
		assert.ErrorIs(t, s.SaveAccepted(ctx), ErrMissingGenerationID)
	})

	t.Run("異常系: 保存失敗時は状態を保つ", func(t *testing.T) {
		saveErr := errors.New("api down")
		saver := &fakeSaver{err: saveErr}
		s := newLoadedSession(t, saver, 1, [2]string{"Q1", "A1"})
		require.NoError(t, s.Accept(s.Proposals()[0].ID))

		assert.ErrorIs(t, s.SaveAccepted(ctx), saveErr)

		// 失敗後も提案と受け入れ状態が残り、リトライできる
		ps := s.Proposals()
		require.Len(t, ps, 1)
		assert.True(t, ps[0].Accepted)
	})
}

func TestSession_SaveAll(t *testing.T) {
	ctx := context.Background()
	saver := &fakeSaver{}
	s := newLoadedSession(t, saver, 7, [2]string{"Q1", "A1"}, [2]string{"Q2", "A2"})

	// 受け入れ状態に関わらず全件保存される
	require.NoError(t, s.Accept(s.Proposals()[0].ID))
	require.NoError(t, s.SaveAll(ctx))

	require.Len(t, saver.saved, 1)
	assert.Len(t, saver.saved[0], 2)
	assert.Empty(t, s.Proposals())
}
