// internal/review/session.go
//
// AI提案の受け入れ・却下・編集を保存前にメモリ上で管理するセッションです。
// DBには保存操作が成功するまで何も書き込まれません。
package review

import (
	"context"
	"errors"

	"go_10x_cards/internal/model"
)

var (
	ErrNoSelection         = errors.New("review: no accepted proposals")
	ErrMissingGenerationID = errors.New("review: generation ID is not set")
	ErrUnknownProposal     = errors.New("review: unknown proposal ID")
)

// Saver は受け入れたカードの保存境界です。HTTP API やサービス層を後ろに置きます。
type Saver interface {
	SaveFlashcards(ctx context.Context, cards []model.FlashcardCreateRequest) error
}

// Proposal はレビュー中のカード案です。IDはセッション内で安定しており、
// 他の案を却下しても変わりません。
type Proposal struct {
	ID       int
	Front    string
	Back     string
	Source   model.FlashcardSource
	Accepted bool
	Edited   bool
}

// Session は1回の生成結果のレビュー状態を保持します。
// 1つのセッションは単一の所有者から順に操作される前提で、ロックは持ちません。
type Session struct {
	saver Saver

	// lastToken は最後に発行した世代トークン。Apply はこのトークンを
	// 持つ結果だけを受け入れるので、古い生成結果が後から届いても無視されます。
	lastToken    uint64
	generationID *uint
	sourceText   string

	order  []int
	cards  map[int]*Proposal
	nextID int
}

func NewSession(saver Saver) *Session {
	return &Session{
		saver:  saver,
		cards:  make(map[int]*Proposal),
		nextID: 1,
	}
}

func (s *Session) SetSourceText(text string) { s.sourceText = text }
func (s *Session) SourceText() string        { return s.sourceText }

// NextToken は新しい生成要求のためのトークンを発行します。
// 発行した時点で、それ以前のトークンを持つ結果はすべて無効になります。
func (s *Session) NextToken() uint64 {
	s.lastToken++
	return s.lastToken
}

// Apply は生成結果をセッションに反映します。token が最新でない場合は
// 何も変更せず false を返します (最後の生成要求だけが勝つ)。
func (s *Session) Apply(token uint64, generationID uint, proposals []model.FlashcardProposal) bool {
	if token != s.lastToken {
		return false
	}

	s.order = s.order[:0]
	s.cards = make(map[int]*Proposal, len(proposals))
	id := generationID
	s.generationID = &id

	for _, p := range proposals {
		proposal := &Proposal{
			ID:     s.nextID,
			Front:  p.Front,
			Back:   p.Back,
			Source: model.SourceAIFull,
		}
		s.nextID++
		s.cards[proposal.ID] = proposal
		s.order = append(s.order, proposal.ID)
	}
	return true
}

// Proposals は表示順の提案スナップショットを返します。
func (s *Session) Proposals() []Proposal {
	result := make([]Proposal, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.cards[id])
	}
	return result
}

// Accept は受け入れ状態をトグルします。
func (s *Session) Accept(id int) error {
	proposal, ok := s.cards[id]
	if !ok {
		return ErrUnknownProposal
	}
	proposal.Accepted = !proposal.Accepted
	return nil
}

// Reject は提案をセッションから取り除きます。他の提案のIDは変わりません。
func (s *Session) Reject(id int) error {
	if _, ok := s.cards[id]; !ok {
		return ErrUnknownProposal
	}
	delete(s.cards, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Edit は表裏の内容を書き換え、編集済みマークを付けます。
// 一度編集した提案は内容を元に戻しても編集済みのままです。
// 受け入れ状態は変更しません。
func (s *Session) Edit(id int, front, back string) error {
	proposal, ok := s.cards[id]
	if !ok {
		return ErrUnknownProposal
	}
	proposal.Front = front
	proposal.Back = back
	proposal.Edited = true
	return nil
}

// SaveAccepted は受け入れ済みの提案だけを保存します。
// 編集済みの提案は ai-edited、未編集は ai-full として保存されます。
// 成功したらセッションの提案とgeneration IDをクリアします。失敗時は状態を保ちます。
func (s *Session) SaveAccepted(ctx context.Context) error {
	return s.save(ctx, true)
}

// SaveAll は受け入れ状態に関わらず、残っている提案をすべて保存します。
func (s *Session) SaveAll(ctx context.Context) error {
	return s.save(ctx, false)
}

func (s *Session) save(ctx context.Context, acceptedOnly bool) error {
	if s.generationID == nil {
		return ErrMissingGenerationID
	}

	cards := make([]model.FlashcardCreateRequest, 0, len(s.order))
	for _, id := range s.order {
		proposal := s.cards[id]
		if acceptedOnly && !proposal.Accepted {
			continue
		}
		// source と generation_id の組み合わせは CardOrigin 経由でのみ作る
		origin := model.AIFullOrigin(*s.generationID)
		if proposal.Edited {
			origin = model.AIEditedOrigin(*s.generationID)
		}
		cards = append(cards, model.FlashcardCreateRequest{
			Front:        proposal.Front,
			Back:         proposal.Back,
			Source:       origin.Source(),
			GenerationID: origin.GenerationID(),
		})
	}
	if len(cards) == 0 {
		return ErrNoSelection
	}

	if err := s.saver.SaveFlashcards(ctx, cards); err != nil {
		return err
	}

	// 保存成功後はレビュー対象をクリアする
	s.order = nil
	s.cards = make(map[int]*Proposal)
	s.generationID = nil
	s.sourceText = ""
	return nil
}
