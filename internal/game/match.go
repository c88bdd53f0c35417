// internal/game/match.go
package game

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go_vocab_game/internal/model"
)

type Mode string

const (
	ModeVisual Mode = "visual" // 全カード表向きで開始
	ModeMemory Mode = "memory" // 全カード裏向きで開始
)

// ParseMode は空文字を visual として扱います
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeVisual:
		return ModeVisual, nil
	case ModeMemory:
		return ModeMemory, nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", model.ErrInvalidInput, s)
}

type MatchState string

const (
	MatchSetup    MatchState = "setup"
	MatchPlaying  MatchState = "playing"
	MatchComplete MatchState = "complete"
)

type CardType string

const (
	CardEnglish CardType = "english"
	CardChinese CardType = "chinese"
)

// Card はマッチゲームのカード。WordID で対になる Word を参照します。
type Card struct {
	ID        string   `json:"id"`
	WordID    string   `json:"word_id"`
	Content   string   `json:"content"`
	Type      CardType `json:"type"`
	IsFlipped bool     `json:"is_flipped"`
	IsMatched bool     `json:"is_matched"`
}

type MatchConfig struct {
	GridPairs     int
	ConfirmDelay  time.Duration
	MismatchDelay time.Duration
}

func DefaultMatchConfig() MatchConfig {
	return MatchConfig{GridPairs: 8, ConfirmDelay: 500 * time.Millisecond, MismatchDelay: time.Second}
}

// MatchSummary は完了時に通知されるセッション要約
type MatchSummary struct {
	Pairs   int
	Moves   int
	Elapsed time.Duration
	Words   []model.Word
}

// MatchSnapshot は状態のコピーです (APIレスポンス用)
type MatchSnapshot struct {
	State          MatchState `json:"state"`
	Mode           Mode       `json:"mode"`
	Cards          []Card     `json:"cards"`
	Selected       []string   `json:"selected"`
	Moves          int        `json:"moves"`
	MatchedWordIDs []string   `json:"matched_word_ids"`
	Pairs          int        `json:"pairs"`
	Pending        bool       `json:"pending"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
}

// MatchGame はカードめくりのペア合わせゲームです。メソッドは並行に呼んでも安全です。
type MatchGame struct {
	mu  sync.Mutex
	cfg MatchConfig
	env Env

	words  []model.Word
	inPlay []model.Word

	mode       Mode
	state      MatchState
	cards      []Card
	selected   []int
	moves      int
	matched    []string
	startedAt  time.Time
	finishedAt time.Time

	generation uint64
	pending    Timer
	onComplete func(MatchSummary)
}

// NewMatchGame は先頭 GridPairs 語でゲームを作り、Playing 状態で返します
func NewMatchGame(words []model.Word, mode Mode, cfg MatchConfig, env Env) (*MatchGame, error) {
	if err := validateWords(words); err != nil {
		return nil, err
	}
	if cfg.GridPairs <= 0 {
		cfg.GridPairs = DefaultMatchConfig().GridPairs
	}
	g := &MatchGame{
		cfg:   cfg,
		env:   env.withDefaults(),
		words: append([]model.Word(nil), words...),
		mode:  mode,
	}
	g.mu.Lock()
	g.setupLocked()
	g.mu.Unlock()
	return g, nil
}

// OnComplete は完了時のコールバックを登録します。ロックの外で1回だけ呼ばれます。
func (g *MatchGame) OnComplete(fn func(MatchSummary)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onComplete = fn
}

// setupLocked は盤面を作り直します。保留中の遷移はすべて無効になります。
func (g *MatchGame) setupLocked() {
	g.generation++
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.state = MatchSetup

	n := min(g.cfg.GridPairs, len(g.words))
	g.inPlay = g.words[:n]
	faceUp := g.mode == ModeVisual
	cards := make([]Card, 0, n*2)
	for _, w := range g.inPlay {
		cards = append(cards,
			Card{ID: w.ID + "-en", WordID: w.ID, Content: w.English, Type: CardEnglish, IsFlipped: faceUp},
			Card{ID: w.ID + "-zh", WordID: w.ID, Content: w.Translation(), Type: CardChinese, IsFlipped: faceUp},
		)
	}
	// Fisher-Yates
	g.env.Rand.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	g.cards = cards
	g.selected = nil
	g.moves = 0
	g.matched = nil
	g.startedAt = g.env.Scheduler.Now()
	g.finishedAt = time.Time{}
	g.state = MatchPlaying
}

// Click はカードを1枚選びます。マッチ済み・2枚選択中・(memoryモードで)表向きのカードは何もしません。
func (g *MatchGame) Click(cardID string) (MatchSnapshot, error) {
	g.mu.Lock()
	var cues []Cue
	defer func() { playCues(g.env.Cues, g.env.Logger, cues) }()
	defer g.mu.Unlock()

	if g.state == MatchComplete {
		return g.snapshotLocked(), model.ErrGameOver
	}
	idx := g.indexOfLocked(cardID)
	if idx < 0 {
		return g.snapshotLocked(), fmt.Errorf("card %q: %w", cardID, model.ErrNotFound)
	}
	card := &g.cards[idx]
	if card.IsMatched || len(g.selected) >= 2 {
		return g.snapshotLocked(), nil
	}
	if g.mode == ModeMemory {
		if card.IsFlipped {
			return g.snapshotLocked(), nil
		}
		card.IsFlipped = true
		cues = append(cues, CueFlip)
	}

	g.selected = append(g.selected, idx)
	if len(g.selected) == 2 {
		g.moves++
		a, b := g.cards[g.selected[0]], g.cards[g.selected[1]]
		gen := g.generation
		if a.WordID == b.WordID && a.ID != b.ID {
			wordID := a.WordID
			g.pending = g.env.Scheduler.Schedule(g.cfg.ConfirmDelay, func() { g.confirmMatch(gen, wordID) })
		} else {
			first, second := g.selected[0], g.selected[1]
			g.pending = g.env.Scheduler.Schedule(g.cfg.MismatchDelay, func() { g.resolveMismatch(gen, first, second) })
		}
	}
	return g.snapshotLocked(), nil
}

func (g *MatchGame) confirmMatch(gen uint64, wordID string) {
	g.mu.Lock()
	if gen != g.generation || g.state != MatchPlaying {
		g.mu.Unlock()
		return
	}
	for i := range g.cards {
		if g.cards[i].WordID == wordID {
			g.cards[i].IsMatched = true
			g.cards[i].IsFlipped = true
		}
	}
	g.selected = nil
	g.pending = nil
	g.matched = append(g.matched, wordID)
	cues := []Cue{CueMatch}

	var done func(MatchSummary)
	var summary MatchSummary
	if len(g.matched) == len(g.inPlay) {
		g.state = MatchComplete
		g.finishedAt = g.env.Scheduler.Now()
		cues = append(cues, CueSuccess)
		summary = MatchSummary{
			Pairs:   len(g.inPlay),
			Moves:   g.moves,
			Elapsed: g.finishedAt.Sub(g.startedAt),
			Words:   append([]model.Word(nil), g.inPlay...),
		}
		done = g.onComplete
		g.env.Logger.Info("Match game completed", slog.Int("pairs", summary.Pairs), slog.Int("moves", summary.Moves))
	}
	g.mu.Unlock()

	playCues(g.env.Cues, g.env.Logger, cues)
	if done != nil {
		done(summary)
	}
}

func (g *MatchGame) resolveMismatch(gen uint64, first, second int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation || g.state != MatchPlaying {
		return
	}
	if g.mode == ModeMemory {
		for _, i := range []int{first, second} {
			if !g.cards[i].IsMatched {
				g.cards[i].IsFlipped = false
			}
		}
	}
	g.selected = nil
	g.pending = nil
}

// Reset は同じモードで盤面を作り直します
func (g *MatchGame) Reset() MatchSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setupLocked()
	return g.snapshotLocked()
}

// ToggleMode は visual と memory を切り替えます。進行中の状態は破棄されます。
func (g *MatchGame) ToggleMode() MatchSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.mode == ModeVisual {
		g.mode = ModeMemory
	} else {
		g.mode = ModeVisual
	}
	g.setupLocked()
	return g.snapshotLocked()
}

func (g *MatchGame) Snapshot() MatchSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *MatchGame) indexOfLocked(cardID string) int {
	for i := range g.cards {
		if g.cards[i].ID == cardID {
			return i
		}
	}
	return -1
}

func (g *MatchGame) snapshotLocked() MatchSnapshot {
	selected := make([]string, 0, len(g.selected))
	for _, i := range g.selected {
		selected = append(selected, g.cards[i].ID)
	}
	end := g.env.Scheduler.Now()
	if g.state == MatchComplete {
		end = g.finishedAt
	}
	return MatchSnapshot{
		State:          g.state,
		Mode:           g.mode,
		Cards:          append([]Card(nil), g.cards...),
		Selected:       selected,
		Moves:          g.moves,
		MatchedWordIDs: append([]string{}, g.matched...),
		Pairs:          len(g.inPlay),
		Pending:        g.pending != nil,
		ElapsedSeconds: int(end.Sub(g.startedAt) / time.Second),
	}
}
