// internal/game/spell.go
package game

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"go_vocab_game/internal/model"
)

type SpellState string

const (
	SpellPlaying  SpellState = "playing"
	SpellFeedback SpellState = "feedback"
	SpellComplete SpellState = "complete"
)

type SpellConfig struct {
	MaxAttempts  int
	CorrectDelay time.Duration
	WrongDelay   time.Duration
	Scoring      ScoringPolicy
}

func DefaultSpellConfig() SpellConfig {
	return SpellConfig{
		MaxAttempts:  2,
		CorrectDelay: 1500 * time.Millisecond,
		WrongDelay:   2000 * time.Millisecond,
		Scoring:      DefaultScoringPolicy(),
	}
}

// Feedback は直近の回答に対する結果。Answer は試行回数を使い切ったときだけ正解を入れます。
type Feedback struct {
	Correct      bool   `json:"correct"`
	Answer       string `json:"answer,omitempty"`
	AttemptsLeft int    `json:"attempts_left"`
}

// SpeechCue はブラウザの音声合成に渡す内容
type SpeechCue struct {
	Text string  `json:"text"`
	Lang string  `json:"lang"`
	Rate float64 `json:"rate"`
}

// SpellSummary は完了時のセッション要約
type SpellSummary struct {
	Total          int          `json:"total"`
	Correct        int          `json:"correct"`
	Elapsed        int          `json:"elapsed_seconds"`
	Evaluation     Evaluation   `json:"evaluation"`
	DifficultWords []model.Word `json:"difficult_words"`
}

// PromptView は出題中の単語から英語を除いたもの
type PromptView struct {
	WordID        string      `json:"word_id"`
	Chinese       string      `json:"chinese"`
	Pronunciation string      `json:"pronunciation,omitempty"`
	Level         model.Level `json:"level,omitempty"`
	Length        int         `json:"length"`
}

type SpellSnapshot struct {
	State            SpellState    `json:"state"`
	Index            int           `json:"index"`
	Total            int           `json:"total"`
	Prompt           *PromptView   `json:"prompt,omitempty"`
	Score            int           `json:"score"`
	Attempts         int           `json:"attempts"`
	DifficultWordIDs []string      `json:"difficult_word_ids"`
	Feedback         *Feedback     `json:"feedback,omitempty"`
	Summary          *SpellSummary `json:"summary,omitempty"`
	ElapsedSeconds   int           `json:"elapsed_seconds"`
}

// SpellGame は訳語を見て英単語をタイプする書き取りゲームです
type SpellGame struct {
	mu  sync.Mutex
	cfg SpellConfig
	env Env

	words []model.Word

	state      SpellState
	index      int
	score      int
	attempts   int
	difficult  []string
	feedback   *Feedback
	summary    *SpellSummary
	startedAt  time.Time
	finishedAt time.Time

	generation uint64
	pending    Timer
	onComplete func(SpellSummary)
}

func NewSpellGame(words []model.Word, cfg SpellConfig, env Env) (*SpellGame, error) {
	if err := validateWords(words); err != nil {
		return nil, err
	}
	def := DefaultSpellConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.Scoring == (ScoringPolicy{}) {
		cfg.Scoring = def.Scoring
	}
	g := &SpellGame{cfg: cfg, env: env.withDefaults(), words: append([]model.Word(nil), words...)}
	g.mu.Lock()
	g.restartLocked()
	g.mu.Unlock()
	return g, nil
}

// OnComplete は完了時のコールバックを登録します
func (g *SpellGame) OnComplete(fn func(SpellSummary)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onComplete = fn
}

func (g *SpellGame) restartLocked() {
	g.generation++
	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.state = SpellPlaying
	g.index = 0
	g.score = 0
	g.attempts = 0
	g.difficult = nil
	g.feedback = nil
	g.summary = nil
	g.startedAt = g.env.Scheduler.Now()
	g.finishedAt = time.Time{}
}

// Restart は最初の単語からやり直します
func (g *SpellGame) Restart() SpellSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.restartLocked()
	return g.snapshotLocked()
}

// AnswerMatches は前後の空白を除き、大文字小文字を区別せずに比較します
func AnswerMatches(answer, english string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(answer)) == fold.String(strings.TrimSpace(english))
}

// Submit は現在の単語への回答を判定します
func (g *SpellGame) Submit(answer string) (SpellSnapshot, error) {
	g.mu.Lock()
	var cues []Cue
	defer func() { playCues(g.env.Cues, g.env.Logger, cues) }()
	defer g.mu.Unlock()

	if err := g.checkPlayableLocked(); err != nil {
		return g.snapshotLocked(), err
	}

	word := g.words[g.index]
	g.attempts++
	gen := g.generation

	if AnswerMatches(answer, word.English) {
		g.score++
		g.state = SpellFeedback
		g.feedback = &Feedback{Correct: true, AttemptsLeft: g.cfg.MaxAttempts - g.attempts}
		g.pending = g.env.Scheduler.Schedule(g.cfg.CorrectDelay, func() { g.advanceAfterFeedback(gen) })
		cues = append(cues, CueCorrect)
		return g.snapshotLocked(), nil
	}

	g.markDifficultLocked(word.ID)
	cues = append(cues, CueWrong)
	if g.attempts < g.cfg.MaxAttempts {
		// 同じ単語でもう一度
		g.feedback = &Feedback{Correct: false, AttemptsLeft: g.cfg.MaxAttempts - g.attempts}
		return g.snapshotLocked(), nil
	}

	g.state = SpellFeedback
	g.feedback = &Feedback{Correct: false, Answer: word.English}
	g.pending = g.env.Scheduler.Schedule(g.cfg.WrongDelay, func() { g.advanceAfterFeedback(gen) })
	return g.snapshotLocked(), nil
}

// Skip は現在の単語を苦手単語に入れてすぐ次へ進みます。score と attempts は変わりません。
func (g *SpellGame) Skip() (SpellSnapshot, error) {
	g.mu.Lock()
	if err := g.checkPlayableLocked(); err != nil {
		snap := g.snapshotLocked()
		g.mu.Unlock()
		return snap, err
	}
	g.markDifficultLocked(g.words[g.index].ID)
	done, summary := g.advanceLocked()
	snap := g.snapshotLocked()
	g.mu.Unlock()

	if done != nil {
		done(summary)
	}
	return snap, nil
}

// Speak は現在の単語の読み上げ指示を返します。状態は変わりません。
func (g *SpellGame) Speak() (SpeechCue, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == SpellComplete {
		return SpeechCue{}, model.ErrGameOver
	}
	return SpeechCue{Text: g.words[g.index].English, Lang: "en-US", Rate: 0.8}, nil
}

func (g *SpellGame) checkPlayableLocked() error {
	switch g.state {
	case SpellComplete:
		return model.ErrGameOver
	case SpellFeedback:
		return model.ErrGameBusy
	}
	return nil
}

func (g *SpellGame) markDifficultLocked(wordID string) {
	for _, id := range g.difficult {
		if id == wordID {
			return
		}
	}
	g.difficult = append(g.difficult, wordID)
}

func (g *SpellGame) advanceAfterFeedback(gen uint64) {
	g.mu.Lock()
	if gen != g.generation || g.state != SpellFeedback {
		g.mu.Unlock()
		return
	}
	g.pending = nil
	done, summary := g.advanceLocked()
	g.mu.Unlock()

	if done != nil {
		done(summary)
	}
}

// advanceLocked は次の単語へ進みます。最後の単語だった場合は完了コールバックを返します。
func (g *SpellGame) advanceLocked() (func(SpellSummary), SpellSummary) {
	g.index++
	g.attempts = 0
	g.feedback = nil
	if g.index < len(g.words) {
		g.state = SpellPlaying
		return nil, SpellSummary{}
	}

	g.state = SpellComplete
	g.finishedAt = g.env.Scheduler.Now()
	secs := int(g.finishedAt.Sub(g.startedAt) / time.Second)
	s := SpellSummary{
		Total:          len(g.words),
		Correct:        g.score,
		Elapsed:        secs,
		Evaluation:     g.cfg.Scoring.Evaluate(g.score, len(g.words), float64(secs)),
		DifficultWords: g.difficultWordsLocked(),
	}
	g.summary = &s
	g.env.Logger.Info("Spell game completed",
		slog.Int("total", s.Total), slog.Int("correct", s.Correct), slog.Int("score", s.Evaluation.Score))
	return g.onComplete, s
}

func (g *SpellGame) difficultWordsLocked() []model.Word {
	byID := make(map[string]model.Word, len(g.words))
	for _, w := range g.words {
		byID[w.ID] = w
	}
	out := make([]model.Word, 0, len(g.difficult))
	for _, id := range g.difficult {
		out = append(out, byID[id])
	}
	return out
}

func (g *SpellGame) Snapshot() SpellSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *SpellGame) snapshotLocked() SpellSnapshot {
	end := g.env.Scheduler.Now()
	if g.state == SpellComplete {
		end = g.finishedAt
	}
	snap := SpellSnapshot{
		State:            g.state,
		Index:            g.index,
		Total:            len(g.words),
		Score:            g.score,
		Attempts:         g.attempts,
		DifficultWordIDs: append([]string{}, g.difficult...),
		ElapsedSeconds:   int(end.Sub(g.startedAt) / time.Second),
	}
	if g.feedback != nil {
		fb := *g.feedback
		snap.Feedback = &fb
	}
	if g.summary != nil {
		s := *g.summary
		snap.Summary = &s
	}
	if g.index < len(g.words) {
		w := g.words[g.index]
		snap.Prompt = &PromptView{
			WordID:        w.ID,
			Chinese:       w.Chinese,
			Pronunciation: w.Pronunciation,
			Level:         w.Level,
			Length:        len([]rune(w.English)),
		}
	}
	return snap
}

