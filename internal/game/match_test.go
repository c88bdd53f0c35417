// internal/game/match_test.go
package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/model"
)

func newTestMatch(t *testing.T, n int, mode Mode) (*MatchGame, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler(testStart)
	g, err := NewMatchGame(testWords(n), mode, DefaultMatchConfig(), testEnv(sched))
	require.NoError(t, err)
	return g, sched
}

func TestNewMatchGame_Setup(t *testing.T) {
	tests := []struct {
		name      string
		words     int
		mode      Mode
		wantCards int
		wantUp    bool
	}{
		{name: "正常系: 8語で16枚 (visual は表向き)", words: 8, mode: ModeVisual, wantCards: 16, wantUp: true},
		{name: "正常系: 10語でも先頭8語のみ", words: 10, mode: ModeVisual, wantCards: 16, wantUp: true},
		{name: "正常系: 3語なら6枚 (memory は裏向き)", words: 3, mode: ModeMemory, wantCards: 6, wantUp: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestMatch(t, tt.words, tt.mode)
			snap := g.Snapshot()

			assert.Equal(t, MatchPlaying, snap.State)
			require.Len(t, snap.Cards, tt.wantCards)
			assert.Equal(t, tt.wantCards/2, snap.Pairs)

			perWord := map[string]int{}
			for _, c := range snap.Cards {
				perWord[c.WordID]++
				assert.Equal(t, tt.wantUp, c.IsFlipped)
				assert.False(t, c.IsMatched)
			}
			assert.Len(t, perWord, tt.wantCards/2)
			for id, n := range perWord {
				assert.Equal(t, 2, n, id)
			}
			_, tooMany := perWord["w8"]
			assert.False(t, tooMany)
		})
	}
}

func TestNewMatchGame_InvalidWords(t *testing.T) {
	sched := NewManualScheduler(testStart)

	_, err := NewMatchGame(nil, ModeVisual, DefaultMatchConfig(), testEnv(sched))
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	dup := []model.Word{{ID: "a", English: "apple"}, {ID: "a", English: "ant"}}
	_, err = NewMatchGame(dup, ModeVisual, DefaultMatchConfig(), testEnv(sched))
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	blank := []model.Word{{ID: "a", English: "  "}}
	_, err = NewMatchGame(blank, ModeVisual, DefaultMatchConfig(), testEnv(sched))
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestMatchGame_PlayToCompletion(t *testing.T) {
	g, sched := newTestMatch(t, 8, ModeVisual)
	var summaries []MatchSummary
	g.OnComplete(func(s MatchSummary) { summaries = append(summaries, s) })

	for i, w := range testWords(8) {
		_, err := g.Click(w.ID + "-en")
		require.NoError(t, err)
		snap, err := g.Click(w.ID + "-zh")
		require.NoError(t, err)
		assert.Equal(t, i+1, snap.Moves)
		assert.True(t, snap.Pending)

		sched.Advance(499 * time.Millisecond)
		assert.Len(t, g.Snapshot().MatchedWordIDs, i)

		sched.Advance(time.Millisecond)
		snap = g.Snapshot()
		assert.Len(t, snap.MatchedWordIDs, i+1)
		assert.Empty(t, snap.Selected)
		if i < 7 {
			assert.Equal(t, MatchPlaying, snap.State)
		}
	}

	snap := g.Snapshot()
	assert.Equal(t, MatchComplete, snap.State)
	assert.Equal(t, 8, snap.Moves)
	for _, c := range snap.Cards {
		assert.True(t, c.IsMatched)
	}
	require.Len(t, summaries, 1)
	assert.Equal(t, 8, summaries[0].Pairs)
	assert.Equal(t, 8, summaries[0].Moves)
	assert.Equal(t, 4*time.Second, summaries[0].Elapsed)

	_, err := g.Click("w0-en")
	assert.ErrorIs(t, err, model.ErrGameOver)
}

func TestMatchGame_MismatchInMemoryMode(t *testing.T) {
	g, sched := newTestMatch(t, 8, ModeMemory)

	_, err := g.Click("w0-en")
	require.NoError(t, err)
	snap, err := g.Click("w1-zh")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Moves)
	assert.Len(t, snap.Selected, 2)

	// 2枚選択中のクリックは無視
	snap, err = g.Click("w2-en")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Moves)
	assert.Len(t, snap.Selected, 2)

	sched.Advance(999 * time.Millisecond)
	assert.True(t, cardByID(g.Snapshot(), "w0-en").IsFlipped)

	sched.Advance(time.Millisecond)
	snap = g.Snapshot()
	for _, id := range []string{"w0-en", "w1-zh", "w2-en"} {
		c := cardByID(snap, id)
		assert.False(t, c.IsFlipped, id)
		assert.False(t, c.IsMatched, id)
	}
	assert.Empty(t, snap.Selected)
	assert.Empty(t, snap.MatchedWordIDs)
	assert.Equal(t, 1, snap.Moves)
}

func TestMatchGame_MismatchInVisualModeKeepsCardsUp(t *testing.T) {
	g, sched := newTestMatch(t, 4, ModeVisual)

	_, _ = g.Click("w0-en")
	_, _ = g.Click("w1-en")
	sched.Advance(time.Second)

	snap := g.Snapshot()
	assert.True(t, cardByID(snap, "w0-en").IsFlipped)
	assert.True(t, cardByID(snap, "w1-en").IsFlipped)
	assert.Empty(t, snap.Selected)
	assert.Equal(t, 1, snap.Moves)
}

func TestMatchGame_NoOpClicks(t *testing.T) {
	t.Run("正常系: memoryモードで表向きのカードは無視", func(t *testing.T) {
		g, _ := newTestMatch(t, 4, ModeMemory)
		_, _ = g.Click("w0-en")
		snap, err := g.Click("w0-en")
		require.NoError(t, err)
		assert.Len(t, snap.Selected, 1)
		assert.Equal(t, 0, snap.Moves)
	})

	t.Run("正常系: マッチ済みのカードは無視", func(t *testing.T) {
		g, sched := newTestMatch(t, 4, ModeVisual)
		_, _ = g.Click("w0-en")
		_, _ = g.Click("w0-zh")
		sched.Advance(500 * time.Millisecond)

		snap, err := g.Click("w0-en")
		require.NoError(t, err)
		assert.Empty(t, snap.Selected)
		assert.Equal(t, 1, snap.Moves)
	})

	t.Run("異常系: 存在しないカード", func(t *testing.T) {
		g, _ := newTestMatch(t, 4, ModeVisual)
		_, err := g.Click("nope")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestMatchGame_ResetCancelsPendingTransition(t *testing.T) {
	g, sched := newTestMatch(t, 4, ModeMemory)
	_, _ = g.Click("w0-en")
	_, _ = g.Click("w0-zh")

	snap := g.Reset()
	assert.Equal(t, 0, snap.Moves)
	assert.False(t, snap.Pending)
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(5 * time.Second)
	snap = g.Snapshot()
	assert.Empty(t, snap.MatchedWordIDs)
	for _, c := range snap.Cards {
		assert.False(t, c.IsMatched)
		assert.False(t, c.IsFlipped)
	}
}

func TestMatchGame_ToggleMode(t *testing.T) {
	g, sched := newTestMatch(t, 4, ModeVisual)
	_, _ = g.Click("w0-en")
	_, _ = g.Click("w1-en")

	snap := g.ToggleMode()
	assert.Equal(t, ModeMemory, snap.Mode)
	assert.Equal(t, 0, snap.Moves)
	assert.Empty(t, snap.Selected)
	for _, c := range snap.Cards {
		assert.False(t, c.IsFlipped)
	}

	// 古い世代のタイマーは状態を変えない
	sched.Advance(2 * time.Second)
	assert.Equal(t, 0, g.Snapshot().Moves)

	snap = g.ToggleMode()
	assert.Equal(t, ModeVisual, snap.Mode)
	assert.True(t, snap.Cards[0].IsFlipped)
}

func TestMatchGame_CueFailureDoesNotBlock(t *testing.T) {
	sched := NewManualScheduler(testStart)
	env := testEnv(sched)
	calls := 0
	env.Cues = CueFunc(func(c Cue) error {
		calls++
		if c == CueSuccess {
			panic("speaker unplugged")
		}
		return errors.New("no audio device")
	})
	g, err := NewMatchGame(testWords(1), ModeMemory, DefaultMatchConfig(), env)
	require.NoError(t, err)

	_, err = g.Click("w0-en")
	require.NoError(t, err)
	_, err = g.Click("w0-zh")
	require.NoError(t, err)
	sched.Advance(500 * time.Millisecond)

	assert.Equal(t, MatchComplete, g.Snapshot().State)
	// flip x2, match, success
	assert.Equal(t, 4, calls)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeVisual, m)

	m, err = ParseMode("memory")
	require.NoError(t, err)
	assert.Equal(t, ModeMemory, m)

	_, err = ParseMode("hard")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func cardByID(s MatchSnapshot, id string) Card {
	for _, c := range s.Cards {
		if c.ID == id {
			return c
		}
	}
	return Card{}
}
