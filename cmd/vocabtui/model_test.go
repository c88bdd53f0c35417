package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/game"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/service"
	"go_vocab_game/internal/store"
)

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type tuiEnv struct {
	svc       service.GameService
	store     store.Store
	scheduler *game.ManualScheduler
	learnerID uuid.UUID
}

func newTestModel(t *testing.T, words []model.Word) (spellModel, *tuiEnv) {
	t.Helper()
	env := &tuiEnv{
		store:     store.NewMemoryStore(func() time.Time { return testStart }),
		scheduler: game.NewManualScheduler(testStart),
		learnerID: uuid.New(),
	}
	env.svc = service.NewGameService(env.store, service.GameOptions{
		Spell:     game.DefaultSpellConfig(),
		Scoring:   game.DefaultScoringPolicy(),
		TTL:       time.Hour,
		Scheduler: env.scheduler,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	view, err := env.svc.StartSpell(t.Context(), env.learnerID, words)
	require.NoError(t, err)
	return newSpellModel(context.Background(), env.svc, env.learnerID, view), env
}

func update(t *testing.T, m spellModel, msg tea.Msg) (spellModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(spellModel)
	require.True(t, ok)
	return nm, cmd
}

func typeAndEnter(t *testing.T, m spellModel, answer string) spellModel {
	t.Helper()
	m.input.SetValue(answer)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

var twoWords = []model.Word{
	{ID: "w1", English: "apple", Chinese: "苹果"},
	{ID: "w2", English: "banana", Chinese: "香蕉"},
}

func TestSpellModel_Flow(t *testing.T) {
	m, env := newTestModel(t, twoWords)
	assert.Equal(t, game.SpellPlaying, m.view.Game.State)
	assert.Contains(t, m.View(), "苹果")

	// 空入力は何もしない
	m = typeAndEnter(t, m, "   ")
	assert.Equal(t, game.SpellPlaying, m.view.Game.State)
	assert.Nil(t, m.view.Game.Feedback)

	m = typeAndEnter(t, m, "Apple")
	require.Equal(t, game.SpellFeedback, m.view.Game.State)
	require.NotNil(t, m.view.Game.Feedback)
	assert.True(t, m.view.Game.Feedback.Correct)
	assert.Equal(t, 1, m.view.Game.Score)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "正确")

	// フィードバック中の回答はエラー表示だけ
	m = typeAndEnter(t, m, "banana")
	assert.NotEmpty(t, m.err)
	assert.Equal(t, game.SpellFeedback, m.view.Game.State)

	env.scheduler.Advance(1500 * time.Millisecond)
	m, cmd := update(t, m, tickMsg(testStart))
	assert.NotNil(t, cmd)
	assert.Equal(t, game.SpellPlaying, m.view.Game.State)
	assert.Equal(t, 1, m.view.Game.Index)
	assert.Contains(t, m.View(), "香蕉")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Empty(t, m.err)
	require.Equal(t, game.SpellComplete, m.view.Game.State)
	require.NotNil(t, m.view.Game.Summary)
	assert.Equal(t, 1, m.view.Game.Summary.Correct)
	assert.Equal(t, model.SaveStatusSaved, m.view.Save.Status)
	assert.Contains(t, m.View(), "session saved")
	assert.Contains(t, m.View(), "banana")

	records, err := env.store.ListSessions(t.Context(), env.learnerID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.GameTypeSpell, records[0].GameType)

	entries, err := env.store.ListDifficultWords(t.Context(), env.learnerID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "banana", entries[0].Word)

	// 完了後の Enter で終了
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSpellModel_WrongAnswerAndRestart(t *testing.T) {
	m, env := newTestModel(t, twoWords)

	m = typeAndEnter(t, m, "aple")
	require.NotNil(t, m.view.Game.Feedback)
	assert.False(t, m.view.Game.Feedback.Correct)
	assert.Contains(t, m.View(), "再试一次")

	env.scheduler.Advance(2 * time.Second)
	m, _ = update(t, m, tickMsg(testStart))
	assert.Equal(t, game.SpellPlaying, m.view.Game.State)

	m = typeAndEnter(t, m, "apel")
	require.NotNil(t, m.view.Game.Feedback)
	assert.Equal(t, "apple", m.view.Game.Feedback.Answer)
	assert.Contains(t, m.View(), "正确答案: apple")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Empty(t, m.err)
	assert.Equal(t, game.SpellPlaying, m.view.Game.State)
	assert.Equal(t, 0, m.view.Game.Index)
	assert.Equal(t, 0, m.view.Game.Score)
	assert.Equal(t, model.SaveStatusNone, m.view.Save.Status)
}

func TestSpellModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyType
	}{
		{name: "正常系: Esc で終了", key: tea.KeyEsc},
		{name: "正常系: Ctrl+C で終了", key: tea.KeyCtrlC},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestModel(t, twoWords)
			_, cmd := update(t, m, tea.KeyMsg{Type: tc.key})
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestLoadWords(t *testing.T) {
	t.Run("正常系: ランダム単語", func(t *testing.T) {
		words, err := loadWords(&tuiOptions{level: string(model.LevelMixed), count: 3})
		require.NoError(t, err)
		assert.Len(t, words, 3)
	})
	t.Run("異常系: ファイルが存在しない", func(t *testing.T) {
		_, err := loadWords(&tuiOptions{file: "no-such-file.txt"})
		assert.Error(t, err)
	})
	t.Run("異常系: 不明な教科書", func(t *testing.T) {
		_, err := loadWords(&tuiOptions{textbook: "no-such-book"})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}
