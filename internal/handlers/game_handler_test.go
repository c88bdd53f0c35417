package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/game"
	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/service"
)

func gameWords(n int) []model.Word {
	words := make([]model.Word, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, model.Word{ID: fmt.Sprintf("w%d", i), English: fmt.Sprintf("word%d", i), Chinese: fmt.Sprintf("词%d", i)})
	}
	return words
}

func TestGameHandler_MatchFlow(t *testing.T) {
	ta := newTestAPI(t)
	learner := uuid.New()
	headers := map[string]string{middleware.LearnerIDHeader: learner.String()}

	body := sendRequest(t, ta.server, httpRequestDetails{
		Method: http.MethodPost, Path: "/api/v1/games/match", Headers: headers,
		Body: model.StartMatchRequest{Words: gameWords(1), Mode: "memory"},
	}, http.StatusCreated)
	view := decodeJSON[service.MatchSessionView](t, body)
	assert.Equal(t, game.MatchPlaying, view.Game.State)
	assert.Equal(t, game.ModeMemory, view.Game.Mode)
	require.Len(t, view.Game.Cards, 2)
	for _, c := range view.Game.Cards {
		assert.False(t, c.IsFlipped)
	}
	base := "/api/v1/games/match/" + view.SessionID.String()

	sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/click", Headers: headers, Body: model.CardClickRequest{CardID: "w0-en"}}, http.StatusOK)
	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/click", Headers: headers, Body: model.CardClickRequest{CardID: "w0-zh"}}, http.StatusOK)
	view = decodeJSON[service.MatchSessionView](t, body)
	assert.True(t, view.Game.Pending)
	assert.Equal(t, 1, view.Game.Moves)

	ta.scheduler.Advance(500 * time.Millisecond)

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodGet, Path: base, Headers: headers}, http.StatusOK)
	view = decodeJSON[service.MatchSessionView](t, body)
	assert.Equal(t, game.MatchComplete, view.Game.State)
	assert.Equal(t, model.SaveStatusSaved, view.Save.Status)
	require.NotNil(t, view.Save.Record)
	assert.Equal(t, model.GameTypeMatch, view.Save.Record.GameType)

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/click", Headers: headers, Body: model.CardClickRequest{CardID: "w0-en"}}, http.StatusConflict)
	assert.Equal(t, "GAME_OVER", errorCode(t, body))

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/mode", Headers: headers}, http.StatusOK)
	view = decodeJSON[service.MatchSessionView](t, body)
	assert.Equal(t, game.ModeVisual, view.Game.Mode)
	assert.Equal(t, game.MatchPlaying, view.Game.State)
	assert.Equal(t, model.SaveStatusNone, view.Save.Status)

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/reset", Headers: headers}, http.StatusOK)
	view = decodeJSON[service.MatchSessionView](t, body)
	assert.Equal(t, 0, view.Game.Moves)

	records, err := ta.store.ListSessions(t.Context(), learner, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGameHandler_MatchErrors(t *testing.T) {
	ta := newTestAPI(t)

	body := sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/games/match", Body: model.StartMatchRequest{Words: gameWords(2)}}, http.StatusCreated)
	view := decodeJSON[service.MatchSessionView](t, body)
	base := "/api/v1/games/match/" + view.SessionID.String()

	tests := []struct {
		name         string
		method       string
		path         string
		body         interface{}
		headers      map[string]string
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "異常系: 単語リストが空",
			method:       http.MethodPost,
			path:         "/api/v1/games/match",
			body:         model.StartMatchRequest{Words: []model.Word{}},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
		{
			name:         "異常系: 不明なモード",
			method:       http.MethodPost,
			path:         "/api/v1/games/match",
			body:         model.StartMatchRequest{Words: gameWords(1), Mode: "hard"},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "VALIDATION_ERROR",
		},
		{
			name:         "異常系: IDの重複",
			method:       http.MethodPost,
			path:         "/api/v1/games/match",
			body:         model.StartMatchRequest{Words: []model.Word{{ID: "a", English: "x"}, {ID: "a", English: "y"}}},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_WORDS",
		},
		{
			name:         "異常系: 存在しないカード",
			method:       http.MethodPost,
			path:         base + "/click",
			body:         model.CardClickRequest{CardID: "nope"},
			expectedCode: http.StatusNotFound,
			expectedErr:  "CARD_NOT_FOUND",
		},
		{
			name:         "異常系: 別の学習者のセッション",
			method:       http.MethodGet,
			path:         base,
			headers:      map[string]string{middleware.LearnerIDHeader: uuid.NewString()},
			expectedCode: http.StatusNotFound,
			expectedErr:  "SESSION_NOT_FOUND",
		},
		{
			name:         "異常系: スペルのセッションIDとしては存在しない",
			method:       http.MethodGet,
			path:         "/api/v1/games/spell/" + view.SessionID.String(),
			expectedCode: http.StatusNotFound,
			expectedErr:  "SESSION_NOT_FOUND",
		},
		{
			name:         "異常系: セッションIDの形式",
			method:       http.MethodGet,
			path:         "/api/v1/games/match/abc",
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_URL_PARAM",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := sendRequest(t, ta.server, httpRequestDetails{Method: tc.method, Path: tc.path, Body: tc.body, Headers: tc.headers}, tc.expectedCode)
			assert.Equal(t, tc.expectedErr, errorCode(t, body))
		})
	}
}

func TestGameHandler_SpellFlow(t *testing.T) {
	ta := newTestAPI(t)

	body := sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: "/api/v1/games/spell", Body: model.StartSpellRequest{Words: gameWords(2)}}, http.StatusCreated)
	view := decodeJSON[service.SpellSessionView](t, body)
	require.NotNil(t, view.Game.Prompt)
	assert.Equal(t, "词0", view.Game.Prompt.Chinese)
	assert.Equal(t, 5, view.Game.Prompt.Length)
	assert.NotContains(t, string(body), `"word0"`)
	base := "/api/v1/games/spell/" + view.SessionID.String()

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/speak"}, http.StatusOK)
	assert.JSONEq(t, `{"text":"word0","lang":"en-US","rate":0.8}`, string(body))

	// 大文字小文字と前後の空白は無視
	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/answer", Body: model.SpellAnswerRequest{Answer: "  WORD0 "}}, http.StatusOK)
	view = decodeJSON[service.SpellSessionView](t, body)
	assert.Equal(t, game.SpellFeedback, view.Game.State)
	require.NotNil(t, view.Game.Feedback)
	assert.True(t, view.Game.Feedback.Correct)

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/answer", Body: model.SpellAnswerRequest{Answer: "word1"}}, http.StatusConflict)
	assert.Equal(t, "GAME_BUSY", errorCode(t, body))

	ta.scheduler.Advance(1500 * time.Millisecond)

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/skip"}, http.StatusOK)
	view = decodeJSON[service.SpellSessionView](t, body)
	assert.Equal(t, game.SpellComplete, view.Game.State)
	require.NotNil(t, view.Game.Summary)
	assert.Equal(t, 1, view.Game.Summary.Correct)
	assert.Equal(t, model.SaveStatusSaved, view.Save.Status)

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/speak"}, http.StatusConflict)
	assert.Equal(t, "GAME_OVER", errorCode(t, body))

	entries, err := ta.store.ListDifficultWords(t.Context(), uuid.Nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "word1", entries[0].Word)

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/restart"}, http.StatusOK)
	view = decodeJSON[service.SpellSessionView](t, body)
	assert.Equal(t, game.SpellPlaying, view.Game.State)
	assert.Equal(t, 0, view.Game.Index)
	assert.Equal(t, model.SaveStatusNone, view.Save.Status)

	body = sendRequest(t, ta.server, httpRequestDetails{Method: http.MethodPost, Path: base + "/answer", Body: model.SpellAnswerRequest{}}, http.StatusBadRequest)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
}
