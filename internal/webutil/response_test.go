// internal/webutil/response_test.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/model"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFound", fmt.Errorf("repo: %w", model.ErrNotFound), http.StatusNotFound},
		{"InvalidInput", model.NewAppError("X", "x", "", model.ErrInvalidInput), http.StatusBadRequest},
		{"Conflict", model.ErrConflict, http.StatusConflict},
		{"GameOver", model.ErrGameOver, http.StatusConflict},
		{"GameBusy", model.ErrGameBusy, http.StatusConflict},
		{"UnsupportedFormat", model.ErrUnsupportedFormat, http.StatusUnsupportedMediaType},
		{"NoChapterStructure", model.ErrNoChapterStructure, http.StatusUnprocessableEntity},
		{"FetchFailed", model.ErrFetchFailed, http.StatusBadGateway},
		{"Unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestHandleError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("正常系: AppError の詳細を返す", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleError(rr, logger, model.NewAppError("WORD_NOT_FOUND", "未找到该单词。", "word", model.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body model.APIErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "WORD_NOT_FOUND", body.Error.Code)
		assert.Equal(t, "word", body.Error.Field)
	})

	t.Run("異常系: 予期せぬエラーは汎用メッセージ", func(t *testing.T) {
		rr := httptest.NewRecorder()
		HandleError(rr, logger, errors.New("db down"))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "INTERNAL_SERVER_ERROR")
		assert.NotContains(t, rr.Body.String(), "db down")
	})
}

func TestNewValidationError(t *testing.T) {
	req := model.ManualImportRequest{Words: []model.ManualWordRequest{{English: ""}}}
	err := Validator.Struct(req)
	require.Error(t, err)

	appErr := NewValidationError(err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "english", appErr.Field)
	assert.Equal(t, "英文为必填字段。", appErr.Message)
	assert.ErrorIs(t, appErr, model.ErrInvalidInput)
}

func TestDecodeJSONBody(t *testing.T) {
	var dst model.CardClickRequest

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"card_id":"w1-en"}`))
	require.NoError(t, DecodeJSONBody(r, &dst))
	assert.Equal(t, "w1-en", dst.CardID)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"card":"x"}`))
	assert.ErrorIs(t, DecodeJSONBody(r, &dst), model.ErrInvalidInput)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.ErrorIs(t, DecodeJSONBody(r, &dst), model.ErrInvalidInput)
}
