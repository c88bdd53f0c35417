// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/game"
	"go_vocab_game/internal/handlers"
	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/service"
	svc_mocks "go_vocab_game/internal/service/mocks"
	"go_vocab_game/internal/store"
)

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testAPI はモックのサービスと、実際の GameService (メモリストア) を組み合わせたテスト環境です
type testAPI struct {
	imports   *svc_mocks.ImportService
	textbooks *svc_mocks.TextbookService
	learning  *svc_mocks.LearningService
	store     store.Store
	scheduler *game.ManualScheduler
	server    *httptest.Server
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := testLogger()

	ta := &testAPI{
		imports:   svc_mocks.NewImportService(t),
		textbooks: svc_mocks.NewTextbookService(t),
		learning:  svc_mocks.NewLearningService(t),
		store:     store.NewMemoryStore(func() time.Time { return testStart }),
		scheduler: game.NewManualScheduler(testStart),
	}
	games := service.NewGameService(ta.store, service.GameOptions{
		Match:     game.DefaultMatchConfig(),
		Spell:     game.DefaultSpellConfig(),
		Scoring:   game.DefaultScoringPolicy(),
		TTL:       time.Hour,
		Scheduler: ta.scheduler,
	}, logger)

	api := &handlers.API{
		Import:   handlers.NewImportHandler(ta.imports, logger),
		Textbook: handlers.NewTextbookHandler(ta.textbooks, logger),
		Game:     handlers.NewGameHandler(games, logger),
		Learning: handlers.NewLearningHandler(ta.learning, logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.LearnerContextMiddleware)
	r.Route("/api/v1", api.Routes)

	ta.server = httptest.NewServer(r)
	t.Cleanup(ta.server.Close)
	return ta
}

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		switch b := details.Body.(type) {
		case string:
			reqBodyReader = strings.NewReader(b)
		case []byte:
			reqBodyReader = bytes.NewReader(b)
		default:
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	assert.Equal(t, expectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))

	return respBodyBytes
}

// errorCode はエラーレスポンスの code を取り出します
func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp), "body: %s", string(body))
	return errResp.Error.Code
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", string(body))
	return v
}
