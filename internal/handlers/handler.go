// internal/handlers/handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/webutil"
)

// decodeAndValidate はJSONボディをデコードし、validate タグで検証します。
// 失敗した場合はエラーレスポンスを書き込み false を返します。
func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, dst interface{}) bool {
	if err := webutil.DecodeJSONBody(r, dst); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, webutil.NewInvalidBodyError(err))
		return false
	}
	if err := webutil.Validator.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationError(err))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return false
	}
	return true
}

// requestLogger はハンドラ名と学習者IDを付けたロガーと学習者IDを返します
func requestLogger(base *slog.Logger, r *http.Request, handler string) (*slog.Logger, uuid.UUID) {
	learnerID := middleware.GetLearnerIDFromContext(r.Context())
	logger := base.With(slog.String("handler", handler), slog.String("learner_id", learnerID.String()))
	return logger, learnerID
}

// uuidParam はURLパラメータをUUIDとして読み取ります
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", name+" 格式不正确。", name, model.ErrInvalidInput)
	}
	return id, nil
}

// intQuery は整数のクエリパラメータを読み取ります。未指定なら def を返します。
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, model.NewAppError("INVALID_QUERY_PARAM", name+" 必须是非负整数。", name, model.ErrInvalidInput)
	}
	return n, nil
}

func newLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
