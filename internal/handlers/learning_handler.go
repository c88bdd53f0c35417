// internal/handlers/learning_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"go_vocab_game/internal/model"
	"go_vocab_game/internal/service"
	"go_vocab_game/internal/webutil"
)

type LearningHandler struct {
	service service.LearningService
	logger  *slog.Logger
}

func NewLearningHandler(s service.LearningService, logger *slog.Logger) *LearningHandler {
	return &LearningHandler{service: s, logger: newLogger(logger)}
}

// ListSessions は新しい順に学習記録を返します。?limit= で件数を指定できます。
func (h *LearningHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ListSessions")

	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	records, err := h.service.ListSessions(r.Context(), learnerID, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if records == nil {
		records = []*model.LearningRecord{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, records, logger)
}

func (h *LearningHandler) ListWordbook(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ListWordbook")

	entries, err := h.service.ListWordbook(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if entries == nil {
		entries = []*model.WordbookEntry{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, entries, logger)
}

// wordParam はURLの {word} をデコードして返します
func wordParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "word")
	word, err := url.PathUnescape(raw)
	if err != nil {
		word = raw
	}
	if strings.TrimSpace(word) == "" {
		return "", model.NewAppError("INVALID_URL_PARAM", "word 不能为空。", "word", model.ErrInvalidInput)
	}
	return word, nil
}

func (h *LearningHandler) PatchWordbook(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "PatchWordbook")

	word, err := wordParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	var req model.PatchWordbookRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	entry, err := h.service.SetMastered(r.Context(), learnerID, word, *req.Mastered)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, entry, logger)
}

func (h *LearningHandler) DeleteWordbook(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "DeleteWordbook")

	word, err := wordParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.DeleteWord(r.Context(), learnerID, word); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Wordbook entry deleted", slog.String("word", word))
	w.WriteHeader(http.StatusNoContent)
}

// Health はストアへの疎通を確認します。失敗時は 503 を返します。
func (h *LearningHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Health"))

	if err := h.service.Health(r.Context()); err != nil {
		logger.Error("Health check failed", slog.Any("error", err))
		detail := model.ErrorDetail{Code: "STORE_UNAVAILABLE", Message: "存储不可用。"}
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			detail = appErr.Detail()
		}
		webutil.RespondWithJSON(w, http.StatusServiceUnavailable, model.APIErrorResponse{Error: detail}, logger)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}
