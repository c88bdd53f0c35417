// internal/handlers/game_handler.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"go_vocab_game/internal/model"
	"go_vocab_game/internal/service"
	"go_vocab_game/internal/webutil"
)

type GameHandler struct {
	service service.GameService
	logger  *slog.Logger
}

func NewGameHandler(s service.GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{service: s, logger: newLogger(logger)}
}

func (h *GameHandler) StartMatch(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "StartMatch")

	var req model.StartMatchRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	view, err := h.service.StartMatch(r.Context(), learnerID, req.Words, req.Mode)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Match game started", slog.String("session_id", view.SessionID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

func (h *GameHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	h.matchAction(w, r, "GetMatch", h.service.GetMatch)
}

func (h *GameHandler) ClickCard(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ClickCard")

	sessionID, err := uuidParam(r, "session_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	var req model.CardClickRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	view, err := h.service.ClickCard(r.Context(), learnerID, sessionID, req.CardID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *GameHandler) ResetMatch(w http.ResponseWriter, r *http.Request) {
	h.matchAction(w, r, "ResetMatch", h.service.ResetMatch)
}

func (h *GameHandler) ToggleMatchMode(w http.ResponseWriter, r *http.Request) {
	h.matchAction(w, r, "ToggleMatchMode", h.service.ToggleMatchMode)
}

func (h *GameHandler) StartSpell(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "StartSpell")

	var req model.StartSpellRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	view, err := h.service.StartSpell(r.Context(), learnerID, req.Words)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Spell game started", slog.String("session_id", view.SessionID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

func (h *GameHandler) GetSpell(w http.ResponseWriter, r *http.Request) {
	h.spellAction(w, r, "GetSpell", h.service.GetSpell)
}

func (h *GameHandler) SubmitSpell(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "SubmitSpell")

	sessionID, err := uuidParam(r, "session_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	var req model.SpellAnswerRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	view, err := h.service.SubmitSpell(r.Context(), learnerID, sessionID, req.Answer)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *GameHandler) SkipSpell(w http.ResponseWriter, r *http.Request) {
	h.spellAction(w, r, "SkipSpell", h.service.SkipSpell)
}

func (h *GameHandler) RestartSpell(w http.ResponseWriter, r *http.Request) {
	h.spellAction(w, r, "RestartSpell", h.service.RestartSpell)
}

// Speak はブラウザの音声合成用の読み上げ内容を返します。ゲームの状態は変わりません。
func (h *GameHandler) Speak(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "Speak")

	sessionID, err := uuidParam(r, "session_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	cue, err := h.service.Speak(r.Context(), learnerID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, cue, logger)
}

type (
	matchActionFunc func(ctx context.Context, learnerID, sessionID uuid.UUID) (*service.MatchSessionView, error)
	spellActionFunc func(ctx context.Context, learnerID, sessionID uuid.UUID) (*service.SpellSessionView, error)
)

// matchAction はボディを持たないセッション操作の共通処理
func (h *GameHandler) matchAction(w http.ResponseWriter, r *http.Request, name string, action matchActionFunc) {
	logger, learnerID := requestLogger(h.logger, r, name)

	sessionID, err := uuidParam(r, "session_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	view, err := action(r.Context(), learnerID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

func (h *GameHandler) spellAction(w http.ResponseWriter, r *http.Request, name string, action spellActionFunc) {
	logger, learnerID := requestLogger(h.logger, r, name)

	sessionID, err := uuidParam(r, "session_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	view, err := action(r.Context(), learnerID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}
