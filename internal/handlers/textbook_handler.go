// internal/handlers/textbook_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go_vocab_game/internal/model"
	"go_vocab_game/internal/service"
	"go_vocab_game/internal/webutil"
)

type TextbookHandler struct {
	service service.TextbookService
	logger  *slog.Logger
}

func NewTextbookHandler(s service.TextbookService, logger *slog.Logger) *TextbookHandler {
	return &TextbookHandler{service: s, logger: newLogger(logger)}
}

func (h *TextbookHandler) ListTextbooks(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ListTextbooks")

	infos, err := h.service.ListTextbooks(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if infos == nil {
		infos = []model.TextbookInfo{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, infos, logger)
}

func (h *TextbookHandler) GetTextbook(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "GetTextbook")

	textbookID := chi.URLParam(r, "textbook_id")
	tb, err := h.service.GetTextbook(r.Context(), learnerID, textbookID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, tb, logger)
}

// TextbookWords は ?unit=&lesson= で範囲を絞った単語リストを返します
func (h *TextbookHandler) TextbookWords(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "TextbookWords")

	textbookID := chi.URLParam(r, "textbook_id")
	q := r.URL.Query()
	words, err := h.service.TextbookWords(r.Context(), learnerID, textbookID, q.Get("unit"), q.Get("lesson"))
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if words == nil {
		words = []model.Word{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

func (h *TextbookHandler) Validate(w http.ResponseWriter, r *http.Request) {
	logger, _ := requestLogger(h.logger, r, "ValidateTextbook")

	var req model.TextbookTextRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, h.service.Validate(req.Text), logger)
}

// Parse はチャプター構造を解析します。構造が見つからない場合は 422 で提案を返します。
func (h *TextbookHandler) Parse(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ParseTextbook")

	var req model.TextbookTextRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	result, err := h.service.Parse(r.Context(), learnerID, req.Text, req.Save)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if !result.Success {
		logger.Info("No chapter structure in textbook text", slog.Int("length", len(req.Text)))
		webutil.RespondWithJSON(w, http.StatusUnprocessableEntity, result, logger)
		return
	}
	logger.Info("Textbook parsed", slog.String("textbook_id", result.Textbook.Info.ID), slog.Bool("saved", req.Save))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
