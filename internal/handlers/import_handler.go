// internal/handlers/import_handler.go
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"go_vocab_game/internal/model"
	"go_vocab_game/internal/service"
	"go_vocab_game/internal/webutil"
)

// multipart のファイルフィールド名
const uploadField = "file"

type ImportHandler struct {
	service service.ImportService
	logger  *slog.Logger
}

func NewImportHandler(s service.ImportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{service: s, logger: newLogger(logger)}
}

// ParseLine は1行を解析します。一致しなければ matched=false を返します。
func (h *ImportHandler) ParseLine(w http.ResponseWriter, r *http.Request) {
	logger, _ := requestLogger(h.logger, r, "ParseLine")

	var req model.ParseLineRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, h.service.ParseLine(req.Line, req.Source), logger)
}

// ParseText はテキスト全体から単語を抽出します (履歴には残しません)
func (h *ImportHandler) ParseText(w http.ResponseWriter, r *http.Request) {
	logger, _ := requestLogger(h.logger, r, "ParseText")

	var req model.ParseTextRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	words := h.service.ParseText(req.Content, req.Source)
	if words == nil {
		words = []model.Word{}
	}
	logger.Debug("Text parsed", slog.Int("count", len(words)))
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

// ParseHTML はHTMLのタグを除いたテキストから単語を抽出します
func (h *ImportHandler) ParseHTML(w http.ResponseWriter, r *http.Request) {
	logger, _ := requestLogger(h.logger, r, "ParseHTML")

	var req model.ParseTextRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	words := h.service.ParseHTML(req.Content, req.Source)
	if words == nil {
		words = []model.Word{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, words, logger)
}

// ImportFile は multipart/form-data の file フィールド、または JSON {filename, content} を受け付けます
func (h *ImportHandler) ImportFile(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ImportFile")

	var filename string
	var content []byte
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, webutil.MaxJSONBodyBytes)
		file, header, err := r.FormFile(uploadField)
		if err != nil {
			logger.Warn("Failed to read uploaded file", slog.String("error", err.Error()))
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				webutil.HandleError(w, logger, model.NewAppError("FILE_TOO_LARGE", "文件过大。", uploadField, model.ErrInvalidInput))
				return
			}
			webutil.HandleError(w, logger, model.NewAppError("INVALID_REQUEST_BODY", "请上传文件 (字段名 file)。", uploadField, model.ErrInvalidInput))
			return
		}
		defer file.Close()
		content, err = io.ReadAll(file)
		if err != nil {
			logger.Warn("Failed to read uploaded file body", slog.String("error", err.Error()))
			webutil.HandleError(w, logger, model.NewAppError("FILE_TOO_LARGE", "文件过大。", uploadField, model.ErrInvalidInput))
			return
		}
		filename = header.Filename
	} else {
		var req model.FileImportRequest
		if !decodeAndValidate(w, r, logger, &req) {
			return
		}
		filename, content = req.Filename, []byte(req.Content)
	}

	result, err := h.service.ImportFile(r.Context(), learnerID, filename, content)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("File imported", slog.String("filename", filename), slog.Int("count", result.Count))
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *ImportHandler) ImportManual(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ImportManual")

	var req model.ManualImportRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	result, err := h.service.ImportManual(r.Context(), learnerID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// ImportRandom は ?level=&count= で難易度と語数を指定します
func (h *ImportHandler) ImportRandom(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ImportRandom")

	count, err := intQuery(r, "count", 0)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	level := model.Level(r.URL.Query().Get("level"))
	result, err := h.service.ImportRandom(r.Context(), learnerID, level, count)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *ImportHandler) ImportWeb(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ImportWeb")

	var req model.WebImportRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	result, err := h.service.ImportWeb(r.Context(), learnerID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *ImportHandler) ImportOCR(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ImportOCR")

	var req model.OCRImportRequest
	if !decodeAndValidate(w, r, logger, &req) {
		return
	}
	result, err := h.service.ImportOCR(r.Context(), learnerID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

func (h *ImportHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "ListHistory")

	histories, err := h.service.ListHistory(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if histories == nil {
		histories = []*model.ImportHistory{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, histories, logger)
}

func (h *ImportHandler) HistoryStats(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "HistoryStats")

	stats, err := h.service.HistoryStats(r.Context(), learnerID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}

func (h *ImportHandler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	logger, learnerID := requestLogger(h.logger, r, "DeleteHistory")

	historyID, err := uuidParam(r, "history_id")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := h.service.DeleteHistory(r.Context(), learnerID, historyID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("History deleted", slog.String("history_id", historyID.String()))
	w.WriteHeader(http.StatusNoContent)
}
