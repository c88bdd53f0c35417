// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"go_vocab_game/internal/model"
)

// HandleError はエラーを解釈し、適切なJSONエラーレスポンスを返します。
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := MapErrorToStatusCode(err)

	var errResp model.APIErrorResponse
	var appErr *model.AppError

	if errors.As(err, &appErr) {
		errResp = model.APIErrorResponse{Error: appErr.Detail()}
		if statusCode >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.String("code", appErr.Code), slog.Any("error", err))
		} else {
			logger.Warn("Request rejected", slog.String("code", appErr.Code), slog.Any("error", err))
		}
	} else {
		// 予期せぬエラーは詳細をログにだけ出す
		logger.Error("Unhandled error", slog.Any("error", err))
		errResp = model.APIErrorResponse{
			Error: model.ErrorDetail{
				Code:    "INTERNAL_SERVER_ERROR",
				Message: "服务器内部错误。",
			},
		}
	}

	RespondWithJSON(w, statusCode, errResp, logger)
}

// MapErrorToStatusCode はアプリケーションエラーをHTTPステータスコードにマッピングします
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrGameBusy):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, model.ErrNoChapterStructure),
		errors.Is(err, model.ErrNoWordsFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON はJSONレスポンスを返します
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error marshaling JSON response", slog.Any("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"生成响应时发生错误。"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		logger.Warn("Failed to write response", slog.Any("error", err))
	}
}

// NewValidationError は validator のエラーを AppError に変換します。最初のエラーだけを翻訳して返します。
func NewValidationError(err error) *model.AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		first := errs[0]
		return model.NewAppError("VALIDATION_ERROR", first.Translate(Trans), first.Field(), model.ErrInvalidInput)
	}
	return model.NewAppError("VALIDATION_ERROR", "请求参数无效。", "", model.ErrInvalidInput)
}

// NewInvalidBodyError はJSONデコードの失敗を AppError に変換します
func NewInvalidBodyError(err error) *model.AppError {
	return model.NewAppError("INVALID_REQUEST_BODY", "请求体格式不正确。", "", err)
}
