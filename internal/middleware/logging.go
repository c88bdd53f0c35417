// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// デバッグ時にキャプチャするボディの上限 (OCRテキストなどは大きくなるため)
const maxLoggedBodyBytes = 4 << 10

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
	"x-csrf-token":  true,
}

// statusRecorder は http.ResponseWriter をラップし、ステータスコードと書き込みバイト数を記録します。
// capture が true の場合のみボディの先頭を保持します。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytesOut   int
	capture    bool
	body       bytes.Buffer
}

func (rec *statusRecorder) WriteHeader(statusCode int) {
	rec.statusCode = statusCode
	rec.ResponseWriter.WriteHeader(statusCode)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if rec.capture && rec.body.Len() < maxLoggedBodyBytes {
		rec.body.Write(b[:min(len(b), maxLoggedBodyBytes-rec.body.Len())])
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytesOut += n
	return n, err
}

// LoggingMiddleware はリクエストIDと学習者IDを付けたロガーをコンテキストに入れ、
// リクエスト完了時に概要ログを出します。デバッグレベルではヘッダーとボディも出します。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With(slog.String("req_id", middleware.GetReqID(r.Context())))
			if learner := r.Header.Get(LearnerIDHeader); learner != "" {
				requestLogger = requestLogger.With(slog.String("learner_id", learner))
			}
			r = r.WithContext(WithLogger(r.Context(), requestLogger))

			debug := logger.Enabled(r.Context(), slog.LevelDebug)
			var reqBody []byte
			if debug && r.Body != nil {
				reqBody, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewReader(reqBody))
			}

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK, capture: debug}
			next.ServeHTTP(rec, r)

			latency := time.Since(startTime)
			level := slog.LevelInfo
			if rec.statusCode >= 500 {
				level = slog.LevelError
			} else if rec.statusCode >= 400 {
				level = slog.LevelWarn
			}

			requestLogger.LogAttrs(r.Context(), level, "Request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("latency_ms", float64(latency.Nanoseconds())/1e6),
				slog.Int("bytes_out", rec.bytesOut),
			)

			if debug {
				requestLogger.Debug("Request detail",
					slog.Any("headers", formatHeaders(r.Header)),
					slog.String("body", truncate(reqBody)),
				)
				requestLogger.Debug("Response detail",
					slog.Int("status", rec.statusCode),
					slog.Any("headers", formatHeaders(rec.Header())),
					slog.String("body", rec.body.String()),
				)
			}
		})
	}
}

// WithLogger はロガーをコンテキストに格納します
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger はコンテキストから slog.Logger を取得します。
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBodyBytes {
		return string(b[:maxLoggedBodyBytes]) + "...(truncated)"
	}
	return string(b)
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングするヘルパー関数
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}
