// internal/middleware/learner.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"go_vocab_game/internal/model"
	"go_vocab_game/internal/webutil"
)

// LearnerIDHeader は学習者ごとに記録を分けるためのヘッダーです。認証ではありません。
const LearnerIDHeader = "X-Learner-ID"

// LearnerContextMiddleware は X-Learner-ID ヘッダーのUUIDをコンテキストに設定します。
// ヘッダーがなければゲスト (uuid.Nil) として扱います。形式が不正なら 400 を返します。
func LearnerContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		learnerID := uuid.Nil
		if raw := strings.TrimSpace(r.Header.Get(LearnerIDHeader)); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				logger := GetLogger(r.Context())
				logger.Warn("Invalid learner id header", slog.String("value", raw))
				appErr := model.NewAppError("INVALID_LEARNER_ID", "X-Learner-ID 必须是有效的UUID。", LearnerIDHeader, model.ErrInvalidInput)
				webutil.HandleError(w, logger, appErr)
				return
			}
			learnerID = id
		}

		ctx := context.WithValue(r.Context(), model.LearnerIDKey, learnerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLearnerIDFromContext はコンテキストから学習者IDを取得します。
// ミドルウェアを通っていない場合はゲスト扱いです。
func GetLearnerIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(model.LearnerIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
