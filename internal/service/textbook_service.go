//go:generate mockery --name TextbookService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"go_vocab_game/internal/catalog"
	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/parser"
	"go_vocab_game/internal/store"
)

// TextbookService は組み込み教材と取り込んだ教材をまとめて扱います
type TextbookService interface {
	ListTextbooks(ctx context.Context, learnerID uuid.UUID) ([]model.TextbookInfo, error)
	GetTextbook(ctx context.Context, learnerID uuid.UUID, textbookID string) (*model.TextbookData, error)
	TextbookWords(ctx context.Context, learnerID uuid.UUID, textbookID, unitID, lessonID string) ([]model.Word, error)
	Validate(text string) model.ValidationReport
	Parse(ctx context.Context, learnerID uuid.UUID, text string, save bool) (*model.TextbookParseResult, error)
}

type textbookService struct {
	store   store.Store
	catalog *catalog.Catalog
}

func NewTextbookService(st store.Store, cat *catalog.Catalog) TextbookService {
	return &textbookService{store: st, catalog: cat}
}

func (s *textbookService) ListTextbooks(ctx context.Context, learnerID uuid.UUID) ([]model.TextbookInfo, error) {
	infos := s.catalog.Textbooks()
	imported, err := s.store.ListTextbooks(ctx, learnerID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list imported textbooks", "error", err, "learner_id", learnerID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "获取教材列表失败。", "", err)
	}
	return append(infos, imported...), nil
}

func textbookNotFound(err error) error {
	return model.NewAppError("NOT_FOUND", "教材、单元或课程不存在。", "id", err)
}

func (s *textbookService) GetTextbook(ctx context.Context, learnerID uuid.UUID, textbookID string) (*model.TextbookData, error) {
	if tb, err := s.catalog.Textbook(textbookID); err == nil {
		return tb, nil
	}
	tb, err := s.store.GetTextbook(ctx, learnerID, textbookID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, textbookNotFound(err)
		}
		middleware.GetLogger(ctx).Error("Failed to load textbook", "error", err, "textbook_id", textbookID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "获取教材失败。", "", err)
	}
	return tb, nil
}

func (s *textbookService) TextbookWords(ctx context.Context, learnerID uuid.UUID, textbookID, unitID, lessonID string) ([]model.Word, error) {
	tb, err := s.GetTextbook(ctx, learnerID, textbookID)
	if err != nil {
		return nil, err
	}
	words, err := catalog.WordsIn(tb, unitID, lessonID)
	if err != nil {
		return nil, textbookNotFound(err)
	}
	return words, nil
}

func (s *textbookService) Validate(text string) model.ValidationReport {
	return parser.ValidateText(text)
}

// Parse はチャプター構造を解析します。構造がない場合もエラーではなく Success=false の結果を返します。
func (s *textbookService) Parse(ctx context.Context, learnerID uuid.UUID, text string, save bool) (*model.TextbookParseResult, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	res := parser.ProcessText(text)
	if !res.Success {
		logger.Info("Text has no chapter structure")
		return &res, nil
	}
	logger.Info("Textbook parsed", "textbook_id", res.Textbook.Info.ID, "words", res.Textbook.WordCount())

	if save {
		if err := s.store.SaveTextbook(ctx, learnerID, res.Textbook); err != nil {
			logger.Error("Failed to save parsed textbook", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "保存教材失败。", "", err)
		}
	}
	return &res, nil
}
