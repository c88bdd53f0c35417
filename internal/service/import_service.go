//go:generate mockery --name ImportService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"go_vocab_game/internal/catalog"
	"go_vocab_game/internal/fileparse"
	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/parser"
	"go_vocab_game/internal/phonetics"
	"go_vocab_game/internal/store"
	"go_vocab_game/internal/webfetch"
)

const (
	emptyImportNotice = "未能识别出单词，请检查格式。"
	ocrPageSeparator  = "\n=== 图片 %d ===\n"
)

// ImportService は各種ソースから単語リストを取り込み、履歴を記録します
type ImportService interface {
	ParseLine(line, source string) model.ParseLineResponse
	ParseText(content, source string) []model.Word
	ParseHTML(content, source string) []model.Word

	ImportFile(ctx context.Context, learnerID uuid.UUID, filename string, content []byte) (*model.ImportResult, error)
	ImportManual(ctx context.Context, learnerID uuid.UUID, req *model.ManualImportRequest) (*model.ImportResult, error)
	ImportRandom(ctx context.Context, learnerID uuid.UUID, level model.Level, count int) (*model.ImportResult, error)
	ImportWeb(ctx context.Context, learnerID uuid.UUID, req *model.WebImportRequest) (*model.ImportResult, error)
	ImportOCR(ctx context.Context, learnerID uuid.UUID, req *model.OCRImportRequest) (*model.ImportResult, error)

	ListHistory(ctx context.Context, learnerID uuid.UUID) ([]*model.ImportHistory, error)
	DeleteHistory(ctx context.Context, learnerID, historyID uuid.UUID) error
	HistoryStats(ctx context.Context, learnerID uuid.UUID) (*model.HistoryStats, error)
}

type importService struct {
	store        store.Store
	catalog      *catalog.Catalog
	fetcher      webfetch.Fetcher
	filler       phonetics.Filler
	newRand      func() *rand.Rand
	historyLimit int
}

// ImportDeps は ImportService の依存。Filler と NewRand は省略可。
type ImportDeps struct {
	Store        store.Store
	Catalog      *catalog.Catalog
	Fetcher      webfetch.Fetcher
	Filler       phonetics.Filler
	NewRand      func() *rand.Rand
	HistoryLimit int
}

func NewImportService(deps ImportDeps) ImportService {
	s := &importService{
		store:        deps.Store,
		catalog:      deps.Catalog,
		fetcher:      deps.Fetcher,
		filler:       deps.Filler,
		newRand:      deps.NewRand,
		historyLimit: deps.HistoryLimit,
	}
	if s.filler == nil {
		s.filler = phonetics.Nop{}
	}
	if s.newRand == nil {
		s.newRand = func() *rand.Rand { return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) }
	}
	return s
}

func sourceOr(source, def string) string {
	if s := strings.TrimSpace(source); s != "" {
		return s
	}
	return def
}

func (s *importService) ParseLine(line, source string) model.ParseLineResponse {
	w, ok := parser.ParseLine(line, 0, sourceOr(source, "line")).Word()
	if !ok {
		return model.ParseLineResponse{Matched: false}
	}
	return model.ParseLineResponse{Matched: true, Word: &w}
}

func (s *importService) ParseText(content, source string) []model.Word {
	return parser.ExtractWordsFromText(content, sourceOr(source, "text"))
}

func (s *importService) ParseHTML(content, source string) []model.Word {
	return parser.ExtractWordsFromHTML(content, sourceOr(source, "html"))
}

func (s *importService) ImportFile(ctx context.Context, learnerID uuid.UUID, filename string, content []byte) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "filename", filename)

	words, err := fileparse.ParseFile(filename, content)
	if err != nil {
		logger.Warn("Failed to parse uploaded file", "error", err)
		switch {
		case errors.Is(err, model.ErrUnsupportedFormat):
			return nil, model.NewAppError("UNSUPPORTED_FORMAT", "不支持的文件格式，请上传 txt、json 或 csv 文件。", "filename", err)
		default:
			return nil, model.NewAppError("INVALID_FILE_CONTENT", "文件内容无法解析。", "content", err)
		}
	}
	return s.finish(ctx, learnerID, model.SourceFile, filename, words), nil
}

func (s *importService) ImportManual(ctx context.Context, learnerID uuid.UUID, req *model.ManualImportRequest) (*model.ImportResult, error) {
	words := make([]model.Word, 0, len(req.Words))
	for _, mw := range req.Words {
		english := strings.TrimSpace(mw.English)
		if english == "" {
			continue
		}
		words = append(words, model.Word{
			ID:            "manual-" + uuid.NewString(),
			English:       english,
			Chinese:       strings.TrimSpace(mw.Chinese),
			Pronunciation: strings.TrimSpace(mw.Pronunciation),
			Category:      "manual",
		})
	}
	if len(words) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "请至少输入一个英文单词。", "words", model.ErrInvalidInput)
	}
	return s.finish(ctx, learnerID, model.SourceManual, "手动输入", words), nil
}

func (s *importService) ImportRandom(ctx context.Context, learnerID uuid.UUID, level model.Level, count int) (*model.ImportResult, error) {
	if level == "" {
		level = model.LevelMixed
	}
	words, err := s.catalog.RandomWords(level, count, s.newRand())
	if err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "难度必须是 beginner、intermediate、advanced 或 mixed。", "level", err)
	}
	title := fmt.Sprintf("随机生成 (%s, %d个)", level, len(words))
	return s.finish(ctx, learnerID, model.SourceRandom, title, words), nil
}

func (s *importService) ImportWeb(ctx context.Context, learnerID uuid.UUID, req *model.WebImportRequest) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)
	source := sourceOr(req.Source, "web")
	title := strings.TrimSpace(req.Title)

	var lists [][]model.Word
	if req.URL != "" {
		article, err := s.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			logger.Warn("Failed to fetch web page", "url", req.URL, "error", err)
			if errors.Is(err, model.ErrInvalidInput) {
				return nil, model.NewAppError("INVALID_URL", "网址格式不正确。", "url", err)
			}
			return nil, model.NewAppError("FETCH_FAILED", "无法获取网页内容。", "url", err)
		}
		if title == "" {
			title = sourceOr(article.Title, article.URL)
		}
		lists = append(lists,
			parser.ExtractWordsFromText(article.TextContent, source+"-url"),
			parser.ExtractWordsFromHTML(article.HTML, source+"-url-html"),
		)
	}
	if req.Text != "" {
		lists = append(lists, parser.ExtractWordsFromText(req.Text, source+"-text"))
	}
	if req.HTML != "" {
		lists = append(lists, parser.ExtractWordsFromHTML(req.HTML, source+"-html"))
	}
	if title == "" {
		title = "网页导入"
	}
	return s.finish(ctx, learnerID, model.SourceWeb, title, model.MergeVocabulary(lists...)), nil
}

// JoinOCRPages はページごとの認識結果を区切り行付きで連結します
func JoinOCRPages(pages []string) string {
	var b strings.Builder
	for i, p := range pages {
		fmt.Fprintf(&b, ocrPageSeparator, i+1)
		b.WriteString(p)
	}
	return b.String()
}

func (s *importService) ImportOCR(ctx context.Context, learnerID uuid.UUID, req *model.OCRImportRequest) (*model.ImportResult, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "pages", len(req.Pages))
	text := JoinOCRPages(req.Pages)
	title := sourceOr(req.Title, fmt.Sprintf("图片识别 (%d张)", len(req.Pages)))

	if parser.HasChapterStructure(text) {
		tb, err := parser.ParseTextbook(text)
		if err == nil {
			if req.Title != "" {
				tb.Info.Name = req.Title
			}
			if err := s.store.SaveTextbook(ctx, learnerID, tb); err != nil {
				logger.Error("Failed to save textbook parsed from OCR text", "error", err)
				return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "保存教材失败。", "", err)
			}
			res := s.finish(ctx, learnerID, model.SourceOCR, title, tb.AllWords())
			res.TextbookID = tb.Info.ID
			return res, nil
		}
		logger.Info("Chapter parse failed, falling back to line parser", "error", err)
	}
	// 区切り行を単語と誤認しないよう、行パーサーはページごとに適用する
	words := make([]model.Word, 0)
	for i, page := range req.Pages {
		words = append(words, parser.ExtractWordsFromText(page, fmt.Sprintf("ocr-p%d", i+1))...)
	}
	return s.finish(ctx, learnerID, model.SourceOCR, title, words), nil
}

// finish は発音を補い、単語が1つ以上あれば履歴に記録します。履歴の保存失敗はログのみ。
func (s *importService) finish(ctx context.Context, learnerID uuid.UUID, source model.SourceType, title string, words []model.Word) *model.ImportResult {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "source_type", source)

	if words == nil {
		words = []model.Word{}
	}
	// ゲームは ID の重複を受け付けないので、ここで一意にする
	words = s.filler.Fill(model.UniqueIDs(words, string(source)))
	res := &model.ImportResult{Source: source, Title: title, Words: words, Count: len(words)}
	if len(words) == 0 {
		res.Notice = emptyImportNotice
		logger.Info("Import finished with no words")
		return res
	}

	content, err := json.Marshal(words)
	if err != nil {
		logger.Error("Failed to encode imported words", "error", err)
		return res
	}
	h := &model.ImportHistory{
		LearnerID:  learnerID,
		SourceType: source,
		Title:      title,
		Content:    datatypes.JSON(content),
		WordCount:  len(words),
	}
	if err := s.store.SaveHistory(ctx, h); err != nil {
		logger.Error("Failed to record import history", "error", err)
		return res
	}
	res.HistoryID = &h.HistoryID
	logger.Info("Import finished", "count", len(words), "history_id", h.HistoryID)
	return res
}

func (s *importService) ListHistory(ctx context.Context, learnerID uuid.UUID) ([]*model.ImportHistory, error) {
	list, err := s.store.ListHistory(ctx, learnerID, s.historyLimit)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list import history", "error", err, "learner_id", learnerID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "获取导入历史失败。", "", err)
	}
	return list, nil
}

func (s *importService) DeleteHistory(ctx context.Context, learnerID, historyID uuid.UUID) error {
	if err := s.store.DeleteHistory(ctx, learnerID, historyID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "导入记录不存在。", "id", err)
		}
		middleware.GetLogger(ctx).Error("Failed to delete import history", "error", err, "history_id", historyID)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "删除导入记录失败。", "", err)
	}
	return nil
}

func (s *importService) HistoryStats(ctx context.Context, learnerID uuid.UUID) (*model.HistoryStats, error) {
	stats, err := s.store.HistoryStats(ctx, learnerID)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to aggregate import history", "error", err, "learner_id", learnerID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "获取统计信息失败。", "", err)
	}
	return stats, nil
}
