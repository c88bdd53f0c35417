package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SourceType は単語リストの入手元
type SourceType string

const (
	SourceFile     SourceType = "file"
	SourceManual   SourceType = "manual"
	SourceRandom   SourceType = "random"
	SourceTextbook SourceType = "textbook"
	SourceWeb      SourceType = "web"
	SourcePDF      SourceType = "pdf"
	SourceOCR      SourceType = "ocr"
)

// ImportHistory は単語インポートの履歴。Contentにはインポートされた単語をJSONで保存します。
type ImportHistory struct {
	HistoryID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"history_id"`
	LearnerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	SourceType SourceType     `gorm:"type:varchar(16);not null" json:"source_type"`
	Title      string         `gorm:"not null" json:"title"`
	Content    datatypes.JSON `json:"content"`
	WordCount  int            `gorm:"not null" json:"word_count"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (ImportHistory) TableName() string {
	return "import_histories"
}

// DailyCount は日別のインポート件数
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HistoryStats はインポート履歴の統計
type HistoryStats struct {
	TotalRecords       int                `json:"total_records"`
	TotalWords         int                `json:"total_words"`
	SourceDistribution map[SourceType]int `json:"source_distribution"`
	RecentActivity     []DailyCount       `json:"recent_activity"`
}

// ImportResult はインポート処理の結果。Wordsが空でもエラーではありません。
type ImportResult struct {
	Source     SourceType `json:"source"`
	Title      string     `json:"title"`
	Words      []Word     `json:"words"`
	Count      int        `json:"count"`
	Notice     string     `json:"notice,omitempty"`
	HistoryID  *uuid.UUID `json:"history_id,omitempty"`
	TextbookID string     `json:"textbook_id,omitempty"` // チャプター構造として保存した場合のみ
}

// ParseTextRequest はテキスト/HTML解析のリクエストDTO
type ParseTextRequest struct {
	Content string `json:"content" validate:"required"`
	Source  string `json:"source" validate:"omitempty,max=64"`
	Title   string `json:"title" validate:"omitempty,max=200"`
}

// ParseLineRequest は1行解析のリクエストDTO
type ParseLineRequest struct {
	Line   string `json:"line" validate:"required"`
	Source string `json:"source" validate:"omitempty,max=64"`
}

// ParseLineResponse は1行解析の結果
type ParseLineResponse struct {
	Matched bool  `json:"matched"`
	Word    *Word `json:"word,omitempty"`
}

// FileImportRequest はJSONボディでのファイルインポート
type FileImportRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
}

// WebImportRequest はWebインポート。html, text, url のいずれか1つを指定します。
type WebImportRequest struct {
	URL    string `json:"url" validate:"required_without_all=HTML Text,omitempty,url"`
	HTML   string `json:"html" validate:"required_without_all=URL Text"`
	Text   string `json:"text" validate:"required_without_all=URL HTML"`
	Source string `json:"source" validate:"omitempty,max=64"`
	Title  string `json:"title" validate:"omitempty,max=200"`
}

// OCRImportRequest はOCRで認識されたページテキストのリスト
type OCRImportRequest struct {
	Pages []string `json:"pages" validate:"required,min=1,dive,required"`
	Title string   `json:"title" validate:"omitempty,max=200"`
}
