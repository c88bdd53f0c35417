package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TextbookInfo は教材のメタ情報
type TextbookInfo struct {
	ID          string `json:"id" toml:"id"`
	Name        string `json:"name" toml:"name"`
	Publisher   string `json:"publisher,omitempty" toml:"publisher"`
	Grade       string `json:"grade,omitempty" toml:"grade"`
	Semester    string `json:"semester,omitempty" toml:"semester"`
	Region      string `json:"region,omitempty" toml:"region"`
	Description string `json:"description,omitempty" toml:"description"`
}

type TextbookLesson struct {
	ID          string `json:"id" toml:"id"`
	Name        string `json:"name" toml:"name"`
	Description string `json:"description,omitempty" toml:"description"`
	Words       []Word `json:"words" toml:"words"`
}

type TextbookUnit struct {
	ID          string           `json:"id" toml:"id"`
	Name        string           `json:"name" toml:"name"`
	Description string           `json:"description,omitempty" toml:"description"`
	Lessons     []TextbookLesson `json:"lessons" toml:"lessons"`
}

// TextbookData は Unit → Lesson → Word の階層を持つ教材です。作成後は読み取り専用。
type TextbookData struct {
	Info  TextbookInfo   `json:"info" toml:"info"`
	Units []TextbookUnit `json:"units" toml:"units"`
}

// AllWords は教材内の全単語を出現順で返します
func (t *TextbookData) AllWords() []Word {
	words := make([]Word, 0)
	for _, u := range t.Units {
		for _, l := range u.Lessons {
			words = append(words, l.Words...)
		}
	}
	return words
}

// WordCount は教材内の単語数
func (t *TextbookData) WordCount() int {
	n := 0
	for _, u := range t.Units {
		for _, l := range u.Lessons {
			n += len(l.Words)
		}
	}
	return n
}

// FindUnit はIDでUnitを探します
func (t *TextbookData) FindUnit(unitID string) (*TextbookUnit, bool) {
	for i := range t.Units {
		if t.Units[i].ID == unitID {
			return &t.Units[i], true
		}
	}
	return nil, false
}

// StoredTextbook はインポートされた教材の永続化モデル。本体はJSON列に保存します。
// 主キーは (textbook_id, learner_id)。
type StoredTextbook struct {
	TextbookID string         `gorm:"primaryKey" json:"textbook_id"`
	LearnerID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	Name       string         `gorm:"not null" json:"name"`
	WordCount  int            `gorm:"not null;default:0" json:"word_count"`
	Body       datatypes.JSON `json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
}

func (StoredTextbook) TableName() string {
	return "textbooks"
}

// ValidationReport はチャプター解析前の簡易チェック結果
type ValidationReport struct {
	IsValid     bool     `json:"is_valid"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// TextbookParseResult はチャプター解析の結果。失敗時は入力テキストと提案を返します。
type TextbookParseResult struct {
	Success     bool          `json:"success"`
	Textbook    *TextbookData `json:"textbook,omitempty"`
	Error       string        `json:"error,omitempty"`
	RawText     string        `json:"raw_text,omitempty"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// TextbookTextRequest は教材テキストの検証・解析リクエストDTO
type TextbookTextRequest struct {
	Text string `json:"text" validate:"required"`
	Save bool   `json:"save"`
}
