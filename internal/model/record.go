// internal/model/record.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type GameType string

const (
	GameTypeMatch GameType = "match"
	GameTypeSpell GameType = "spell"
)

// LearningRecord はゲーム1回分のセッション要約です
type LearningRecord struct {
	RecordID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"record_id"`
	LearnerID        uuid.UUID `gorm:"type:uuid;not null;index" json:"learner_id"`
	GameType         GameType  `gorm:"type:varchar(16);not null" json:"game_type"`
	WordCount        int       `gorm:"not null" json:"word_count"`
	CorrectCount     int       `gorm:"not null" json:"correct_count"`
	TimeSpentSeconds int       `gorm:"not null" json:"time_spent_seconds"`
	Score            int       `gorm:"not null" json:"score"`
	EvaluationText   string    `gorm:"not null" json:"evaluation_text"`
	Timestamp        time.Time `gorm:"not null;index" json:"timestamp"`
}

func (LearningRecord) TableName() string {
	return "learning_records"
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// WordbookEntry は単語帳 (苦手単語リスト) のエントリ
type WordbookEntry struct {
	EntryID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"entry_id"`
	LearnerID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_wordbook_learner_word" json:"-"`
	Word           string     `gorm:"not null;uniqueIndex:uq_wordbook_learner_word" json:"word"`
	Translation    string     `gorm:"not null;default:''" json:"translation"`
	Difficulty     Difficulty `gorm:"type:varchar(16);not null" json:"difficulty"`
	AddedAt        time.Time  `gorm:"not null" json:"added_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	ReviewCount    int        `gorm:"not null;default:0" json:"review_count"`
	Mastered       bool       `gorm:"not null;default:false" json:"mastered"`
}

func (WordbookEntry) TableName() string {
	return "wordbook_entries"
}

// PatchWordbookRequest は習得状態更新リクエストDTO
type PatchWordbookRequest struct {
	Mastered *bool `json:"mastered" validate:"required"`
}
