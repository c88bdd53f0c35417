// internal/model/word.go
package model

import (
	"fmt"
	"strings"
)

// Level は単語の難易度タグ
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
	LevelMixed        Level = "mixed" // ランダム生成時のみ使用
)

// Levels はカタログに存在する難易度の順序付きリスト
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Word は学習単位となる単語です。インポート後は変更しません。
type Word struct {
	ID            string `json:"id" toml:"id"`
	English       string `json:"english" toml:"english" validate:"required"`
	Chinese       string `json:"chinese,omitempty" toml:"chinese"`
	Pronunciation string `json:"pronunciation,omitempty" toml:"pronunciation"`
	Level         Level  `json:"level,omitempty" toml:"level"`
	Category      string `json:"category,omitempty" toml:"category"`
	Textbook      string `json:"textbook,omitempty" toml:"textbook"`
	Unit          string `json:"unit,omitempty" toml:"unit"`
	Lesson        string `json:"lesson,omitempty" toml:"lesson"`
}

// Translation はChineseが空ならEnglishを返します (マッチゲームのカード表示用)
func (w Word) Translation() string {
	if strings.TrimSpace(w.Chinese) == "" {
		return w.English
	}
	return w.Chinese
}

// MergeKey は重複判定に使うキー (english小文字 + chinese)
func (w Word) MergeKey() string {
	return strings.ToLower(w.English) + "-" + w.Chinese
}

// MergeVocabulary は複数ソースの単語リストを重複を除いて結合します。順序は最初に出現した順。
func MergeVocabulary(lists ...[]Word) []Word {
	merged := make([]Word, 0)
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range list {
			key := w.MergeKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, w)
		}
	}
	return merged
}

// UniqueIDs は空または重複した ID を prefix-番号 で振り直したコピーを返します。
// 最初に出現した ID はそのまま残し、振り直した ID も他の ID とは衝突しません。
func UniqueIDs(words []Word, prefix string) []Word {
	taken := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w.ID != "" {
			taken[w.ID] = struct{}{}
		}
	}
	out := make([]Word, len(words))
	kept := make(map[string]struct{}, len(words))
	next := 0
	for i, w := range words {
		if _, dup := kept[w.ID]; w.ID == "" || dup {
			if next < i {
				next = i
			}
			for {
				id := fmt.Sprintf("%s-%d", prefix, next)
				next++
				if _, used := taken[id]; !used {
					w.ID = id
					taken[id] = struct{}{}
					break
				}
			}
		}
		kept[w.ID] = struct{}{}
		out[i] = w
	}
	return out
}

// ManualWordRequest は手動入力の1単語分
type ManualWordRequest struct {
	English       string `json:"english" validate:"required,max=100"`
	Chinese       string `json:"chinese" validate:"omitempty,max=100"`
	Pronunciation string `json:"pronunciation" validate:"omitempty,max=100"`
}

// ManualImportRequest は手動入力インポートのリクエストDTO
type ManualImportRequest struct {
	Words []ManualWordRequest `json:"words" validate:"required,min=1,max=500,dive"`
}
