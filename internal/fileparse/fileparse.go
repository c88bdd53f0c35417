// internal/fileparse/fileparse.go
package fileparse

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"go_vocab_game/internal/model"
	"go_vocab_game/internal/parser"
)

var (
	// "ice-cream - 冰淇淋" のように区切りのダッシュは前後に空白を要求する
	spacedDash = regexp.MustCompile(`\s+[-–—]\s+`)
	// "apple-苹果" は訳語が非ASCII文字で始まるときだけ区切りとみなす
	tightDash     = regexp.MustCompile(`^([^-–—]+?)\s*[-–—]\s*([^\x00-\x7F].*)$`)
	bracketedPron = regexp.MustCompile(`\[(.*?)\]`)
)

// splitDash は行を英語と訳語に分けます。区切りがなければ行全体を英語として返します。
func splitDash(line string) []string {
	if parts := spacedDash.Split(line, 2); len(parts) == 2 {
		return parts
	}
	if m := tightDash.FindStringSubmatch(line); m != nil {
		return m[1:]
	}
	return []string{line}
}

// ParseFile は拡張子 (.txt / .json / .csv) に応じて単語リストを作ります。
// 単語が0件でもエラーにはしません。
func ParseFile(name string, content []byte) ([]model.Word, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	switch ext {
	case "txt":
		return ParseText(content), nil
	case "json":
		return ParseJSON(content)
	case "csv":
		return ParseCSV(content)
	default:
		return nil, fmt.Errorf("fileparse.ParseFile: %q: %w", ext, model.ErrUnsupportedFormat)
	}
}

// ParseText は1行1語のテキストを解析します。
// "apple", "apple - 苹果", "apple [ˈæpl]", "apple - 苹果 [ˈæpl]" に対応します。
func ParseText(content []byte) []model.Word {
	words := make([]model.Word, 0)
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	for i, line := range lines {
		if parser.IsSkippable(line) {
			continue
		}
		parts := splitDash(line)
		english := strings.TrimSpace(bracketedPron.ReplaceAllString(parts[0], ""))
		if english == "" {
			continue
		}
		w := model.Word{ID: fmt.Sprintf("file-%d", i), English: english, Level: model.LevelBeginner}
		if m := bracketedPron.FindStringSubmatch(line); m != nil {
			w.Pronunciation = strings.TrimSpace(m[1])
		}
		if len(parts) > 1 {
			w.Chinese = strings.TrimSpace(bracketedPron.ReplaceAllString(parts[1], ""))
		}
		words = append(words, w)
	}
	return words
}

type jsonWord struct {
	ID            string      `json:"id"`
	English       string      `json:"english"`
	Chinese       string      `json:"chinese"`
	Pronunciation string      `json:"pronunciation"`
	Level         model.Level `json:"level"`
	Category      string      `json:"category"`
}

// ParseJSON は文字列の配列、単語オブジェクトの配列、または {"words": [...]} を受け付けます
func ParseJSON(content []byte) ([]model.Word, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(content, &items); err != nil {
		var wrapper struct {
			Words []json.RawMessage `json:"words"`
		}
		if err2 := json.Unmarshal(content, &wrapper); err2 != nil {
			return nil, fmt.Errorf("fileparse.ParseJSON: %w: %v", model.ErrInvalidInput, err)
		}
		items = wrapper.Words
	}

	words := make([]model.Word, 0, len(items))
	for i, raw := range items {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				words = append(words, model.Word{ID: fmt.Sprintf("json-%d", i), English: s, Level: model.LevelBeginner})
			}
			continue
		}
		var jw jsonWord
		if err := json.Unmarshal(raw, &jw); err != nil || strings.TrimSpace(jw.English) == "" {
			// 解釈できない要素は飛ばす
			continue
		}
		w := model.Word{
			ID:            jw.ID,
			English:       strings.TrimSpace(jw.English),
			Chinese:       strings.TrimSpace(jw.Chinese),
			Pronunciation: strings.TrimSpace(jw.Pronunciation),
			Level:         normalizeLevel(jw.Level),
			Category:      jw.Category,
		}
		if w.ID == "" {
			w.ID = fmt.Sprintf("json-%d", i)
		}
		words = append(words, w)
	}
	return model.UniqueIDs(words, "json"), nil
}

// ParseCSV は english,chinese,pronunciation,level,category の列順のCSVを解析します。
// 1行目に "english" が含まれていればヘッダーとして読み飛ばします。
func ParseCSV(content []byte) ([]model.Word, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	words := make([]model.Word, 0)
	for row := 0; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("fileparse.ParseCSV: %w", err)
		}
		if row == 0 && strings.Contains(strings.ToLower(strings.Join(rec, ",")), "english") {
			continue
		}
		english := column(rec, 0)
		if english == "" {
			continue
		}
		words = append(words, model.Word{
			ID:            fmt.Sprintf("csv-%d", row),
			English:       english,
			Chinese:       column(rec, 1),
			Pronunciation: column(rec, 2),
			Level:         normalizeLevel(model.Level(column(rec, 3))),
			Category:      column(rec, 4),
		})
	}
	return words, nil
}

func column(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func normalizeLevel(l model.Level) model.Level {
	for _, known := range model.Levels {
		if strings.EqualFold(string(l), string(known)) {
			return known
		}
	}
	return model.LevelBeginner
}
