// internal/parser/chapter.go
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"go_vocab_game/internal/model"
)

const (
	defaultTextbookName  = "未知教材"
	syntheticLessonTitle = "Lesson 1 - Main Content"
	textbookCategory     = "textbook"
	minEnglishLen        = 2
	maxEnglishLen        = 20
	maxChineseLen        = 20
)

var (
	unitHeading   = regexp.MustCompile(`(?i)^unit\s+(\d+)\s*[:：\-–]?\s*(.*)$`)
	lessonHeading = regexp.MustCompile(`(?i)^lesson\s+(\d+)\s*[:：\-–]?\s*(.*)$`)
	alphaOnly     = regexp.MustCompile(`^[A-Za-z]+$`)
)

// 単語として扱わない英語トークン
var stopWords = map[string]struct{}{
	"unit":     {},
	"lesson":   {},
	"page":     {},
	"chapter":  {},
	"exercise": {},
	"homework": {},
}

// heading は Unit/Lesson 見出し行
type heading struct {
	number string
	title  string
}

func matchHeading(re *regexp.Regexp, line string) (heading, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return heading{}, false
	}
	return heading{number: m[1], title: strings.TrimSpace(m[2])}, true
}

func (h heading) displayName(kind string) string {
	if h.title == "" {
		return fmt.Sprintf("%s %s", kind, h.number)
	}
	return fmt.Sprintf("%s %s %s", kind, h.number, h.title)
}

// unitSpan は見出しから次の Unit 見出しまでの行
type unitSpan struct {
	heading heading
	lines   []string
}

type lessonSpan struct {
	heading heading
	lines   []string
}

// HasChapterStructure はテキストに Unit 見出しが1つ以上あるかを返します
func HasChapterStructure(text string) bool {
	for _, line := range splitLines(text) {
		if _, ok := matchHeading(unitHeading, line); ok {
			return true
		}
	}
	return false
}

// ParseTextbook はテキストを Unit → Lesson → Word の階層に分割します。
// Unit 見出しが1つもない場合は model.ErrNoChapterStructure を返します。
func ParseTextbook(text string) (*model.TextbookData, error) {
	lines := splitLines(text)
	name, spans := segmentUnits(lines)
	if len(spans) == 0 {
		return nil, fmt.Errorf("parser.ParseTextbook: %w", model.ErrNoChapterStructure)
	}

	textbookID := "textbook-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(text)).String()[:8]
	units := make([]model.TextbookUnit, 0, len(spans))
	unitIDs := make(map[string]int)
	lessonIDs := make(map[string]int)

	for _, us := range spans {
		unitID := uniqueID(unitIDs, "unit-"+us.heading.number)
		unitName := us.heading.displayName("Unit")
		unit := model.TextbookUnit{ID: unitID, Name: unitName, Lessons: make([]model.TextbookLesson, 0)}

		for _, ls := range segmentLessons(us) {
			lessonNumber, lessonName := ls.heading.number, ls.heading.displayName("Lesson")
			if lessonNumber == "" {
				lessonNumber, lessonName = "1", syntheticLessonTitle
			}
			lessonID := uniqueID(lessonIDs, fmt.Sprintf("lesson-%s-%s", us.heading.number, lessonNumber))
			lesson := model.TextbookLesson{ID: lessonID, Name: lessonName, Words: make([]model.Word, 0)}

			for _, line := range ls.lines {
				w, ok := ParseLine(line, len(lesson.Words), lessonID).Word()
				if !ok || !isValidTextbookWord(w) {
					continue
				}
				w.ID = fmt.Sprintf("%s-%s-%d", textbookID, lessonID, len(lesson.Words))
				w.Category = textbookCategory
				w.Textbook = textbookID
				w.Unit = unitName
				w.Lesson = lessonName
				lesson.Words = append(lesson.Words, w)
			}
			// 単語が1つもないレッスンは出力しない
			if len(lesson.Words) > 0 {
				unit.Lessons = append(unit.Lessons, lesson)
			}
		}
		if len(unit.Lessons) > 0 {
			units = append(units, unit)
		}
	}

	return &model.TextbookData{
		Info: model.TextbookInfo{
			ID:          textbookID,
			Name:        name,
			Description: fmt.Sprintf("%s包含%d个单元", name, len(units)),
		},
		Units: units,
	}, nil
}

// ProcessText は ParseTextbook の結果をレスポンス用の形にまとめます。
// 構造エラーのときは入力テキストと改善提案を返します。
func ProcessText(text string) model.TextbookParseResult {
	tb, err := ParseTextbook(text)
	if err != nil {
		return model.TextbookParseResult{
			Success:     false,
			Error:       model.ErrNoChapterStructure.Error(),
			RawText:     text,
			Suggestions: ValidateText(text).Suggestions,
		}
	}
	return model.TextbookParseResult{Success: true, Textbook: tb}
}

func splitLines(text string) []string {
	raw := strings.Split(normalizeNewlines(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// segmentUnits は Unit 見出しごとに行をまとめます。
// 先頭行が見出しでなければ教材名として扱います。
func segmentUnits(lines []string) (string, []unitSpan) {
	name := defaultTextbookName
	spans := make([]unitSpan, 0)
	for i, line := range lines {
		if h, ok := matchHeading(unitHeading, line); ok {
			spans = append(spans, unitSpan{heading: h})
			continue
		}
		if i == 0 {
			if _, isLesson := matchHeading(lessonHeading, line); !isLesson {
				name = line
				continue
			}
		}
		if len(spans) == 0 {
			continue
		}
		cur := &spans[len(spans)-1]
		cur.lines = append(cur.lines, line)
	}
	return name, spans
}

// segmentLessons は Unit の中を Lesson 見出しで分割します。
// Lesson 見出しがなければ Unit 全体を1つの合成レッスンにします。
func segmentLessons(us unitSpan) []lessonSpan {
	spans := make([]lessonSpan, 0)
	for _, line := range us.lines {
		if h, ok := matchHeading(lessonHeading, line); ok {
			spans = append(spans, lessonSpan{heading: h})
			continue
		}
		if len(spans) == 0 {
			// 最初の Lesson 見出しより前の行は捨てる
			continue
		}
		cur := &spans[len(spans)-1]
		cur.lines = append(cur.lines, line)
	}
	if len(spans) == 0 {
		return []lessonSpan{{lines: us.lines}}
	}
	return spans
}

func isValidTextbookWord(w model.Word) bool {
	en := w.English
	if !alphaOnly.MatchString(en) || len(en) < minEnglishLen || len(en) > maxEnglishLen {
		return false
	}
	if _, stop := stopWords[strings.ToLower(en)]; stop {
		return false
	}
	zh := strings.TrimSpace(w.Chinese)
	if zh == "" || utf8.RuneCountInString(zh) > maxChineseLen {
		return false
	}
	return HasNonLatinLetter(zh)
}

func uniqueID(seen map[string]int, id string) string {
	seen[id]++
	if n := seen[id]; n > 1 {
		return fmt.Sprintf("%s-%d", id, n)
	}
	return id
}
