// internal/parser/html.go
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"go_vocab_game/internal/model"
)

var inlinePatterns = []*regexp.Regexp{
	// 中英対照 "apple: 苹果" / "apple：苹果" / "apple - 苹果"
	regexp.MustCompile(`([a-zA-Z]+)\s*[：:-]\s*([^\s]+)`),
	// 括弧 "apple (苹果)"
	regexp.MustCompile(`([a-zA-Z]+)\s*\(([^)]+)\)`),
}

// StripTags はHTMLからテキストだけを取り出し、空白を1つにまとめます。script/style の中身は捨てます。
func StripTags(src string) string {
	z := html.NewTokenizer(strings.NewReader(src))
	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF 以外 (壊れたHTML) でもそこまでのテキストは使う
			return collapseSpaces(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if isRawTextTag(string(name)) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawTextTag(string(name)) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(name string) bool {
	return name == "script" || name == "style" || name == "noscript"
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ExtractWordsFromHTML はタグを取り除いたテキストに対してインラインパターンを適用します。
// 英語は小文字にそろえます。
func ExtractWordsFromHTML(src, source string) []model.Word {
	text := StripTags(src)
	words := make([]model.Word, 0)
	idx := 0
	for _, re := range inlinePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			english := strings.TrimSpace(m[1])
			chinese := strings.TrimSpace(m[2])
			if len(english) <= 1 || chinese == "" {
				continue
			}
			words = append(words, model.Word{
				ID:       fmt.Sprintf("%s-%d", source, idx),
				English:  strings.ToLower(english),
				Chinese:  chinese,
				Level:    model.LevelBeginner,
				Category: "imported",
				Textbook: source,
				Unit:     "imported",
				Lesson:   "imported",
			})
			idx++
		}
	}
	return words
}
