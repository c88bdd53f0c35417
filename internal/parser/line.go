// internal/parser/line.go
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"go_vocab_game/internal/model"
)

// ParseAttempt は1行の解析結果です。Matched か NoMatch のどちらか。
type ParseAttempt struct {
	word    model.Word
	matched bool
}

// Matched は単語が取れた結果を作ります
func Matched(w model.Word) ParseAttempt {
	return ParseAttempt{word: w, matched: true}
}

// NoMatch はどのパターンにも一致しなかった結果
func NoMatch() ParseAttempt {
	return ParseAttempt{}
}

// Word は一致した単語を返します。NoMatch の場合 ok は false。
func (a ParseAttempt) Word() (model.Word, bool) {
	return a.word, a.matched
}

func (a ParseAttempt) IsMatched() bool {
	return a.matched
}

// fields は各パターンが取り出す3つのグループ
type fields struct {
	english       string
	chinese       string
	pronunciation string
}

// matcher は優先順位順に試される1パターン
type matcher func(line string) (fields, bool)

var (
	// "apple - 苹果 [ˈæpl]" / "apple - 苹果" / "ice-cream - 冰淇淋"
	dashPattern = regexp.MustCompile(`^(.+?)\s+[-–—]\s+(.+?)(?:\s*\[(.+?)\])?$`)
	// "apple-苹果": 英語側にハイフンを含まず、訳語が非ASCII文字で始まる場合だけ
	tightDashPattern = regexp.MustCompile(`^([^\s\-–—][^\-–—]*?)\s*[-–—]\s*([^\x00-\x7F].*?)(?:\s*\[(.+?)\])?$`)
	// "apple 苹果 /ˈæpl/"
	slashPattern = regexp.MustCompile(`^(.+?)\s+(.+?)\s*/(.+?)/`)
	// "apple: 苹果 (ˈæpl)"
	colonPattern = regexp.MustCompile(`^(.+?):\s*(.+?)\s*\((.+?)\)$`)
	// "apple，苹果，ˈæpl"
	fullWidthCommaPattern = regexp.MustCompile(`^(.+?)，(.+?)，(.+?)$`)
	// "apple 苹果"
	simplePattern = regexp.MustCompile(`^(.+?)\s+(.+?)$`)
)

// lineMatchers の順番がそのまま優先順位です
var lineMatchers = []matcher{
	regexMatcher(dashPattern, nil),
	regexMatcher(tightDashPattern, nil),
	regexMatcher(slashPattern, HasNonLatinLetter),
	regexMatcher(colonPattern, nil),
	regexMatcher(fullWidthCommaPattern, nil),
	regexMatcher(simplePattern, HasNonLatinLetter),
}

// regexMatcher は正規表現を matcher に変換します。accept は訳語側の追加チェック (nil なら無条件)。
func regexMatcher(re *regexp.Regexp, accept func(string) bool) matcher {
	return func(line string) (fields, bool) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return fields{}, false
		}
		f := fields{english: strings.TrimSpace(m[1]), chinese: strings.TrimSpace(m[2])}
		if len(m) > 3 {
			f.pronunciation = stripPronunciation(m[3])
		}
		if f.english == "" {
			return fields{}, false
		}
		if accept != nil && !accept(f.chinese) {
			return fields{}, false
		}
		return f, true
	}
}

func stripPronunciation(p string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(p), "[]/()"))
}

// IsSkippable は空行とコメント行 (# または //) を判定します
func IsSkippable(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "//")
}

// ParseLine は1行から単語を1つ取り出します。最初に一致したパターンが採用されます。
// index と source は ID (source-index) と由来タグに使います。
func ParseLine(line string, index int, source string) ParseAttempt {
	if IsSkippable(line) {
		return NoMatch()
	}
	clean := strings.TrimSpace(line)
	for _, match := range lineMatchers {
		f, ok := match(clean)
		if !ok {
			continue
		}
		return Matched(model.Word{
			ID:            fmt.Sprintf("%s-%d", source, index),
			English:       f.english,
			Chinese:       f.chinese,
			Pronunciation: f.pronunciation,
			Level:         model.LevelBeginner,
			Category:      "imported",
			Textbook:      source,
			Unit:          "imported",
			Lesson:        "imported",
		})
	}
	return NoMatch()
}

// ExtractWordsFromText はテキスト全体を1行ずつ解析します。
// 結果は行の順番を保ち、空のスライスの場合もあります (エラーではありません)。
func ExtractWordsFromText(content, source string) []model.Word {
	words := make([]model.Word, 0)
	for i, line := range strings.Split(normalizeNewlines(content), "\n") {
		if w, ok := ParseLine(line, i, source).Word(); ok {
			words = append(words, w)
		}
	}
	return words
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// HasNonLatinLetter はラテン文字以外の文字 (漢字など) を1つ以上含むかを返します。
// 英単語が2つ並んだだけの行を訳語付きと誤認しないために使います。
func HasNonLatinLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Latin, r) {
			return true
		}
	}
	return false
}
