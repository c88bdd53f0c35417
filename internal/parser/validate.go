// internal/parser/validate.go
package parser

import (
	"regexp"

	"go_vocab_game/internal/model"
)

var (
	anyUnitHeading   = regexp.MustCompile(`(?i)unit\s+\d+`)
	anyLessonHeading = regexp.MustCompile(`(?i)lesson\s+\d+`)
	baseWordShape    = regexp.MustCompile(`\w+\s*-\s*\p{Han}+`)
)

type textCheck struct {
	re         *regexp.Regexp
	issue      string
	suggestion string
}

var textChecks = []textCheck{
	{anyUnitHeading, "未找到Unit标题", `请确保文本包含"Unit 1"、"Unit 2"等单元标题`},
	{anyLessonHeading, "未找到Lesson标题", `请确保文本包含"Lesson 1"、"Lesson 2"等课程标题`},
	{baseWordShape, "未找到标准单词格式", `请确保单词格式为"hello - 你好"或"hello - 你好 [həˈloʊ]"`},
}

// ValidateText は解析前の簡易チェックです。結果は参考情報でエラーにはしません。
func ValidateText(text string) model.ValidationReport {
	report := model.ValidationReport{Issues: make([]string, 0), Suggestions: make([]string, 0)}
	for _, c := range textChecks {
		if c.re.MatchString(text) {
			continue
		}
		report.Issues = append(report.Issues, c.issue)
		report.Suggestions = append(report.Suggestions, c.suggestion)
	}
	report.IsValid = len(report.Issues) == 0
	return report
}
