package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(words []Word) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.ID)
	}
	return out
}

func TestUniqueIDs(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "正常系: 重複なしはそのまま", input: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "正常系: 重複は番号で振り直す", input: []string{"web-0", "web-0"}, want: []string{"web-0", "web-1"}},
		{name: "正常系: 空のIDにも番号を振る", input: []string{"", "x"}, want: []string{"web-0", "x"}},
		{name: "正常系: 振り直した番号が後続のIDと衝突しない", input: []string{"web-0", "web-0", "web-1"}, want: []string{"web-0", "web-2", "web-1"}},
		{name: "正常系: 空リスト", input: []string{}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := make([]Word, 0, len(tt.input))
			for _, id := range tt.input {
				words = append(words, Word{ID: id, English: "w"})
			}
			got := UniqueIDs(words, "web")
			assert.Equal(t, tt.want, ids(got))
			// 元のスライスは変更しない
			assert.Equal(t, tt.input, ids(words))
		})
	}
}

func TestMergeVocabulary(t *testing.T) {
	merged := MergeVocabulary(
		[]Word{{ID: "a-0", English: "Apple", Chinese: "苹果"}, {ID: "a-1", English: "tiger", Chinese: "老虎"}},
		[]Word{{ID: "b-0", English: "apple", Chinese: "苹果"}, {ID: "b-1", English: "pear", Chinese: "梨"}},
	)
	assert.Equal(t, []string{"a-0", "a-1", "b-1"}, ids(merged))
}
