// internal/fileparse/fileparse_test.go
package fileparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/model"
)

func TestParseFile_Text(t *testing.T) {
	content := "apple\nbanana - 香蕉\ncherry [ˈtʃeri]\n\n# comment\ndate – 枣 [deɪt]\n"

	words, err := ParseFile("words.TXT", []byte(content))
	require.NoError(t, err)
	require.Len(t, words, 4)

	assert.Equal(t, model.Word{ID: "file-0", English: "apple", Level: model.LevelBeginner}, words[0])
	assert.Equal(t, "香蕉", words[1].Chinese)
	assert.Equal(t, "cherry", words[2].English)
	assert.Equal(t, "ˈtʃeri", words[2].Pronunciation)
	assert.Equal(t, "date", words[3].English)
	assert.Equal(t, "枣", words[3].Chinese)
	assert.Equal(t, "deɪt", words[3].Pronunciation)
	assert.Equal(t, "file-5", words[3].ID)
}

func TestParseText_Hyphenated(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		wantEn string
		wantZh string
	}{
		{name: "正常系: ハイフンを含む英単語 + ダッシュ", line: "ice-cream - 冰淇淋", wantEn: "ice-cream", wantZh: "冰淇淋"},
		{name: "正常系: ハイフンを含む英単語のみ", line: "well-known", wantEn: "well-known"},
		{name: "正常系: 全角ダッシュと発音", line: "x-ray — X光 [ˈeksreɪ]", wantEn: "x-ray", wantZh: "X光"},
		{name: "正常系: 空白なしのダッシュ", line: "apple-苹果", wantEn: "apple", wantZh: "苹果"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := ParseText([]byte(tt.line))
			require.Len(t, words, 1)
			assert.Equal(t, tt.wantEn, words[0].English)
			assert.Equal(t, tt.wantZh, words[0].Chinese)
		})
	}
}

func TestParseFile_JSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr error
	}{
		{name: "正常系: 文字列の配列", content: `["apple", " ", "banana"]`, want: []string{"apple", "banana"}},
		{name: "正常系: オブジェクトの配列", content: `[{"english":"cat","chinese":"猫","level":"Advanced"},{"chinese":"无英文"}]`, want: []string{"cat"}},
		{name: "正常系: words プロパティ", content: `{"words":[{"id":"x1","english":"dog"}]}`, want: []string{"dog"}},
		{name: "正常系: 想定外の形は空", content: `{"items":[1,2]}`, want: []string{}},
		{name: "異常系: 壊れたJSON", content: `[{"english":`, wantErr: model.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := ParseFile("list.json", []byte(tt.content))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			got := make([]string, 0, len(words))
			for _, w := range words {
				got = append(got, w.English)
			}
			assert.Equal(t, tt.want, got)
		})
	}

	words, err := ParseJSON([]byte(`[{"english":"cat","level":"Advanced"},{"id":"x1","english":"dog"}]`))
	require.NoError(t, err)
	assert.Equal(t, model.LevelAdvanced, words[0].Level)
	assert.Equal(t, "json-0", words[0].ID)
	assert.Equal(t, "x1", words[1].ID)

	t.Run("正常系: 指定IDと自動採番IDの衝突を振り直す", func(t *testing.T) {
		words, err := ParseJSON([]byte(`[{"id":"json-1","english":"a"},{"english":"b"},{"id":"json-1","english":"c"}]`))
		require.NoError(t, err)
		got := make([]string, 0, len(words))
		for _, w := range words {
			got = append(got, w.ID)
		}
		assert.Equal(t, []string{"json-1", "json-2", "json-3"}, got)
	})
}

func TestParseFile_CSV(t *testing.T) {
	content := "English,Chinese,Pronunciation,Level,Category\n" +
		"apple,苹果,ˈæpl,beginner,fruit\n" +
		"\"ice cream\",\"冰淇淋\",,unknown\n" +
		",空的\n" +
		"pear\n"

	words, err := ParseFile("list.csv", []byte(content))
	require.NoError(t, err)
	require.Len(t, words, 3)

	assert.Equal(t, "apple", words[0].English)
	assert.Equal(t, "fruit", words[0].Category)
	assert.Equal(t, "ice cream", words[1].English)
	assert.Equal(t, "冰淇淋", words[1].Chinese)
	assert.Equal(t, model.LevelBeginner, words[1].Level)
	assert.Equal(t, "pear", words[2].English)
	assert.Empty(t, words[2].Chinese)
}

func TestParseFile_Unsupported(t *testing.T) {
	_, err := ParseFile("scan.pdf", []byte("x"))
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}
