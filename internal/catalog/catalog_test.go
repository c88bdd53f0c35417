// internal/catalog/catalog_test.go
package catalog

import (
	"math/rand/v2"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/model"
)

func TestLoad_Embedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, c.LevelSize(model.LevelBeginner))
	assert.Equal(t, 30, c.LevelSize(model.LevelIntermediate))
	assert.Equal(t, 30, c.LevelSize(model.LevelAdvanced))

	infos := c.Textbooks()
	require.Len(t, infos, 2)
	assert.Equal(t, "beijing-grade3-vol1", infos[0].ID)

	tb, err := c.Textbook("beijing-grade3-vol1")
	require.NoError(t, err)
	assert.Equal(t, "北京版小学英语三年级上册", tb.Info.Name)
	assert.Equal(t, 66, tb.WordCount())
}

func TestCatalog_RandomWords(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(7, 7))

	tests := []struct {
		name     string
		level    model.Level
		count    int
		wantLen  int
		perLevel map[model.Level]int
		wantErr  error
	}{
		{name: "正常系: 単一レベル", level: model.LevelAdvanced, count: 10, wantLen: 10, perLevel: map[model.Level]int{model.LevelAdvanced: 10}},
		{name: "正常系: 件数はカタログの語数まで", level: model.LevelBeginner, count: 100, wantLen: 30},
		{name: "正常系: 件数0はデフォルト30", level: model.LevelIntermediate, count: 0, wantLen: 30},
		{name: "正常系: mixed は余りを先頭レベルへ", level: model.LevelMixed, count: 8, wantLen: 8,
			perLevel: map[model.Level]int{model.LevelBeginner: 3, model.LevelIntermediate: 3, model.LevelAdvanced: 2}},
		{name: "異常系: 未知のレベル", level: "expert", count: 5, wantErr: model.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := c.RandomWords(tt.level, tt.count, rng)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, words, tt.wantLen)

			ids := map[string]struct{}{}
			got := map[model.Level]int{}
			for _, w := range words {
				ids[w.ID] = struct{}{}
				got[w.Level]++
			}
			assert.Len(t, ids, tt.wantLen, "IDは重複しない")
			if tt.perLevel != nil {
				assert.Equal(t, tt.perLevel, got)
			}
		})
	}
}

func TestCatalog_Words(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	all, err := c.WordsFromTextbook("beijing-grade3-vol1")
	require.NoError(t, err)
	assert.Len(t, all, 66)

	unit, err := c.WordsFromUnit("beijing-grade3-vol1", "unit1")
	require.NoError(t, err)
	assert.Len(t, unit, 10)

	lesson, err := c.WordsFromLesson("beijing-grade3-vol1", "unit1", "lesson2")
	require.NoError(t, err)
	require.Len(t, lesson, 5)
	assert.Equal(t, "name", lesson[0].English)

	_, err = c.Words("missing", "", "")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = c.Words("beijing-grade3-vol1", "unit99", "")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = c.Words("beijing-grade3-vol1", "unit1", "lesson99")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"words.toml": {Data: []byte(`
[[words]]
id = "x1"
english = "apple"
chinese = "苹果"
level = "beginner"
`)},
		"mini.toml": {Data: []byte(`
[info]
name = "Mini"

[[units]]
id = "u1"
name = "Unit 1"

[[units.lessons]]
id = "l1"
name = "Lesson 1"

[[units.lessons.words]]
id = "m1"
english = "cat"
chinese = "猫"
`)},
		"broken.toml": {Data: []byte(`[info`)},
	}

	_, err := LoadFS(fsys)
	assert.Error(t, err)

	delete(fsys, "broken.toml")
	c, err := LoadFS(fsys)
	require.NoError(t, err)
	assert.Equal(t, 1, c.LevelSize(model.LevelBeginner))
	tb, err := c.Textbook("mini")
	require.NoError(t, err)
	assert.Equal(t, 1, tb.WordCount())
}
