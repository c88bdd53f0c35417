// internal/catalog/catalog.go
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"go_vocab_game/internal/model"
)

//go:embed data/*.toml
var dataFS embed.FS

const (
	wordsFile        = "words.toml"
	DefaultWordCount = 30
)

// Catalog は組み込みの単語カタログと教材です。読み取り専用なので並行に使えます。
type Catalog struct {
	words     map[model.Level][]model.Word
	textbooks map[string]*model.TextbookData
	order     []string
}

type wordsDoc struct {
	Words []model.Word `toml:"words"`
}

// Load は埋め込みデータからカタログを読み込みます
func Load() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	return LoadFS(sub)
}

// LoadFS は words.toml と、それ以外の *.toml (教材1冊ずつ) を読み込みます
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		words:     make(map[model.Level][]model.Word),
		textbooks: make(map[string]*model.TextbookData),
	}

	files, err := fs.Glob(fsys, "*.toml")
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFS: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("catalog.LoadFS: read %s: %w", name, err)
		}
		if name == wordsFile {
			var doc wordsDoc
			if err := toml.Unmarshal(raw, &doc); err != nil {
				return nil, fmt.Errorf("catalog.LoadFS: parse %s: %w", name, err)
			}
			for _, w := range doc.Words {
				c.words[w.Level] = append(c.words[w.Level], w)
			}
			continue
		}

		var tb model.TextbookData
		if err := toml.Unmarshal(raw, &tb); err != nil {
			return nil, fmt.Errorf("catalog.LoadFS: parse %s: %w", name, err)
		}
		if tb.Info.ID == "" {
			tb.Info.ID = strings.TrimSuffix(path.Base(name), ".toml")
		}
		if _, dup := c.textbooks[tb.Info.ID]; dup {
			return nil, fmt.Errorf("catalog.LoadFS: duplicate textbook id %q", tb.Info.ID)
		}
		c.textbooks[tb.Info.ID] = &tb
		c.order = append(c.order, tb.Info.ID)
	}
	return c, nil
}

// LevelSize はレベルごとの単語数
func (c *Catalog) LevelSize(level model.Level) int {
	return len(c.words[level])
}

// RandomWords は指定レベルからランダムに count 語を選びます。
// mixed の場合は各レベルから count/3 語ずつ (余りは先頭のレベルから1語ずつ) 選んでシャッフルします。
func (c *Catalog) RandomWords(level model.Level, count int, rng *rand.Rand) ([]model.Word, error) {
	if count <= 0 {
		count = DefaultWordCount
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	var picked []model.Word
	switch level {
	case model.LevelMixed:
		per, rem := count/len(model.Levels), count%len(model.Levels)
		for i, lvl := range model.Levels {
			n := per
			if i < rem {
				n++
			}
			picked = append(picked, sample(c.words[lvl], n, rng)...)
		}
	case model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced:
		picked = sample(c.words[level], count, rng)
	default:
		return nil, fmt.Errorf("catalog.RandomWords: %w: unknown level %q", model.ErrInvalidInput, level)
	}

	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return picked, nil
}

// sample は src のコピーをシャッフルして先頭 n 語を返します
func sample(src []model.Word, n int, rng *rand.Rand) []model.Word {
	cp := append([]model.Word(nil), src...)
	rng.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
	return cp[:min(n, len(cp))]
}

// Textbooks は教材のメタ情報を読み込み順で返します
func (c *Catalog) Textbooks() []model.TextbookInfo {
	infos := make([]model.TextbookInfo, 0, len(c.order))
	for _, id := range c.order {
		infos = append(infos, c.textbooks[id].Info)
	}
	return infos
}

func (c *Catalog) Textbook(id string) (*model.TextbookData, error) {
	tb, ok := c.textbooks[id]
	if !ok {
		return nil, fmt.Errorf("textbook %q: %w", id, model.ErrNotFound)
	}
	return tb, nil
}

// Words は教材全体・Unit・Lesson の単語を返します。unitID / lessonID が空なら上位の階層全体。
func (c *Catalog) Words(textbookID, unitID, lessonID string) ([]model.Word, error) {
	tb, err := c.Textbook(textbookID)
	if err != nil {
		return nil, err
	}
	return WordsIn(tb, unitID, lessonID)
}

func (c *Catalog) WordsFromTextbook(textbookID string) ([]model.Word, error) {
	return c.Words(textbookID, "", "")
}

func (c *Catalog) WordsFromUnit(textbookID, unitID string) ([]model.Word, error) {
	return c.Words(textbookID, unitID, "")
}

func (c *Catalog) WordsFromLesson(textbookID, unitID, lessonID string) ([]model.Word, error) {
	return c.Words(textbookID, unitID, lessonID)
}

// WordsIn は任意の教材 (取り込んだものも含む) から単語を取り出します
func WordsIn(tb *model.TextbookData, unitID, lessonID string) ([]model.Word, error) {
	if unitID == "" {
		return tb.AllWords(), nil
	}
	unit, ok := tb.FindUnit(unitID)
	if !ok {
		return nil, fmt.Errorf("unit %q: %w", unitID, model.ErrNotFound)
	}
	words := make([]model.Word, 0)
	for _, l := range unit.Lessons {
		if lessonID != "" && l.ID != lessonID {
			continue
		}
		words = append(words, l.Words...)
		if lessonID != "" {
			return words, nil
		}
	}
	if lessonID != "" {
		return nil, fmt.Errorf("lesson %q: %w", lessonID, model.ErrNotFound)
	}
	return words, nil
}
