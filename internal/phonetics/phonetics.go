// internal/phonetics/phonetics.go
package phonetics

import (
	"fmt"
	"strings"

	"github.com/temporal-IPA/tipa/pkg/phonodict"

	"go_vocab_game/internal/model"
)

// Filler は発音記号が空の単語にIPAを補います
type Filler interface {
	Fill(words []model.Word) []model.Word
}

// Nop は何もしないFiller (辞書未設定時)
type Nop struct{}

func (Nop) Fill(words []model.Word) []model.Word { return words }

// Dictionary は単語 → IPA 候補リストの発音辞書
type Dictionary struct {
	entries map[string][]string
}

// NewFiller は dictPath が空なら Nop を、それ以外は辞書を読み込んで返します
func NewFiller(dictPath string) (Filler, error) {
	if strings.TrimSpace(dictPath) == "" {
		return Nop{}, nil
	}
	return Load(dictPath)
}

// Load は text / gob / ipa_dict_txt 形式の辞書ファイルを読み込みます
func Load(paths ...string) (*Dictionary, error) {
	entries, _, _, err := phonodict.PreloadPaths(phonodict.MergeModeAppend, paths...)
	if err != nil {
		return nil, fmt.Errorf("phonetics.Load %q: %w", strings.Join(paths, ", "), err)
	}
	return NewDictionary(entries), nil
}

func NewDictionary(entries map[string][]string) *Dictionary {
	normalized := make(map[string][]string, len(entries))
	for word, prons := range entries {
		key := strings.ToLower(strings.TrimSpace(word))
		normalized[key] = append(normalized[key], prons...)
	}
	return &Dictionary{entries: normalized}
}

// Lookup は最初の発音候補を区切り記号なしで返します
func (d *Dictionary) Lookup(english string) (string, bool) {
	prons := d.entries[strings.ToLower(strings.TrimSpace(english))]
	for _, p := range prons {
		p = strings.Trim(strings.TrimSpace(p), "/[]")
		if p != "" {
			return p, true
		}
	}
	return "", false
}

// Fill は Pronunciation が空の単語だけを埋めたコピーを返します
func (d *Dictionary) Fill(words []model.Word) []model.Word {
	out := make([]model.Word, len(words))
	for i, w := range words {
		if strings.TrimSpace(w.Pronunciation) == "" {
			if ipa, ok := d.Lookup(w.English); ok {
				w.Pronunciation = ipa
			}
		}
		out[i] = w
	}
	return out
}

func (d *Dictionary) Len() int {
	return len(d.entries)
}
