package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"go_vocab_game/internal/fileparse"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/parser"
	"go_vocab_game/internal/phonetics"
)

// readInput はパスが "-" なら標準入力を読みます
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func fillPronunciations(opts *commandOptions, words []model.Word) ([]model.Word, error) {
	filler, err := phonetics.NewFiller(opts.dictPath)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return filler.Fill(words), nil
}

func newParseCommand(opts *commandOptions) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract words from text, HTML or vocabulary files",
	}
	cmd.PersistentFlags().StringVar(&source, "source", "", "Source tag used for generated word IDs")

	run := func(extract func(path string, data []byte) ([]model.Word, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			words, err := extract(args[0], data)
			if err != nil {
				return err
			}
			words, err = fillPronunciations(opts, words)
			if err != nil {
				return err
			}
			return printWords(cmd, opts, words)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "text <path|->",
		Short: "Parse plain text line by line",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(_ string, data []byte) ([]model.Word, error) {
			return parser.ExtractWordsFromText(string(data), sourceOr(source, "text")), nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "html <path|->",
		Short: "Strip tags and parse the remaining text",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(_ string, data []byte) ([]model.Word, error) {
			return parser.ExtractWordsFromHTML(string(data), sourceOr(source, "html")), nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "file <path>",
		Short: "Parse a .txt, .json or .csv vocabulary file",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(path string, data []byte) ([]model.Word, error) {
			return fileparse.ParseFile(filepath.Base(path), data)
		}),
	})

	return cmd
}

func sourceOr(source, def string) string {
	if source == "" {
		return def
	}
	return source
}
