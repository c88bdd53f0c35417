package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"go_vocab_game/internal/catalog"
	"go_vocab_game/internal/model"
)

func newRandomCommand(opts *commandOptions) *cobra.Command {
	var level string
	var count int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Pick random words from the built-in catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load()
			if err != nil {
				return err
			}
			var rng *rand.Rand
			if cmd.Flags().Changed("seed") {
				rng = rand.New(rand.NewPCG(seed, seed))
			}
			words, err := cat.RandomWords(model.Level(level), count, rng)
			if err != nil {
				return err
			}
			return printWords(cmd, opts, words)
		},
	}

	cmd.Flags().StringVar(&level, "level", string(model.LevelMixed), "beginner, intermediate, advanced or mixed")
	cmd.Flags().IntVar(&count, "count", catalog.DefaultWordCount, "Number of words")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for reproducible output")

	return cmd
}
