package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go_vocab_game/internal/config"
	"go_vocab_game/internal/service"
)

func newScoreCommand(opts *commandOptions) *cobra.Command {
	var correct, total int
	var seconds float64

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute a session score with the configured scoring policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if total <= 0 || correct < 0 || correct > total {
				return fmt.Errorf("invalid counts: correct=%d total=%d", correct, total)
			}
			if seconds < 0 {
				return fmt.Errorf("invalid seconds: %v", seconds)
			}
			var cfg config.Config
			config.ApplyDefaults(&cfg)
			eval := service.ScoringFromConfig(cfg.Scoring).Evaluate(correct, total, seconds)
			if opts.jsonOutput {
				return writeJSON(cmd, eval)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "score=%d accuracy=%.1f%% band=%s\n%s\n", eval.Score, eval.Accuracy, eval.Band, eval.Text())
			return nil
		},
	}

	cmd.Flags().IntVar(&correct, "correct", 0, "Correct answers")
	cmd.Flags().IntVar(&total, "total", 0, "Total words")
	cmd.Flags().Float64Var(&seconds, "seconds", 0, "Elapsed seconds")

	return cmd
}
