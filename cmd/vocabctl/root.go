package main

import (
	"github.com/spf13/cobra"

	"go_vocab_game/internal/config"
)

// commandOptions はサブコマンド共通のフラグ
type commandOptions struct {
	jsonOutput bool
	dictPath   string
}

func newRootCommand() *cobra.Command {
	opts := &commandOptions{}

	rootCmd := &cobra.Command{
		Use:           "vocabctl",
		Short:         "Vocabulary parsing and scoring tools",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Write JSON instead of a table")
	rootCmd.PersistentFlags().StringVar(&opts.dictPath, "dict", "", "IPA dictionary used to fill missing pronunciations")

	rootCmd.AddCommand(newParseCommand(opts))
	rootCmd.AddCommand(newTextbookCommand(opts))
	rootCmd.AddCommand(newRandomCommand(opts))
	rootCmd.AddCommand(newScoreCommand(opts))

	return rootCmd
}
