package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"go_vocab_game/internal/parser"
)

func newTextbookCommand(opts *commandOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textbook",
		Short: "Check and parse textbook text with Unit/Lesson headings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <path|->",
		Short: "Report structural issues before parsing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			report := parser.ValidateText(string(data))
			if opts.jsonOutput {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			if report.IsValid {
				fmt.Fprintln(out, "OK: textbook structure detected")
			} else {
				fmt.Fprintln(out, "NG: textbook structure not detected")
			}
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "  issue: %s\n", issue)
			}
			for _, s := range report.Suggestions {
				fmt.Fprintf(out, "  hint:  %s\n", s)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "parse <path|->",
		Short: "Split textbook text into units and lessons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			result := parser.ProcessText(string(data))
			if opts.jsonOutput {
				return writeJSON(cmd, result)
			}
			if !result.Success {
				for _, s := range result.Suggestions {
					fmt.Fprintf(cmd.ErrOrStderr(), "hint: %s\n", s)
				}
				return fmt.Errorf("parse textbook: %s", result.Error)
			}

			tb := result.Textbook
			out := cmd.OutOrStdout()
			rows := make([][]string, 0)
			for _, u := range tb.Units {
				for _, l := range u.Lessons {
					rows = append(rows, []string{u.ID, u.Name, l.ID, l.Name, strconv.Itoa(len(l.Words))})
				}
			}
			fmt.Fprintf(out, "%s (%s)\n", tb.Info.Name, tb.Info.ID)
			fmt.Fprintln(out, renderTable(out, []string{"Unit", "Unit name", "Lesson", "Lesson name", "Words"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}))
			fmt.Fprintf(out, "%d words\n", tb.WordCount())
			return nil
		},
	})

	return cmd
}
