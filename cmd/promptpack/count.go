// Package main provides the promptpack CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptpack/promptpack/pkg/observability"
	"github.com/promptpack/promptpack/pkg/output"
	"github.com/promptpack/promptpack/pkg/resolve"
	"github.com/promptpack/promptpack/pkg/tokenizer"
)

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count <file|directory>",
	Short: "Count tokens in a file or directory",
	Long: `Count tokens in a single file or every file under a directory.

Prints one row per file, a grand total, and the selected model's
maximum input size for comparison.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCount(cmd, args[0])
	},
}

// countFlags holds the flags for the count command
type countFlags struct {
	model string
	debug bool
}

var countOpts countFlags

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().StringVar(&countOpts.model, "model", "gpt-4", "Model to use for token counting")
	countCmd.Flags().BoolVar(&countOpts.debug, "debug", false, "Verbose tracing")
}

func runCount(cmd *cobra.Command, path string) error {
	log := observability.NewLogger(countOpts.debug)

	counter, err := tokenizer.NewTiktoken(countOpts.model)
	if err != nil {
		return err
	}

	entries, err := countEntries(path, log)
	if err != nil {
		return err
	}

	table := output.NewTable(cmd.OutOrStdout())
	table.Header()

	total := 0
	for _, entry := range entries {
		data, err := os.ReadFile(entry.Path)
		if err != nil {
			log.Warn("skipping unreadable file",
				observability.String("path", entry.Path),
				observability.Err(err))
			table.SkipRow(entry.Path)
			continue
		}

		tokens, err := counter.Count(string(data))
		if err != nil {
			log.Warn("token count failed",
				observability.String("path", entry.Path),
				observability.Err(err))
			table.SkipRow(entry.Path)
			continue
		}

		total += tokens
		table.Row(tokens, entry.Path)
	}

	table.Divider()
	table.Total(total)
	if limit := counter.Limit(); limit > 0 {
		table.Limit(limit, countOpts.model)
	}

	return nil
}

// countEntries resolves the count target: a directory is walked, a
// single file is counted as-is.
func countEntries(path string, log observability.Logger) ([]resolve.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input path %s: %w", path, err)
	}

	if info.IsDir() {
		return resolve.New(log).Dir(path, nil)
	}
	return []resolve.Entry{{Path: path, Display: path}}, nil
}
