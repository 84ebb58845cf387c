// Package main provides the promptpack CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/gitdiff"
	"github.com/promptpack/promptpack/pkg/observability"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <repository>",
	Short: "Extract working-tree diffs into files",
	Long: `Extract the working-tree changes of a git repository: a summary
of changed paths plus one .diff file per changed file, written into the
output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiff(cmd, args[0])
	},
}

// diffFlags holds the flags for the diff command
type diffFlags struct {
	output string
	ref    string
	force  bool
	debug  bool
}

var diffOpts diffFlags

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVarP(&diffOpts.output, "output", "o", "diff_output", "Directory to write diff files into")
	diffCmd.Flags().StringVar(&diffOpts.ref, "ref", "", "Base ref to diff against (default: working tree vs index)")
	diffCmd.Flags().BoolVarP(&diffOpts.force, "force", "f", false, "Overwrite the output directory if it exists")
	diffCmd.Flags().BoolVar(&diffOpts.debug, "debug", false, "Verbose tracing")
}

func runDiff(cmd *cobra.Command, repo string) error {
	log := observability.NewLogger(diffOpts.debug)

	if _, err := os.Stat(diffOpts.output); err == nil {
		if !diffOpts.force {
			return errors.ConfigError(fmt.Sprintf("output directory %s exists, use --force to overwrite", diffOpts.output), nil)
		}
		if err := os.RemoveAll(diffOpts.output); err != nil {
			return errors.OutputError(fmt.Sprintf("removing %s", diffOpts.output), err)
		}
	}

	extractor, err := gitdiff.New(repo, diffOpts.ref, log)
	if err != nil {
		return err
	}
	if !extractor.IsGitRepo() {
		return errors.InputError(fmt.Sprintf("%s is not a git repository", repo), nil)
	}

	written, err := extractor.Extract(cmd.Context(), diffOpts.output)
	if err != nil {
		return err
	}

	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}
