// Package main provides the promptpack CLI application.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/observability"
	"github.com/promptpack/promptpack/pkg/resolve"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths <directory>",
	Short: "Write a manifest of matching file paths",
	Long: `Walk a directory and write the matching file paths, one per
line. The result can be edited and fed back to 'promptpack prompt' as a
manifest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPaths(cmd, args[0])
	},
}

// pathsFlags holds the flags for the paths command
type pathsFlags struct {
	output    string
	fileTypes []string
	debug     bool
}

var pathsOpts pathsFlags

func init() {
	rootCmd.AddCommand(pathsCmd)

	pathsCmd.Flags().StringVarP(&pathsOpts.output, "output", "o", "paths.txt", "The output file to write the paths to")
	pathsCmd.Flags().StringSliceVarP(&pathsOpts.fileTypes, "filetypes", "t", nil, "List of file suffixes to include")
	pathsCmd.Flags().BoolVar(&pathsOpts.debug, "debug", false, "Verbose tracing")
}

func runPaths(cmd *cobra.Command, dir string) error {
	log := observability.NewLogger(pathsOpts.debug)

	entries, err := resolve.New(log).Dir(dir, pathsOpts.fileTypes)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(entry.Path)
		b.WriteString("\n")
	}

	if err := os.WriteFile(pathsOpts.output, []byte(b.String()), 0o644); err != nil {
		return errors.OutputError(fmt.Sprintf("writing %s", pathsOpts.output), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Paths written to %s.\n", pathsOpts.output)
	return nil
}
