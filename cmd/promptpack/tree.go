// Package main provides the promptpack CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/tree"
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree <directory> <output-file>",
	Short: "Write a directory tree structure",
	Long: `Generate a directory tree for the given directory and write it
to a file. Entries matched by a .gitignore at the directory root and the
.git directory itself are excluded unless --all is set.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTree(cmd, args[0], args[1])
	},
}

// treeFlags holds the flags for the tree command
type treeFlags struct {
	all bool
}

var treeOpts treeFlags

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().BoolVar(&treeOpts.all, "all", false, "Include ignored files in the tree")
}

func runTree(cmd *cobra.Command, dir, outFile string) error {
	rendered, err := tree.Generate(dir, treeOpts.all)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outFile, []byte(rendered), 0o644); err != nil {
		return errors.OutputError(fmt.Sprintf("writing %s", outFile), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tree written to %s\n", outFile)
	return nil
}
