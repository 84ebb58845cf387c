// Package main provides the promptpack CLI application.
package main

import (
	"context"

	"github.com/promptpack/promptpack/pkg/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "promptpack",
	Short: "Pack source files into token-budgeted prompt documents",
	Long: `promptpack assembles source files into prompt documents for LLMs.

It resolves files from a directory or a path manifest, normalizes their
content (comment stripping, line numbering, import removal), counts
tokens against a tokenizer model, and packs the result into one or more
markdown documents that each stay within a token budget.`,
	Version:       version.FullString(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

// ExecuteContext adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
