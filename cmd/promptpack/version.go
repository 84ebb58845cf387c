// Package main provides the promptpack CLI application.
package main

import (
	"fmt"

	"github.com/promptpack/promptpack/pkg/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display detailed version information including build date and git commit.`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Info()
		fmt.Fprintf(cmd.OutOrStdout(), "promptpack version: %s\n", info["version"])
		fmt.Fprintf(cmd.OutOrStdout(), "  build date: %s\n", info["buildDate"])
		fmt.Fprintf(cmd.OutOrStdout(), "  git commit: %s\n", info["gitCommit"])
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
