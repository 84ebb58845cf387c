// Package main provides the promptpack CLI application.
package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/promptpack/promptpack/pkg/assemble"
	"github.com/promptpack/promptpack/pkg/config"
	"github.com/promptpack/promptpack/pkg/normalize"
	"github.com/promptpack/promptpack/pkg/observability"
	"github.com/promptpack/promptpack/pkg/output"
	"github.com/promptpack/promptpack/pkg/resolve"
	"github.com/promptpack/promptpack/pkg/tokenizer"
)

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt <directory|manifest>",
	Short: "Assemble files into prompt documents",
	Long: `Assemble files into one or more prompt documents.

The input is either a directory, which is walked recursively, or a
manifest file listing paths one per line. Manifest lines may be grouped
under TARGET:<root> directives; each path is then resolved against the
most recent root while its rendered name stays as written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrompt(cmd, args[0])
	},
}

// promptFlags holds the flags for the prompt command
type promptFlags struct {
	config       string
	outputBase   string
	model        string
	maxTokens    int
	fileTypes    []string
	lineNumbers  bool
	keepComments bool
	concise      bool
	dropBlank    bool
	showFullPath bool
	showPath     bool
	debug        bool
}

var promptOpts promptFlags

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().StringVarP(&promptOpts.config, "config", "c", "", "Path to configuration file")
	promptCmd.Flags().StringVarP(&promptOpts.outputBase, "output", "o", "", "Output file prefix (default \"prompt\")")
	promptCmd.Flags().StringVar(&promptOpts.model, "model", "", "Tokenizer model (default \"gpt-4\")")
	promptCmd.Flags().IntVar(&promptOpts.maxTokens, "max-tokens", 0, "Max tokens per output part (0 = single part)")
	promptCmd.Flags().StringSliceVarP(&promptOpts.fileTypes, "filetypes", "t", nil, "File suffixes to include when walking a directory")
	promptCmd.Flags().BoolVar(&promptOpts.lineNumbers, "line-numbers", false, "Prefix lines with their line numbers")
	promptCmd.Flags().BoolVar(&promptOpts.keepComments, "keep-comments", false, "Retain comments in files")
	promptCmd.Flags().BoolVar(&promptOpts.concise, "concise", false, "Remove import and using declarations")
	promptCmd.Flags().BoolVar(&promptOpts.dropBlank, "drop-blank", false, "Drop lines left blank after trimming")
	promptCmd.Flags().BoolVar(&promptOpts.showFullPath, "show-full-path", false, "Render the full resolved path of each file")
	promptCmd.Flags().BoolVar(&promptOpts.showPath, "show-path", false, "Render the path as written in the manifest")
	promptCmd.Flags().BoolVar(&promptOpts.debug, "debug", false, "Verbose tracing")
}

func runPrompt(cmd *cobra.Command, input string) error {
	cfg, err := promptConfig(cmd)
	if err != nil {
		return err
	}

	log := observability.NewLogger(cfg.Debug)
	log.Debug("effective configuration",
		observability.String("model", cfg.Model),
		observability.String("output", cfg.Output),
		observability.Int("max_tokens", cfg.MaxTokens))

	counter, err := tokenizer.NewTiktoken(cfg.Model)
	if err != nil {
		return err
	}

	entries, err := resolve.New(log).Resolve(input, cfg.FileTypes)
	if err != nil {
		return err
	}

	normalizer := normalize.New(normalize.Options{
		LineNumbers:  cfg.Normalize.LineNumbers,
		KeepComments: cfg.Normalize.KeepComments,
		Concise:      cfg.Normalize.Concise,
		DropBlank:    cfg.Normalize.DropBlank,
	}, counter, log)

	assembler := assemble.New(cfg.Output, cfg.MaxTokens, log)
	table := output.NewTable(cmd.OutOrStdout())
	table.Header()

	total := 0
	for _, entry := range entries {
		file, skip := normalizer.Normalize(entry.Path, displayName(entry, cfg.Display))
		if skip != nil {
			table.SkipRow(entry.Path)
			continue
		}

		table.Row(file.Tokens, entry.Path)
		total += file.Tokens

		if err := assembler.Add(file); err != nil {
			return err
		}
	}

	parts, err := assembler.Close()
	if err != nil {
		return err
	}

	table.Divider()
	for _, part := range parts {
		table.PartRow(part.Tokens, part.Name)
	}
	table.Total(total)
	if limit := counter.Limit(); limit > 0 {
		table.Limit(limit, cfg.Model)
	}

	return nil
}

// promptConfig merges the config file with explicitly set flags.
func promptConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if promptOpts.config != "" {
		cfg, err = config.Load(promptOpts.config)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = promptOpts.outputBase
	}
	if flags.Changed("model") {
		cfg.Model = promptOpts.model
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = promptOpts.maxTokens
	}
	if flags.Changed("filetypes") {
		cfg.FileTypes = promptOpts.fileTypes
	}
	if flags.Changed("line-numbers") {
		cfg.Normalize.LineNumbers = promptOpts.lineNumbers
	}
	if flags.Changed("keep-comments") {
		cfg.Normalize.KeepComments = promptOpts.keepComments
	}
	if flags.Changed("concise") {
		cfg.Normalize.Concise = promptOpts.concise
	}
	if flags.Changed("drop-blank") {
		cfg.Normalize.DropBlank = promptOpts.dropBlank
	}
	if flags.Changed("show-full-path") {
		cfg.Display.ShowFullPath = promptOpts.showFullPath
	}
	if flags.Changed("show-path") {
		cfg.Display.ShowPath = promptOpts.showPath
	}
	if flags.Changed("debug") {
		cfg.Debug = promptOpts.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// displayName picks the rendered header for an entry: the manifest path,
// the full resolved path, or just the file name.
func displayName(entry resolve.Entry, d config.DisplayConfig) string {
	switch {
	case d.ShowPath:
		return entry.Display
	case d.ShowFullPath:
		return entry.Path
	default:
		return filepath.Base(entry.Path)
	}
}
