// Package gitdiff extracts working-tree diffs from a git repository,
// one .diff file per changed path plus a summary of changes.
package gitdiff

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/observability"
)

// validGitRefPattern matches safe git refs (branch names, tags, commits)
var validGitRefPattern = regexp.MustCompile(`^[a-zA-Z0-9/_\-\.]+$`)

// dangerousShellChars contains characters that must be rejected to prevent shell injection
var dangerousShellChars = []string{"|", "&", ";", "$", "(", ")", "`", "{", "}", ">", "<", "\n", "\t"}

// sanitizeGitRef validates that a git ref is safe to use in commands
func sanitizeGitRef(ref string) error {
	if ref == "" {
		return nil // Empty ref is valid (defaults to HEAD)
	}
	if strings.Contains(ref, "..") || strings.Contains(ref, "\\") {
		return fmt.Errorf("invalid git ref: contains path traversal sequence")
	}
	for _, ch := range dangerousShellChars {
		if strings.Contains(ref, ch) {
			return fmt.Errorf("invalid git ref: contains dangerous character '%s'", ch)
		}
	}
	if !validGitRefPattern.MatchString(ref) {
		return fmt.Errorf("invalid git ref: contains invalid characters")
	}
	return nil
}

// sanitizePath validates that a file path is safe
func sanitizePath(path string) error {
	if path == "" {
		return nil
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("invalid path: contains path traversal")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("invalid path: absolute paths not allowed")
	}
	for _, ch := range dangerousShellChars {
		if strings.Contains(path, ch) {
			return fmt.Errorf("invalid path: contains dangerous character '%s'", ch)
		}
	}
	return nil
}

// Change is one entry of git diff --name-status.
type Change struct {
	Status string
	Path   string
}

// Extractor captures diffs from a repository. When ref is non-empty,
// diffs are taken against that ref instead of the index.
type Extractor struct {
	repoDir string
	ref     string
	log     observability.Logger
}

// New creates an Extractor for the repository at repoDir. The ref is
// validated up front; an empty ref diffs the working tree as usual.
func New(repoDir, ref string, log observability.Logger) (*Extractor, error) {
	if err := sanitizeGitRef(ref); err != nil {
		return nil, errors.InputError("invalid git ref", err)
	}
	return &Extractor{repoDir: repoDir, ref: ref, log: log}, nil
}

// IsGitRepo checks if the directory is a git repository
func (e *Extractor) IsGitRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = e.repoDir
	return cmd.Run() == nil
}

// ChangedFiles returns the name-status list of working-tree changes.
func (e *Extractor) ChangedFiles(ctx context.Context) ([]Change, error) {
	out, err := e.git(ctx, e.diffArgs("--name-status", "--no-color")...)
	if err != nil {
		return nil, err
	}

	var changes []Change
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		changes = append(changes, Change{Status: fields[0], Path: fields[len(fields)-1]})
	}
	return changes, nil
}

// Diff returns the working-tree diff for a single path.
func (e *Extractor) Diff(ctx context.Context, path string) (string, error) {
	if err := sanitizePath(path); err != nil {
		return "", errors.InputError("invalid diff path", err)
	}
	return e.git(ctx, e.diffArgs("--no-color", "--", path)...)
}

// diffArgs builds a git diff argument list, inserting the base ref
// right after the subcommand when one is configured.
func (e *Extractor) diffArgs(rest ...string) []string {
	args := []string{"diff"}
	if e.ref != "" {
		args = append(args, e.ref)
	}
	return append(args, rest...)
}

// Extract writes a summary of changes and one .diff file per changed
// path into outputDir. Deleted files are skipped. Returns the written
// file names.
func (e *Extractor) Extract(ctx context.Context, outputDir string) ([]string, error) {
	changes, err := e.ChangedFiles(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.OutputError(fmt.Sprintf("creating %s", outputDir), err)
	}

	var summary strings.Builder
	for _, c := range changes {
		summary.WriteString(c.Status)
		summary.WriteString("\t")
		summary.WriteString(c.Path)
		summary.WriteString("\n")
	}

	summaryPath := filepath.Join(outputDir, "summary_of_changes.txt")
	if err := os.WriteFile(summaryPath, []byte(summary.String()), 0o644); err != nil {
		return nil, errors.OutputError(fmt.Sprintf("writing %s", summaryPath), err)
	}
	written := []string{summaryPath}

	for _, c := range changes {
		if c.Status == "D" {
			continue
		}

		diff, err := e.Diff(ctx, c.Path)
		if err != nil {
			e.log.Warn("skipping diff",
				observability.String("path", c.Path),
				observability.Err(err))
			continue
		}

		// Flatten the path so every diff lands in one directory.
		name := strings.NewReplacer("/", "_", "\\", "_").Replace(c.Path) + ".diff"
		outPath := filepath.Join(outputDir, name)
		if err := os.WriteFile(outPath, []byte(diff), 0o644); err != nil {
			return nil, errors.OutputError(fmt.Sprintf("writing %s", outPath), err)
		}
		written = append(written, outPath)
	}

	return written, nil
}

// git runs a git command in the repository and returns its stdout.
func (e *Extractor) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.repoDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("git cancelled: %w", ctx.Err())
		}
		return "", errors.InputError(fmt.Sprintf("git %s failed: %s", strings.Join(args, " "), stderr.String()), err)
	}

	return stdout.String(), nil
}
