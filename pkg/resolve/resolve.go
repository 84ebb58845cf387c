// Package resolve turns an input specification into an ordered list of
// source files. The input is either a directory, which is walked
// recursively, or a manifest file listing paths one per line, optionally
// grouped under TARGET: root directives.
package resolve

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/observability"
)

// targetPrefix introduces a root directive in a manifest.
const targetPrefix = "TARGET:"

// Entry is a single resolved source file. Path is used for I/O;
// Display is what appears in rendered output. The two differ only when
// a manifest TARGET indirection was applied.
type Entry struct {
	Path    string
	Display string
}

// Resolver resolves input specifications into source entries.
type Resolver struct {
	log observability.Logger
}

// New creates a Resolver.
func New(log observability.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve dispatches on the input type: directories are walked,
// regular files are parsed as manifests. A missing input is fatal.
func (r *Resolver) Resolve(input string, suffixes []string) ([]Entry, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, errors.InputError(fmt.Sprintf("input path %s", input), err)
	}

	if info.IsDir() {
		return r.Dir(input, suffixes)
	}
	return r.Manifest(input)
}

// Dir recursively enumerates all files under root in sorted order,
// excluding the .git directory and anything matched by a .gitignore
// at the root. Path and Display are identical for directory entries.
func (r *Resolver) Dir(root string, suffixes []string) ([]Entry, error) {
	matcher := loadIgnore(root)

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if matcher != nil && rel != "." && matcher.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		if !matchesSuffix(d.Name(), suffixes) {
			return nil
		}

		entries = append(entries, Entry{Path: path, Display: path})
		return nil
	})
	if err != nil {
		return nil, errors.InputError(fmt.Sprintf("walking directory %s", root), err)
	}

	return entries, nil
}

// Manifest reads a path list file. Each line is trimmed; blank lines
// and # comments are skipped. TARGET:<root> updates the current root
// for subsequent lines only. Any other line is a path: when a root is
// set, Path is the root joined with the line stripped of one leading
// separator; Display is always the line as written.
func (r *Resolver) Manifest(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.ManifestError(fmt.Sprintf("opening manifest %s", path), err)
	}
	defer f.Close()

	var entries []Entry
	currentRoot := ""
	lineNo := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, targetPrefix) {
			root := strings.TrimSpace(strings.TrimPrefix(line, targetPrefix))
			if root == "" {
				r.log.Warn("manifest TARGET directive with empty root, skipping",
					observability.String("manifest", path),
					observability.Int("line", lineNo))
				continue
			}
			currentRoot = root
			r.log.Debug("manifest target root set",
				observability.String("root", currentRoot))
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		resolved := line
		if currentRoot != "" {
			resolved = filepath.Join(currentRoot, strings.TrimPrefix(line, string(filepath.Separator)))
		}
		entries = append(entries, Entry{Path: resolved, Display: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.ManifestError(fmt.Sprintf("reading manifest %s", path), err)
	}

	return entries, nil
}

// loadIgnore compiles the .gitignore at the directory root, nil when absent.
func loadIgnore(root string) *ignore.GitIgnore {
	matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return matcher
}

// matchesSuffix reports whether name ends with one of the suffixes.
// An empty filter passes everything.
func matchesSuffix(name string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}
