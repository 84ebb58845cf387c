package normalize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/promptpack/promptpack/pkg/observability"
	"github.com/promptpack/promptpack/pkg/tokenizer"
)

// Options controls the normalization pipeline. Stage order is fixed:
// decode, emptiness check, line numbering, comment stripping, import
// stripping, trimming, token count. Numbering always happens before any
// line-dropping transformation so numbers stay meaningful.
type Options struct {
	// LineNumbers rewrites every line as "N|line", 1-based.
	LineNumbers bool
	// KeepComments skips the comment-stripping stage.
	KeepComments bool
	// Concise drops import/use-style declaration lines.
	Concise bool
	// DropBlank removes lines left empty after trimming.
	DropBlank bool
}

// File is a normalized source file ready for assembly. Never mutated
// after creation.
type File struct {
	Display  string
	Language string
	Code     bool
	Content  string
	Tokens   int
}

// Render produces the text block appended to an output part: a header
// line with the display name, an opening fence, the normalized content,
// and a matching closing fence. The inter-block separator is owned by
// the assembler.
func (f *File) Render() string {
	var b strings.Builder
	b.WriteString(f.Display)
	b.WriteString(":\n")
	if f.Code {
		b.WriteString("```")
		b.WriteString(f.Language)
		b.WriteString("\n")
	} else {
		b.WriteString("\"\"\"\n")
	}
	b.WriteString(f.Content)
	b.WriteString("\n")
	if f.Code {
		b.WriteString("```\n")
	} else {
		b.WriteString("\"\"\"\n")
	}
	return b.String()
}

// Skip reports a file left out of the rendered output. Skips contribute
// zero tokens but still appear in the summary.
type Skip struct {
	Display string
	Reason  string
}

// Normalizer runs the normalization pipeline over single files.
type Normalizer struct {
	opts    Options
	counter tokenizer.Counter
	log     observability.Logger
}

// New creates a Normalizer.
func New(opts Options, counter tokenizer.Counter, log observability.Logger) *Normalizer {
	return &Normalizer{opts: opts, counter: counter, log: log}
}

// Normalize reads and normalizes one file. Exactly one of the return
// values is non-nil: recoverable problems (unreadable file, empty
// content) become a Skip, never an error that aborts the stream.
func (n *Normalizer) Normalize(path, display string) (*File, *Skip) {
	text, err := readFile(path)
	if err != nil {
		n.log.Warn("skipping unreadable file",
			observability.String("path", path),
			observability.Err(err))
		return nil, &Skip{Display: display, Reason: fmt.Sprintf("read failed: %v", err)}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &Skip{Display: display, Reason: "empty file"}
	}

	if n.opts.LineNumbers {
		text = prefixLineNumbers(text)
	}

	if !n.opts.KeepComments {
		text = stripComments(text, fullExtension(path))
	}

	if n.opts.Concise {
		text = stripImports(text, filepath.Ext(path))
	}

	text = trimLines(text, n.opts.DropBlank)

	tokens, err := n.counter.Count(text)
	if err != nil {
		// Degraded, not fatal: the file is still rendered.
		n.log.Warn("token count failed, treating as zero",
			observability.String("path", path),
			observability.Err(err))
		tokens = 0
	}

	return &File{
		Display:  display,
		Language: languageFor(path),
		Code:     isCodeFile(path),
		Content:  text,
		Tokens:   tokens,
	}, nil
}

// prefixLineNumbers rewrites every line as "N|line", 1-based.
func prefixLineNumbers(content string) string {
	lines, trailing := splitLines(content)
	for i, line := range lines {
		lines[i] = fmt.Sprintf("%d|%s", i+1, line)
	}
	return joinLines(lines, trailing)
}

// trimLines right-trims trailing whitespace from every line and,
// when dropBlank is set, removes lines that end up empty.
func trimLines(content string, dropBlank bool) string {
	lines, trailing := splitLines(content)
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if dropBlank && line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return joinLines(kept, trailing)
}

// splitLines splits content into lines, reporting whether a trailing
// newline was present so joinLines can restore it byte-for-byte.
func splitLines(content string) ([]string, bool) {
	trailing := strings.HasSuffix(content, "\n")
	if trailing {
		content = strings.TrimSuffix(content, "\n")
	}
	return strings.Split(content, "\n"), trailing
}

func joinLines(lines []string, trailing bool) string {
	joined := strings.Join(lines, "\n")
	if trailing && joined != "" {
		joined += "\n"
	}
	return joined
}
