// Package normalize turns raw file bytes into the exact text that is
// rendered and counted against the token budget.
package normalize

import (
	"path/filepath"
	"regexp"
	"strings"
)

// codeSuffixes lists file suffixes rendered inside a language-tagged
// code fence. Everything else gets a plain-quote fence.
var codeSuffixes = []string{
	".blade.php", ".php",
	".css",
	".env",
	".html",
	".js", ".svelte",
	".json",
	".md",
	".sql",
	".cs",
	".diff",
	".csv",
	".tree",
}

// languageMap maps file extensions to language names for markdown code blocks.
var languageMap = map[string]string{
	".blade.php": "php",
	".php":       "php",
	".css":       "css",
	".env":       "plaintext",
	".html":      "html",
	".js":        "javascript",
	".svelte":    "javascript",
	".json":      "json",
	".md":        "markdown",
	".sql":       "sql",
	".cs":        "csharp",
	".diff":      "diff",
	".csv":       "",
}

// importMarkers maps simple extensions to the leading keyword of
// import/use declarations dropped in concise mode.
var importMarkers = map[string]string{
	".php":    "use ",
	".js":     "import ",
	".svelte": "import ",
	".css":    "@import ",
	".sql":    "using ",
	".cs":     "using ",
}

// grammar describes the comment syntax of one file type. A dual grammar
// (alt markers set) carries two independent delimiter pairs, e.g. blade
// templating comments alongside embedded HTML comments.
type grammar struct {
	line       string
	blockStart string
	blockEnd   string
	altStart   string
	altEnd     string
}

// commentRules maps full extensions to their comment grammar.
var commentRules = map[string]grammar{
	".blade.php": {blockStart: "{{--", blockEnd: "--}}", altStart: "<!--", altEnd: "-->"},
	".php":       {line: "//", blockStart: "/*", blockEnd: "*/"},
	".js":        {line: "//", blockStart: "/*", blockEnd: "*/"},
	".svelte":    {line: "//", blockStart: "/*", blockEnd: "*/"},
	".json":      {line: "//", blockStart: "/*", blockEnd: "*/"},
	".css":       {blockStart: "/*", blockEnd: "*/"},
	".html":      {blockStart: "<!--", blockEnd: "-->"},
	".env":       {line: "#"},
	".sql":       {line: "--", blockStart: "/*", blockEnd: "*/"},
	".cs":        {line: "//", blockStart: "/*", blockEnd: "*/"},
}

// fullExtension detects the complete file suffix, special-casing
// compound extensions over the naive trailing segment.
func fullExtension(path string) string {
	if filepath.Base(path) == ".env" {
		return ".env"
	}
	ext := filepath.Ext(path)
	if ext == ".php" && strings.HasSuffix(path, ".blade.php") {
		return ".blade.php"
	}
	return ext
}

// isCodeFile reports whether the path gets a language-tagged fence.
func isCodeFile(path string) bool {
	for _, s := range codeSuffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

// languageFor returns the markdown language tag for a path, defaulting
// to plaintext for unrecognized extensions.
func languageFor(path string) string {
	if lang, ok := languageMap[filepath.Ext(path)]; ok {
		return lang
	}
	return "plaintext"
}

// stripComments removes comments from content per the file type's
// grammar. Matching is non-greedy; lines consisting only of a comment
// are removed together with their newline, then remaining inline
// occurrences are cut. Comment-start tokens inside string literals are
// a known false positive, no lexer is used.
func stripComments(content, fullExt string) string {
	rule, ok := commentRules[fullExt]
	if !ok {
		return content
	}

	if rule.altStart != "" {
		content = blockRegexp(rule.blockStart, rule.blockEnd).ReplaceAllString(content, "")
		content = blockRegexp(rule.altStart, rule.altEnd).ReplaceAllString(content, "")
		return content
	}

	if rule.blockStart != "" {
		content = blockLineRegexp(rule.blockStart, rule.blockEnd).ReplaceAllString(content, "")
		content = blockRegexp(rule.blockStart, rule.blockEnd).ReplaceAllString(content, "")
	}

	if rule.line != "" {
		content = lineOnlyRegexp(rule.line).ReplaceAllString(content, "")
		content = lineInlineRegexp(rule.line).ReplaceAllString(content, "")
	}

	return content
}

// blockRegexp matches an inline delimiter pair, crossing line boundaries.
func blockRegexp(start, end string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + regexp.QuoteMeta(start) + `.*?` + regexp.QuoteMeta(end))
}

// blockLineRegexp matches lines that consist only of a delimited
// comment, including the trailing newline.
func blockLineRegexp(start, end string) *regexp.Regexp {
	return regexp.MustCompile(`(?ms)^[ \t]*` + regexp.QuoteMeta(start) + `.*?` + regexp.QuoteMeta(end) + `[ \t]*$\n?`)
}

// lineOnlyRegexp matches lines that consist only of a single-line
// comment, including the trailing newline.
func lineOnlyRegexp(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(marker) + `.*$\n?`)
}

// lineInlineRegexp matches a trailing single-line comment.
func lineInlineRegexp(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)` + regexp.QuoteMeta(marker) + `.*$`)
}

// stripImports drops declaration lines whose content starts with the
// extension's import marker. When every line carries an N| numbering
// prefix the comparison uses the text after the prefix.
func stripImports(content, simpleExt string) string {
	marker, ok := importMarkers[simpleExt]
	if !ok {
		return content
	}

	lines, trailing := splitLines(content)
	prefixed := allPrefixed(lines)

	kept := lines[:0]
	for _, line := range lines {
		if !strings.HasPrefix(lineContent(line, prefixed), marker) {
			kept = append(kept, line)
		}
	}
	return joinLines(kept, trailing)
}

// allPrefixed reports whether every line carries a line-number prefix.
func allPrefixed(lines []string) bool {
	for _, line := range lines {
		if !strings.Contains(line, "|") {
			return false
		}
	}
	return len(lines) > 0
}

// lineContent returns the trimmed content of a line, excluding any
// line-number prefix.
func lineContent(line string, prefixed bool) string {
	if prefixed {
		if _, rest, ok := strings.Cut(line, "|"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return strings.TrimSpace(line)
}
