// Package tree renders a directory tree, honoring .gitignore rules.
package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/promptpack/promptpack/pkg/errors"
)

// node represents one entry in the rendered tree.
type node struct {
	name     string
	dir      bool
	children []*node
}

// Generate walks root and returns its rendered tree: the root path on
// the first line, then one connector-prefixed line per entry, sorted by
// name at each level. The .git directory and anything matched by a
// .gitignore at the root are excluded unless includeAll is set.
func Generate(root string, includeAll bool) (string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return "", errors.InputError(fmt.Sprintf("input directory %s", root), err)
	}
	if !info.IsDir() {
		return "", errors.InputError(fmt.Sprintf("%s is not a directory", root), nil)
	}

	var matcher *ignore.GitIgnore
	if !includeAll {
		matcher, _ = ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	}

	top, err := build(root, root, matcher, includeAll)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(root)
	b.WriteString("\n")
	writeChildren(&b, top.children, "")
	return b.String(), nil
}

// build reads one directory level and recurses into subdirectories.
func build(root, dir string, matcher *ignore.GitIgnore, includeAll bool) (*node, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.InputError(fmt.Sprintf("reading directory %s", dir), err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

	n := &node{name: filepath.Base(dir), dir: true}
	for _, item := range items {
		path := filepath.Join(dir, item.Name())

		if !includeAll {
			if item.Name() == ".git" {
				continue
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && matcher != nil && matcher.MatchesPath(rel) {
				continue
			}
		}

		if item.IsDir() {
			child, err := build(root, path, matcher, includeAll)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
			continue
		}
		n.children = append(n.children, &node{name: item.Name()})
	}
	return n, nil
}

// writeChildren renders a level of the tree with box-drawing connectors.
func writeChildren(b *strings.Builder, children []*node, prefix string) {
	for i, child := range children {
		last := i == len(children)-1

		connector := "├── "
		if last {
			connector = "└── "
		}

		name := child.name
		if child.dir {
			name += "/"
		}
		b.WriteString(prefix + connector + name + "\n")

		if child.dir {
			childPrefix := prefix + "│   "
			if last {
				childPrefix = prefix + "    "
			}
			writeChildren(b, child.children, childPrefix)
		}
	}
}
