// Package assemble packs normalized files into one or more output
// documents, enforcing a soft token budget per document. A file's
// rendering is never split: the budget is checked only after a whole
// file has been appended.
package assemble

import (
	"fmt"
	"os"
	"strings"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/normalize"
	"github.com/promptpack/promptpack/pkg/observability"
)

// separator divides file blocks within one output part.
const separator = "\n\n\n--------------------------------------------------------------------------------\n\n\n\n"

// Part is one sealed output document.
type Part struct {
	Index  int
	Name   string
	Tokens int
}

// Assembler accumulates rendered blocks into the active part and seals
// it whenever the running token total exceeds the budget.
type Assembler struct {
	base   string
	budget int
	log    observability.Logger

	buf    strings.Builder
	tokens int
	index  int
	sealed []Part
}

// New creates an Assembler writing parts named after base. A budget of
// 0 means unbounded: everything lands in a single part.
func New(base string, budget int, log observability.Logger) *Assembler {
	return &Assembler{base: base, budget: budget, log: log, index: 1}
}

// Add appends a normalized file to the active part. When a budget is
// configured and the running total now exceeds it, the part is sealed
// and a fresh one started.
func (a *Assembler) Add(file *normalize.File) error {
	if a.buf.Len() > 0 {
		a.buf.WriteString(separator)
	}
	a.buf.WriteString(file.Render())
	a.tokens += file.Tokens

	if a.budget > 0 && a.tokens > a.budget {
		return a.seal(false)
	}
	return nil
}

// Close seals the trailing part if it is non-empty and returns all
// sealed parts in order.
func (a *Assembler) Close() ([]Part, error) {
	if a.buf.Len() > 0 {
		if err := a.seal(true); err != nil {
			return nil, err
		}
	}
	return a.sealed, nil
}

// seal writes the active buffer to disk and resets the accumulator.
// Mid-stream parts always carry a part suffix; a final part drops the
// suffix when it is the only one.
func (a *Assembler) seal(final bool) error {
	name := fmt.Sprintf("%s_part%d.md", a.base, a.index)
	if final && a.index == 1 {
		name = a.base + ".md"
	}

	if err := os.WriteFile(name, []byte(a.buf.String()), 0o644); err != nil {
		return errors.OutputError(fmt.Sprintf("writing %s", name), err)
	}

	a.log.Info("sealed output part",
		observability.String("name", name),
		observability.Int("tokens", a.tokens))

	a.sealed = append(a.sealed, Part{Index: a.index, Name: name, Tokens: a.tokens})
	a.index++
	a.buf.Reset()
	a.tokens = 0
	return nil
}
