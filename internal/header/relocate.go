package header

import (
	"strings"

	"nmprep/internal/errors"
)

// Relocation records where a block was reinserted.
type Relocation struct {
	Target string `json:"target"`
	// From is the 0-based index of the block's marker line in the source.
	From int `json:"from"`
	// Before is the 0-based source index of the line the block now precedes.
	Before int `json:"before"`
}

// isCommentLine reports whether l is part of a comment: its left-trimmed
// text starts with "*" or "/*".
func isCommentLine(l string) bool {
	t := strings.TrimLeft(l, " \t")
	return strings.HasPrefix(t, "*") || strings.HasPrefix(t, "/*")
}

// Render returns the comment inserted for b.
func (b Block) Render() string {
	return "/**\n" + b.Body + "\n**/"
}

// Relocate inserts each block, in order, above the first residual line that
// mentions its target outside a comment. Matching is by substring, so the
// earliest line containing the target wins even if it defines a longer
// identifier.
func Relocate(residual []Line, blocks []Block) ([]Line, []Relocation, error) {
	out := make([]Line, len(residual), len(residual)+len(blocks))
	copy(out, residual)
	relocations := make([]Relocation, 0, len(blocks))

	for _, b := range blocks {
		idx := -1
		for i, l := range out {
			if strings.Contains(l.Text, b.Target) && !isCommentLine(l.Text) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, nil, errors.New(errors.OrphanedBlock,
				"no line outside a comment mentions %s (doc block at line %d)", b.Target, b.Line+1).
				WithDetails(map[string]interface{}{"target": b.Target, "line": b.Line + 1})
		}

		relocations = append(relocations, Relocation{Target: b.Target, From: b.Line, Before: out[idx].Index})

		out = append(out, Line{})
		copy(out[idx+1:], out[idx:])
		out[idx] = Line{Text: b.Render(), Index: -1}
	}

	return out, relocations, nil
}
