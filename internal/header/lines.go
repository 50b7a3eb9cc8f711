// Package header relocates enumerator documentation blocks in a C interface header.
//
// Gtk-Doc style headers describe enumerators in one comment placed above the
// enum body:
//
//	/**
//	 * NMState:
//	 * @NM_STATE_UNKNOWN: networking state is unknown
//	 * @NM_STATE_ASLEEP: networking is not enabled
//	 */
//
// Binding generators only attach comments that sit directly above a
// declaration, so each "@NAME: text" block is cut out of the shared comment
// and reinserted as its own comment above the first line that mentions NAME.
package header

import "strings"

// Line is one line of the source header and its 0-based position in it.
// Lines synthesized during relocation carry Index -1.
type Line struct {
	Text  string
	Index int
}

// SplitLines splits text on '\n', keeping empty lines.
// A trailing newline produces a final empty line so that JoinLines
// reproduces the input exactly.
func SplitLines(text string) []Line {
	parts := strings.Split(text, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Text: p, Index: i}
	}
	return lines
}

// JoinLines joins line texts with '\n'.
func JoinLines(lines []Line) string {
	var sb strings.Builder
	for i, l := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.Text)
	}
	return sb.String()
}

// cursor is a consume/peek view over a line slice.
type cursor struct {
	lines []Line
	pos   int
}

func (c *cursor) peek() (Line, bool) {
	if c.pos >= len(c.lines) {
		return Line{}, false
	}
	return c.lines[c.pos], true
}

func (c *cursor) next() (Line, bool) {
	l, ok := c.peek()
	if ok {
		c.pos++
	}
	return l, ok
}
