package header

import (
	"strings"

	"nmprep/internal/errors"
)

// DefaultNamespace is the identifier namespace of the NetworkManager header.
const DefaultNamespace = "NM"

// MarkerFor returns the block-start marker for enumerators in namespace,
// e.g. "* @NM_".
func MarkerFor(namespace string) string {
	return "* @" + namespace + "_"
}

// Block is an enumerator documentation block cut out of the header.
type Block struct {
	// Target is the identifier the block documents.
	Target string
	// Body is the text after the first colon, verbatim.
	Body string
	// Line is the index of the marker line in the source header.
	Line int
}

// Extractor separates documentation blocks from the rest of the header.
type Extractor struct {
	// Marker identifies the first line of a block. Defaults to MarkerFor(DefaultNamespace).
	Marker string
	// DiscardUnterminated drops a block left open at end of input instead of failing.
	DiscardUnterminated bool
}

// isTerminator reports whether l closes a block: a line holding only
// "*", "*/" or "**/".
func isTerminator(l string) bool {
	switch strings.TrimSpace(l) {
	case "*", "*/", "**/":
		return true
	}
	return false
}

func (e *Extractor) marker() string {
	if e.Marker == "" {
		return MarkerFor(DefaultNamespace)
	}
	return e.Marker
}

// Extract returns the documentation blocks found in lines and the residual
// lines, in order. Terminator lines stay in the residual output.
func (e *Extractor) Extract(lines []Line) ([]Block, []Line, error) {
	marker := e.marker()
	cur := &cursor{lines: lines}

	var blocks []Block
	residual := make([]Line, 0, len(lines))

	for {
		line, ok := cur.next()
		if !ok {
			break
		}
		if !strings.Contains(line.Text, marker) {
			residual = append(residual, line)
			continue
		}

		var sb strings.Builder
		sb.WriteString(line.Text)
		complete := false
		for {
			nextLine, ok := cur.peek()
			if !ok {
				break
			}
			if isTerminator(nextLine.Text) || strings.Contains(nextLine.Text, marker) {
				complete = true
				break
			}
			cur.next()
			sb.WriteByte('\n')
			sb.WriteString(nextLine.Text)
		}

		if !complete {
			if e.DiscardUnterminated {
				break
			}
			return nil, nil, errors.New(errors.UnterminatedBlock,
				"doc block starting at line %d runs to end of input", line.Index+1).
				WithDetails(map[string]interface{}{"line": line.Index + 1})
		}

		block, err := parseBlock(sb.String(), line.Index)
		if err != nil {
			return nil, nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, residual, nil
}

// parseBlock splits "<lead>@<target>:<body>" into a Block.
func parseBlock(text string, lineIdx int) (Block, error) {
	head, body, ok := strings.Cut(text, ":")
	if !ok {
		return Block{}, malformed(lineIdx, "missing ':' after the identifier")
	}
	_, target, ok := strings.Cut(head, "@")
	if !ok {
		return Block{}, malformed(lineIdx, "missing '@' before the identifier")
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return Block{}, malformed(lineIdx, "empty identifier")
	}
	return Block{Target: target, Body: body, Line: lineIdx}, nil
}

func malformed(lineIdx int, reason string) error {
	return errors.New(errors.MalformedBlock, "doc block at line %d: %s", lineIdx+1, reason).
		WithDetails(map[string]interface{}{"line": lineIdx + 1})
}
