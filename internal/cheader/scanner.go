//go:build cgo

package cheader

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// Scanner parses C headers with tree-sitter. It is not safe for concurrent use.
type Scanner struct {
	parser *sitter.Parser
}

// NewScanner creates a scanner using the C grammar.
func NewScanner() *Scanner {
	p := sitter.NewParser()
	p.SetLanguage(c.GetLanguage())
	return &Scanner{parser: p}
}

// IsAvailable returns whether header scanning is available.
func IsAvailable() bool {
	return true
}

// Scan parses source and returns its enums and macros.
func (s *Scanner) Scan(ctx context.Context, source []byte) (*Header, error) {
	tree, err := s.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	root := tree.RootNode()

	w := &walker{
		source:    source,
		constants: make(map[string]int64),
		header:    &Header{Partial: root.HasError()},
	}
	w.walk(root)
	return w.header, nil
}

type walker struct {
	source []byte
	// constants holds every enumerator with a known value seen so far;
	// C scopes enumerators file-wide, so later enums may refer to them.
	constants map[string]int64
	header    *Header
}

func (w *walker) text(n *sitter.Node) string {
	return n.Content(w.source)
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func (w *walker) walk(n *sitter.Node) {
	switch n.Type() {
	case "type_definition":
		spec := n.ChildByFieldName("type")
		if spec != nil && spec.Type() == "enum_specifier" && spec.ChildByFieldName("body") != nil {
			name := ""
			if decl := n.ChildByFieldName("declarator"); decl != nil {
				name = w.text(decl)
			}
			w.enum(spec, name, true)
			return
		}
	case "enum_specifier":
		if n.ChildByFieldName("body") != nil {
			w.enum(n, "", false)
			return
		}
	case "preproc_def", "preproc_function_def":
		if name := n.ChildByFieldName("name"); name != nil {
			w.header.Macros = append(w.header.Macros, Macro{
				Name:     w.text(name),
				Function: n.Type() == "preproc_function_def",
				Line:     line(n),
			})
		}
		return
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil {
			w.walk(child)
		}
	}
}

func (w *walker) enum(spec *sitter.Node, typedefName string, typedef bool) {
	e := Enum{Typedef: typedef, Line: line(spec)}
	if tag := spec.ChildByFieldName("name"); tag != nil {
		e.Tag = w.text(tag)
	}
	e.Name = typedefName
	if e.Name == "" {
		e.Name = e.Tag
	}

	body := spec.ChildByFieldName("body")
	next, known := int64(0), true
	for i := 0; i < int(body.NamedChildCount()); i++ {
		item := body.NamedChild(i)
		if item == nil || item.Type() != "enumerator" {
			continue
		}
		nameNode := item.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}

		en := Enumerator{Name: w.text(nameNode), Line: line(item)}
		if valueNode := item.ChildByFieldName("value"); valueNode != nil {
			en.Expr = w.text(valueNode)
			next, known = w.eval(valueNode)
		}
		en.Value, en.Known = next, known
		if known {
			w.constants[en.Name] = next
		}
		e.Enumerators = append(e.Enumerators, en)
		next++
	}

	w.header.Enums = append(w.header.Enums, e)
}

// eval computes an integer constant expression. The second result is false
// for anything it cannot evaluate (casts, sizeof, unknown identifiers).
func (w *walker) eval(n *sitter.Node) (int64, bool) {
	switch n.Type() {
	case "number_literal":
		return parseNumber(w.text(n))
	case "identifier":
		v, ok := w.constants[w.text(n)]
		return v, ok
	case "parenthesized_expression":
		if n.NamedChildCount() != 1 {
			return 0, false
		}
		return w.eval(n.NamedChild(0))
	case "unary_expression":
		op := n.ChildByFieldName("operator")
		arg := n.ChildByFieldName("argument")
		if op == nil || arg == nil {
			return 0, false
		}
		v, ok := w.eval(arg)
		if !ok {
			return 0, false
		}
		switch op.Type() {
		case "-":
			return -v, true
		case "+":
			return v, true
		case "~":
			return ^v, true
		}
	case "binary_expression":
		op := n.ChildByFieldName("operator")
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if op == nil || left == nil || right == nil {
			return 0, false
		}
		l, lok := w.eval(left)
		r, rok := w.eval(right)
		if !lok || !rok {
			return 0, false
		}
		switch op.Type() {
		case "<<":
			if r < 0 || r > 63 {
				return 0, false
			}
			return l << uint(r), true
		case ">>":
			if r < 0 || r > 63 {
				return 0, false
			}
			return l >> uint(r), true
		case "|":
			return l | r, true
		case "&":
			return l & r, true
		case "+":
			return l + r, true
		case "-":
			return l - r, true
		}
	}
	return 0, false
}

// parseNumber parses a C integer literal, ignoring u/l suffixes.
func parseNumber(lit string) (int64, bool) {
	lit = strings.TrimRight(lit, "uUlL")
	if v, err := strconv.ParseInt(lit, 0, 64); err == nil {
		return v, true
	}
	if v, err := strconv.ParseUint(lit, 0, 64); err == nil {
		return int64(v), true
	}
	return 0, false
}
