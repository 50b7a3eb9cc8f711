// Package cheader lists the enums and macros a C header declares.
//
// It is a preview aid: the binding generator does the real translation,
// the scanner only shows which enumerators exist and what they evaluate to
// so renames can be checked before a build.
package cheader

import "errors"

// ErrNoCGO is returned when header scanning is unavailable due to missing CGO.
var ErrNoCGO = errors.New("header scanning requires CGO (tree-sitter)")

// Enumerator is one constant of an enum.
type Enumerator struct {
	Name string `json:"name" yaml:"name"`
	// Value is meaningful only when Known is set.
	Value int64 `json:"value" yaml:"value"`
	Known bool  `json:"known" yaml:"known"`
	// Expr is the initializer as written, empty for implicit values.
	Expr string `json:"expr,omitempty" yaml:"expr,omitempty"`
	Line int    `json:"line" yaml:"line"`
}

// Enum is an enum definition with a body.
type Enum struct {
	// Name is the typedef name when there is one, else the tag. Anonymous
	// enums have an empty name.
	Name        string       `json:"name" yaml:"name"`
	Tag         string       `json:"tag,omitempty" yaml:"tag,omitempty"`
	Typedef     bool         `json:"typedef" yaml:"typedef"`
	Line        int          `json:"line" yaml:"line"`
	Enumerators []Enumerator `json:"enumerators" yaml:"enumerators"`
}

// Macro is an object-like or function-like #define.
type Macro struct {
	Name     string `json:"name" yaml:"name"`
	Function bool   `json:"function,omitempty" yaml:"function,omitempty"`
	Line     int    `json:"line" yaml:"line"`
}

// Header is the scan result, in source order.
type Header struct {
	Enums  []Enum  `json:"enums" yaml:"enums"`
	Macros []Macro `json:"macros" yaml:"macros"`
	// Partial is set when the parser had to recover from syntax errors.
	Partial bool `json:"partial,omitempty" yaml:"partial,omitempty"`
}

// Enum returns the enum with the given name.
func (h *Header) Enum(name string) (*Enum, bool) {
	for i := range h.Enums {
		if h.Enums[i].Name == name {
			return &h.Enums[i], true
		}
	}
	return nil, false
}
