package naming

import "strings"

// Normalize strips prefix from variant. It reports false when variant does
// not start with prefix or nothing remains, in which case the generator keeps
// its default name. A result starting with a digit gets escape prepended so
// it stays a valid identifier.
//
//	Normalize("NM_FOO_2_4_GHZ", "NM_FOO_", "NM_") == "NM_2_4_GHZ", true
func Normalize(variant, prefix, escape string) (string, bool) {
	stripped, ok := strings.CutPrefix(variant, prefix)
	if !ok || stripped == "" {
		return "", false
	}
	if c := stripped[0]; '0' <= c && c <= '9' {
		return escape + stripped, true
	}
	return stripped, true
}

// Renamer applies Deriver and Normalize to enum variants.
type Renamer struct {
	deriver *Deriver
	escape  string
}

// NewRenamer creates a Renamer. The escape token defaults to the deriver's
// root followed by '_'.
func NewRenamer(d *Deriver, escape string) *Renamer {
	if escape == "" && d.Root() != "" {
		escape = d.Root() + "_"
	}
	return &Renamer{deriver: d, escape: escape}
}

// Prefix returns the derived prefix for enumName.
func (r *Renamer) Prefix(enumName string) string {
	return r.deriver.Prefix(enumName)
}

// Rename returns the short name for variant of enumName.
func (r *Renamer) Rename(enumName, variant string) (string, bool) {
	return Normalize(variant, r.deriver.Prefix(enumName), r.escape)
}
