// Package testutil provides testing utilities for golden tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Fixture is a header fixture and its golden file inside a package's testdata/.
type Fixture struct {
	// Name is the fixture's base name without extension (e.g. "nm-sample")
	Name string

	// InputPath is testdata/<name>.h
	InputPath string

	// ExpectedPath is testdata/<name>.expected.h
	ExpectedPath string
}

// LoadFixture locates a header fixture, failing the test if its input is missing.
// Tests run with the package directory as working directory, so paths are relative.
func LoadFixture(t *testing.T, name string) *Fixture {
	t.Helper()

	input := filepath.Join("testdata", name+".h")
	if _, err := os.Stat(input); os.IsNotExist(err) {
		t.Fatalf("Fixture not found: %s", input)
	}

	return &Fixture{
		Name:         name,
		InputPath:    input,
		ExpectedPath: filepath.Join("testdata", name+".expected.h"),
	}
}

// Input returns the fixture's header text with line endings normalized.
func (f *Fixture) Input(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(f.InputPath)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	return NormalizeNewlines(string(data))
}

// NormalizeNewlines converts CRLF line endings to LF so fixtures checked out
// on Windows compare equal.
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
