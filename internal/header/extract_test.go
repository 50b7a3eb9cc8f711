package header

import (
	"strings"
	"testing"

	"nmprep/internal/errors"
)

func extract(t *testing.T, text string) ([]Block, []Line) {
	t.Helper()
	ex := &Extractor{}
	blocks, residual, err := ex.Extract(SplitLines(text))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return blocks, residual
}

func TestExtract_NoMarkers(t *testing.T) {
	text := "/**\n * NMFoo:\n * plain comment\n */\ntypedef enum { NM_FOO_A } NMFoo;\n"
	blocks, residual := extract(t, text)

	if len(blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(blocks))
	}
	if got := JoinLines(residual); got != text {
		t.Errorf("residual = %q, want input unchanged", got)
	}
}

func TestExtract_Blocks(t *testing.T) {
	text := strings.Join([]string{
		"/**",
		" * NMFoo:",
		" * @NM_FOO_A: first value",
		" *   continues here",
		" * @NM_FOO_B: second value",
		" *",
		" * Trailing description.",
		" */",
	}, "\n")

	blocks, residual := extract(t, text)

	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].Target != "NM_FOO_A" || blocks[0].Body != " first value\n *   continues here" {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	if blocks[0].Line != 2 {
		t.Errorf("block 0 Line = %d, want 2", blocks[0].Line)
	}
	if blocks[1].Target != "NM_FOO_B" || blocks[1].Body != " second value" {
		t.Errorf("block 1 = %+v", blocks[1])
	}

	want := []string{"/**", " * NMFoo:", " *", " * Trailing description.", " */"}
	if len(residual) != len(want) {
		t.Fatalf("residual = %d lines, want %d", len(residual), len(want))
	}
	for i, l := range residual {
		if l.Text != want[i] {
			t.Errorf("residual[%d] = %q, want %q", i, l.Text, want[i])
		}
	}
}

func TestExtract_Terminators(t *testing.T) {
	for _, term := range []string{" *", " */", " **/", "*", "\t**/"} {
		t.Run(term, func(t *testing.T) {
			text := " * @NM_X_A: doc\n" + term + "\nafter"
			blocks, residual := extract(t, text)
			if len(blocks) != 1 || blocks[0].Body != " doc" {
				t.Fatalf("blocks = %+v", blocks)
			}
			if len(residual) != 2 || residual[0].Text != term {
				t.Errorf("terminator should stay residual, got %+v", residual)
			}
		})
	}
}

func TestExtract_CountMatchesMarkers(t *testing.T) {
	text := strings.Join([]string{
		" * @NM_A_ONE: one",
		" * @NM_A_TWO: two",
		" * more two",
		" * @NM_A_THREE: three",
		" */",
		"x",
		" * @NM_B_ONE: b",
		" */",
	}, "\n")

	blocks, _ := extract(t, text)

	markers := strings.Count(text, MarkerFor(DefaultNamespace))
	if len(blocks) != markers {
		t.Errorf("got %d blocks, want %d", len(blocks), markers)
	}
}

func TestExtract_CustomMarker(t *testing.T) {
	ex := &Extractor{Marker: MarkerFor("GDK")}
	blocks, residual, err := ex.Extract(SplitLines(" * @GDK_KEY_A: key\n */\n * @NM_X: ignored\n */"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(blocks) != 1 || blocks[0].Target != "GDK_KEY_A" {
		t.Errorf("blocks = %+v", blocks)
	}
	if len(residual) != 3 {
		t.Errorf("residual = %d lines, want 3", len(residual))
	}
}

func TestExtract_Unterminated(t *testing.T) {
	text := "head\n * @NM_FOO_A: dangling\n * still going"

	ex := &Extractor{}
	_, _, err := ex.Extract(SplitLines(text))
	if !errors.Is(err, errors.UnterminatedBlock) {
		t.Fatalf("err = %v, want UNTERMINATED_BLOCK", err)
	}

	lenient := &Extractor{DiscardUnterminated: true}
	blocks, residual, err := lenient.Extract(SplitLines(text))
	if err != nil {
		t.Fatalf("lenient Extract() error = %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("unterminated block should be discarded, got %+v", blocks)
	}
	if len(residual) != 1 || residual[0].Text != "head" {
		t.Errorf("residual = %+v", residual)
	}
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing colon", " * @NM_FOO_A has no colon\n */"},
		{"missing colon across lines", " * @NM_FOO_A no colon\n *   nor here\n */"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &Extractor{}
			_, _, err := ex.Extract(SplitLines(tt.text))
			if !errors.Is(err, errors.MalformedBlock) {
				t.Fatalf("err = %v, want MALFORMED_BLOCK", err)
			}
		})
	}
}

func TestParseBlock(t *testing.T) {
	b, err := parseBlock(" * @NM_FOO_BAR: does: the thing.", 4)
	if err != nil {
		t.Fatalf("parseBlock() error = %v", err)
	}
	if b.Target != "NM_FOO_BAR" {
		t.Errorf("Target = %q", b.Target)
	}
	if b.Body != " does: the thing." {
		t.Errorf("Body = %q, colon split should happen at the first colon", b.Body)
	}

	for _, text := range []string{" * NM_FOO_BAR: no at sign", " * @ : empty name"} {
		if _, err := parseBlock(text, 0); !errors.Is(err, errors.MalformedBlock) {
			t.Errorf("parseBlock(%q) err = %v, want MALFORMED_BLOCK", text, err)
		}
	}
}
