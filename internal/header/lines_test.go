package header

import "testing"

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{""}},
		{"single", "abc", []string{"abc"}},
		{"trailing newline", "a\nb\n", []string{"a", "b", ""}},
		{"empty lines kept", "a\n\n\nb", []string{"a", "", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, l := range got {
				if l.Text != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, l.Text, tt.want[i])
				}
				if l.Index != i {
					t.Errorf("line %d has Index %d", i, l.Index)
				}
			}
			if joined := JoinLines(got); joined != tt.in {
				t.Errorf("JoinLines(SplitLines(x)) = %q, want %q", joined, tt.in)
			}
		})
	}
}

func TestCursor(t *testing.T) {
	c := &cursor{lines: SplitLines("a\nb")}

	if l, ok := c.peek(); !ok || l.Text != "a" {
		t.Fatalf("peek = %q, %v", l.Text, ok)
	}
	if l, ok := c.next(); !ok || l.Text != "a" {
		t.Fatalf("next = %q, %v", l.Text, ok)
	}
	if l, ok := c.next(); !ok || l.Text != "b" {
		t.Fatalf("next = %q, %v", l.Text, ok)
	}
	if _, ok := c.peek(); ok {
		t.Error("peek past end should report false")
	}
	if _, ok := c.next(); ok {
		t.Error("next past end should report false")
	}
}
