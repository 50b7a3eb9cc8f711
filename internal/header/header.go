package header

// Options configures Process.
type Options struct {
	// Namespace selects the block-start marker. Defaults to DefaultNamespace.
	Namespace string
	// DiscardUnterminated drops a block left open at end of input instead of failing.
	DiscardUnterminated bool
}

// Result describes a Process run.
type Result struct {
	Lines       int          `json:"lines"`
	Blocks      int          `json:"blocks"`
	Relocations []Relocation `json:"relocations"`
}

// Process extracts every enumerator doc block from text and reinserts it above
// the line that defines the enumerator.
func Process(text string, opts Options) (string, *Result, error) {
	ns := opts.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	lines := SplitLines(text)

	ex := &Extractor{Marker: MarkerFor(ns), DiscardUnterminated: opts.DiscardUnterminated}
	blocks, residual, err := ex.Extract(lines)
	if err != nil {
		return "", nil, err
	}

	out, relocations, err := Relocate(residual, blocks)
	if err != nil {
		return "", nil, err
	}

	return JoinLines(out), &Result{
		Lines:       len(lines),
		Blocks:      len(blocks),
		Relocations: relocations,
	}, nil
}
