// Package buildsignal emits rebuild directives for the calling build system.
//
// The preprocessor runs from a Cargo build script, which reads
// "cargo:rerun-if-changed=PATH" and "cargo:rerun-if-env-changed=KEY" lines
// from stdout to decide when to run it again.
package buildsignal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// DefaultPrefix is prepended to every directive.
const DefaultPrefix = "cargo:"

// Emitter writes rebuild directives, each at most once.
type Emitter struct {
	w      io.Writer
	prefix string

	mu   sync.Mutex
	seen map[string]bool
	err  error
}

// NewEmitter creates an Emitter writing to w. A nil w discards directives.
func NewEmitter(w io.Writer, prefix string) *Emitter {
	if w == nil {
		w = io.Discard
	}
	return &Emitter{w: w, prefix: prefix, seen: make(map[string]bool)}
}

// RerunIfChanged declares that the build depends on the file at path.
func (e *Emitter) RerunIfChanged(path string) {
	e.emit("rerun-if-changed", path)
}

// RerunIfEnvChanged declares that the build depends on environment variable key.
func (e *Emitter) RerunIfEnvChanged(key string) {
	e.emit("rerun-if-env-changed", key)
}

// LookupEnv reads an environment variable and declares the dependency on it.
func (e *Emitter) LookupEnv(key string) (string, bool) {
	e.RerunIfEnvChanged(key)
	return os.LookupEnv(key)
}

// Err returns the first write error, if any.
func (e *Emitter) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Emitter) emit(kind, value string) {
	line := e.prefix + kind + "=" + value

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.seen[line] {
		return
	}
	e.seen[line] = true
	if _, err := fmt.Fprintln(e.w, line); err != nil && e.err == nil {
		e.err = err
	}
}
