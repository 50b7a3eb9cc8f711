//go:build !cgo

package cheader

import "context"

// Scanner is a stub for non-CGO builds.
type Scanner struct{}

// NewScanner returns nil when CGO is disabled.
func NewScanner() *Scanner {
	return nil
}

// Scan always fails with ErrNoCGO.
func (s *Scanner) Scan(ctx context.Context, source []byte) (*Header, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
