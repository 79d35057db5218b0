// Package resource defines the lifecycle contract between the host and the
// lexical resources it manages, and the Host that drives it.
package resource

import (
	"context"
)

// Resource is a lexical resource managed by the Host.
//
// Initialize acquires the underlying handle using params. Calling it again
// without Close replaces the handle: the new one is acquired first and the
// old one is released only once that succeeded. Close releases the handle
// and is a no-op when nothing is held.
type Resource interface {
	Name() string
	Initialize(ctx context.Context, params Params) error
	Close() error
}

// Sizer is implemented by resources that can report how many entries they
// hold.
type Sizer interface {
	Len() int
}

// Sourced is implemented by resources loaded from files, so the host can
// tell when they changed on disk.
type Sourced interface {
	Sources() []string
}
