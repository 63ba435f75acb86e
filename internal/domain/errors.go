package domain

import (
	"fmt"
	"strings"
)

// ValidationError reports missing required report metadata. It is
// request-fatal: retrying the same request would fail the same way.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid report request: missing required fields: %s",
		strings.Join(e.Missing, ", "))
}

// RendererError reports that the map rendering backend was unavailable,
// failed, or timed out. The Geo Renderer never degrades this to a
// placeholder itself; the composer decides whether to isolate it to a
// section or fail the request.
type RendererError struct {
	Backend string
	Err     error
}

func (e *RendererError) Error() string {
	return fmt.Sprintf("map renderer %s unavailable: %v", e.Backend, e.Err)
}

func (e *RendererError) Unwrap() error { return e.Err }
