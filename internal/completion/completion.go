// Package completion defines the boundary to the opaque text-completion
// backend used for generated answers.
package completion

import "fmt"

// BackendError wraps any completion backend failure (transport error,
// error status, malformed output) so callers can recognize it without
// depending on the backend implementation.
type BackendError struct {
	Status string
	Err    error
}

func (e *BackendError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("completion backend: %s", e.Status)
	}
	return fmt.Sprintf("completion backend: %v", e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }
