// Package source defines the port supplying transaction collections and
// the error type that lets callers tell an empty collection apart from a
// failed fetch.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/PutuPutra/finance-portal/internal/core"
)

// Source supplies a fresh transaction collection. Implementations must
// not retain the returned slice.
type Source interface {
	// Fetch produces the collection. A nil error with an empty slice
	// means the source genuinely has no transactions; fetch failures
	// return a *FetchError.
	Fetch(ctx context.Context) ([]core.Transaction, error)

	// Mode identifies the source for logging and cache keys.
	Mode() string
}

// FetchError describes a failed fetch: network error, non-success HTTP
// status or a malformed payload.
type FetchError struct {
	Op     string // "request", "status", "decode", "read"
	Status int    // HTTP status when Op == "status", otherwise 0
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch transactions: %s: http %d", e.Op, e.Status)
	}
	return fmt.Sprintf("fetch transactions: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError reports whether err is (or wraps) a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
