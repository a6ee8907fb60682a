// Package store persists surveys, responses, drafts and share grants.
// It performs no authorization; callers gate access through the resolver.
package store

import (
	"fmt"

	"formlink/errs"
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, errs.ErrUnavailable, err)
}

func notFound(op string, id any) error {
	return fmt.Errorf("%s (%v): %w", op, id, errs.ErrNotFound)
}
