package competition

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("competition not found")
	// ErrConflict means the stored document changed between read and write.
	ErrConflict = errors.New("competition changed concurrently")
)

// MutateFunc receives the current document and returns its replacement.
type MutateFunc func(current Competition) (Competition, error)

// Repository stores competition documents.
//
// Update is the only write path for match logs and derived state. It reads
// the current document, applies fn, and stores the result with Version+1 only
// if the stored version is still the one read; otherwise it returns
// ErrConflict. An error from fn aborts without writing.
type Repository interface {
	List(ctx context.Context) ([]Competition, error)
	GetByID(ctx context.Context, id string) (Competition, bool, error)
	Create(ctx context.Context, item Competition) error
	Update(ctx context.Context, id string, fn MutateFunc) (Competition, error)
}
