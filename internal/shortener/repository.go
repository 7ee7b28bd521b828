package shortener

import "context"

// Repository stores ShortURL entities indexed both by code and by original
// URL, and allocates unique IDs. Implementations must keep all operations
// atomic with respect to each other so that concurrent callers never observe
// a half-applied write.
type Repository interface {
	// NextID allocates a fresh identifier. IDs are unique and monotonically
	// increasing within a process lifetime.
	NextID(ctx context.Context) (int64, error)

	// Add inserts the entity into both indices. Re-adding the same entity
	// overwrites its record. A different entity claiming an already stored
	// original URL fails with *DuplicateError; a code owned by another
	// entity is rejected outright. The uniqueness checks and the insert
	// happen inside one critical section.
	Add(ctx context.Context, short *ShortURL) error

	// GetByCode returns the entity stored under code, or ErrNotFound.
	GetByCode(ctx context.Context, code Code) (*ShortURL, error)

	// GetByOriginal returns the entity stored under the normalized original
	// URL, or ErrNotFound.
	GetByOriginal(ctx context.Context, original string) (*ShortURL, error)

	// IncrementHits atomically adds 1 to the stored entity's hit counter and
	// returns the updated entity, or ErrNotFound.
	IncrementHits(ctx context.Context, code Code) (*ShortURL, error)
}
