package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a short code has no stored mapping.
	ErrNotFound = errors.New("short url not found")

	// ErrInvalidURL is returned (wrapped, with detail) when an input URL
	// fails validation.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidLength is returned when a generator is configured with a
	// non-positive code length. This is a startup error, not a per-request one.
	ErrInvalidLength = errors.New("code length must be at least 1")

	// ErrCodeSpaceExhausted is returned when the service gives up finding an
	// unused code. With a sensible code length this never happens in practice.
	ErrCodeSpaceExhausted = errors.New("could not generate an unused short code")
)

// AlreadyShortenedError is returned when shortening a URL that already has a
// mapping. It carries the existing code so the caller can recover.
type AlreadyShortenedError struct {
	OriginalURL string
	Code        Code
}

func (e *AlreadyShortenedError) Error() string {
	return fmt.Sprintf("url %q has already been shortened with code %q", e.OriginalURL, e.Code)
}

// DuplicateError is returned by Repository.Add when a different entity
// already claims the same original URL. The service translates it into an
// AlreadyShortenedError before it reaches callers.
type DuplicateError struct {
	Existing *ShortURL
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("original url %q is already stored under code %q", e.Existing.OriginalURL, e.Existing.Code)
}
