package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// maxGenerateAttempts bounds the collision-retry loop. With a 62-symbol
// alphabet and the default length of 6 the chance of a single collision is
// tiny; hitting the cap means the code length is far too small for the
// stored volume.
const maxGenerateAttempts = 100

// Service orchestrates URL validation, code generation and storage.
type Service struct {
	repo      Repository
	generator Generator
}

// NewService creates a shortener service on top of a repository and a code
// generation strategy.
func NewService(repo Repository, generator Generator) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
	}
}

// Shorten validates and normalizes raw, then creates and stores a new
// ShortURL with a fresh unique code and hits at zero.
//
// Shortening is deliberately not idempotent: a URL that already has a
// mapping (after normalization) is rejected with *AlreadyShortenedError
// carrying the existing code.
func (s *Service) Shorten(ctx context.Context, raw string) (*ShortURL, error) {
	u, err := ParseURL(raw)
	if err != nil {
		return nil, err
	}

	original := u.String()

	existing, err := s.repo.GetByOriginal(ctx, original)
	if err == nil {
		return nil, &AlreadyShortenedError{OriginalURL: original, Code: existing.Code}
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	short := &ShortURL{
		ID:          id,
		Code:        code,
		OriginalURL: original,
		Hits:        0,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Add(ctx, short); err != nil {
		// A concurrent shorten of the same URL won the insert race.
		var dup *DuplicateError
		if errors.As(err, &dup) {
			return nil, &AlreadyShortenedError{OriginalURL: original, Code: dup.Existing.Code}
		}

		return nil, err
	}

	return short, nil
}

// Resolve looks up the entity for code and bumps its hit counter by one.
// Unknown codes fail with ErrNotFound.
func (s *Service) Resolve(ctx context.Context, code Code) (*ShortURL, error) {
	return s.repo.IncrementHits(ctx, code)
}

// uniqueCode asks the generator for candidates until one is unused.
func (s *Service) uniqueCode(ctx context.Context) (Code, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code := Code(s.generator.Generate())

		_, err := s.repo.GetByCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}

		if err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrCodeSpaceExhausted, maxGenerateAttempts)
}
