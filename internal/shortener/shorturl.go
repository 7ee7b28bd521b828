package shortener

import "time"

// Code represents a short URL code.
type Code string

// ShortURL is the stored mapping between a short code and its original URL.
// Once added, the record is owned by the repository; callers receive copies
// and mutate hits only through Repository.IncrementHits.
type ShortURL struct {
	ID          int64
	Code        Code
	OriginalURL string // normalized form
	Hits        int64
	CreatedAt   time.Time
}
