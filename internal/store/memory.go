package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/serroba/shorturl/internal/shortener"
)

// MemoryStore is the in-memory implementation of shortener.Repository. One
// instance is constructed at startup and shared process-wide; tests build
// their own for isolation.
//
// A single mutex guards both indices and the ID counter so that the
// uniqueness check inside Add and the hit-counter update are atomic with
// respect to every other operation.
type MemoryStore struct {
	mu         sync.Mutex
	byCode     map[shortener.Code]*shortener.ShortURL
	byOriginal map[string]*shortener.ShortURL
	lastID     int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode:     make(map[shortener.Code]*shortener.ShortURL),
		byOriginal: make(map[string]*shortener.ShortURL),
	}
}

func (m *MemoryStore) NextID(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++

	return m.lastID, nil
}

func (m *MemoryStore) Add(_ context.Context, short *shortener.ShortURL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.byOriginal[short.OriginalURL]; ok && existing.Code != short.Code {
		return &shortener.DuplicateError{Existing: clone(existing)}
	}

	if existing, ok := m.byCode[short.Code]; ok && existing.OriginalURL != short.OriginalURL {
		return fmt.Errorf("short code %q is already in use", short.Code)
	}

	// The store owns its records: keep a private copy so later mutations of
	// the caller's value cannot bypass the lock.
	record := clone(short)
	m.byCode[record.Code] = record
	m.byOriginal[record.OriginalURL] = record

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	short, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return clone(short), nil
}

func (m *MemoryStore) GetByOriginal(_ context.Context, original string) (*shortener.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	short, ok := m.byOriginal[original]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return clone(short), nil
}

func (m *MemoryStore) IncrementHits(_ context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	short, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	short.Hits++

	return clone(short), nil
}

func clone(short *shortener.ShortURL) *shortener.ShortURL {
	copied := *short

	return &copied
}
