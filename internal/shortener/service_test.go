package shortener_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/serroba/shorturl/internal/shortener"
	"github.com/serroba/shorturl/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator replays a fixed list of codes, then repeats the last one.
type scriptedGenerator struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func (g *scriptedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.next < len(g.codes)-1 {
		g.next++

		return g.codes[g.next-1]
	}

	return g.codes[len(g.codes)-1]
}

func newTestService(t *testing.T) *shortener.Service {
	t.Helper()

	gen, err := shortener.NewRandomGenerator(6)
	require.NoError(t, err)

	return shortener.NewService(store.NewMemoryStore(), gen)
}

func TestService_Shorten(t *testing.T) {
	t.Run("creates an entity with zero hits", func(t *testing.T) {
		svc := newTestService(t)

		short, err := svc.Shorten(context.Background(), "https://example.com/very/long/path")

		require.NoError(t, err)
		assert.Equal(t, int64(0), short.Hits)
		assert.Len(t, short.Code, 6)
		assert.Equal(t, "https://example.com/very/long/path", short.OriginalURL)
		assert.Positive(t, short.ID)
	})

	t.Run("stores the normalized url", func(t *testing.T) {
		svc := newTestService(t)

		short, err := svc.Shorten(context.Background(), "HTTPS://Example.com/Path")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/Path", short.OriginalURL)
	})

	t.Run("allocates increasing ids across urls", func(t *testing.T) {
		svc := newTestService(t)

		first, err := svc.Shorten(context.Background(), "https://example.com/a")
		require.NoError(t, err)

		second, err := svc.Shorten(context.Background(), "https://example.com/b")
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("rejects invalid urls", func(t *testing.T) {
		svc := newTestService(t)

		for _, raw := range []string{"", "example.com", "ftp://example.com", "https://"} {
			_, err := svc.Shorten(context.Background(), raw)

			assert.ErrorIs(t, err, shortener.ErrInvalidURL, "input %q", raw)
		}
	})

	t.Run("rejects an already shortened url with its existing code", func(t *testing.T) {
		svc := newTestService(t)

		first, err := svc.Shorten(context.Background(), "https://example.com/dup")
		require.NoError(t, err)

		_, err = svc.Shorten(context.Background(), "https://example.com/dup")

		var already *shortener.AlreadyShortenedError
		require.ErrorAs(t, err, &already)
		assert.Equal(t, first.Code, already.Code)
	})

	t.Run("treats case-equivalent urls as duplicates", func(t *testing.T) {
		svc := newTestService(t)

		first, err := svc.Shorten(context.Background(), "https://Example.com/Path")
		require.NoError(t, err)

		_, err = svc.Shorten(context.Background(), "HTTPS://example.COM/Path")

		var already *shortener.AlreadyShortenedError
		require.ErrorAs(t, err, &already)
		assert.Equal(t, first.Code, already.Code)
	})

	t.Run("regenerates on code collision", func(t *testing.T) {
		repo := store.NewMemoryStore()
		gen := &scriptedGenerator{codes: []string{"taken1", "taken1", "fresh2"}}
		svc := shortener.NewService(repo, gen)

		require.NoError(t, repo.Add(context.Background(), &shortener.ShortURL{
			ID: 1, Code: "taken1", OriginalURL: "https://example.com/existing",
		}))

		short, err := svc.Shorten(context.Background(), "https://example.com/new")

		require.NoError(t, err)
		assert.Equal(t, shortener.Code("fresh2"), short.Code)
	})

	t.Run("gives up when the code space is exhausted", func(t *testing.T) {
		repo := store.NewMemoryStore()
		gen := &scriptedGenerator{codes: []string{"onlyone"}}
		svc := shortener.NewService(repo, gen)

		require.NoError(t, repo.Add(context.Background(), &shortener.ShortURL{
			ID: 1, Code: "onlyone", OriginalURL: "https://example.com/existing",
		}))

		_, err := svc.Shorten(context.Background(), "https://example.com/new")

		assert.ErrorIs(t, err, shortener.ErrCodeSpaceExhausted)
	})
}

func TestService_Resolve(t *testing.T) {
	t.Run("fails with ErrNotFound for an unknown code", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Resolve(context.Background(), "missing")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("increments hits by one per resolution", func(t *testing.T) {
		svc := newTestService(t)

		short, err := svc.Shorten(context.Background(), "https://example.com/counted")
		require.NoError(t, err)

		for i := int64(1); i <= 5; i++ {
			resolved, err := svc.Resolve(context.Background(), short.Code)

			require.NoError(t, err)
			assert.Equal(t, i, resolved.Hits)
			assert.Equal(t, short.OriginalURL, resolved.OriginalURL)
		}
	})
}

// The end-to-end scenario: shorten, resolve once, shorten again.
func TestService_ShortenResolveRoundtrip(t *testing.T) {
	svc := newTestService(t)

	short, err := svc.Shorten(context.Background(), "https://Example.com/Path")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/Path", short.OriginalURL)
	assert.Equal(t, int64(0), short.Hits)

	resolved, err := svc.Resolve(context.Background(), short.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resolved.Hits)

	_, err = svc.Shorten(context.Background(), "https://example.com/Path")

	var already *shortener.AlreadyShortenedError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, short.Code, already.Code)
}

func TestService_ConcurrentShorten(t *testing.T) {
	svc := newTestService(t)

	const workers = 50

	var (
		wg        sync.WaitGroup
		successes = make(chan *shortener.ShortURL, workers)
		conflicts = make(chan error, workers)
	)

	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			short, err := svc.Shorten(context.Background(), "https://example.com/contended")
			if err != nil {
				conflicts <- err

				return
			}

			successes <- short
		}()
	}

	wg.Wait()
	close(successes)
	close(conflicts)

	assert.Len(t, successes, 1)
	assert.Len(t, conflicts, workers-1)

	for err := range conflicts {
		var already *shortener.AlreadyShortenedError

		assert.True(t, errors.As(err, &already))
	}
}

func TestService_ConcurrentResolve(t *testing.T) {
	svc := newTestService(t)

	short, err := svc.Shorten(context.Background(), "https://example.com/hot")
	require.NoError(t, err)

	const resolutions = 100

	var wg sync.WaitGroup

	wg.Add(resolutions)

	for i := 0; i < resolutions; i++ {
		go func() {
			defer wg.Done()

			_, err := svc.Resolve(context.Background(), short.Code)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	final, err := svc.Resolve(context.Background(), short.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(resolutions+1), final.Hits)
}
