package shortener_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/serroba/shorturl/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func TestNewRandomGenerator(t *testing.T) {
	t.Run("rejects zero length", func(t *testing.T) {
		_, err := shortener.NewRandomGenerator(0)

		assert.ErrorIs(t, err, shortener.ErrInvalidLength)
	})

	t.Run("rejects negative length", func(t *testing.T) {
		_, err := shortener.NewRandomGenerator(-3)

		assert.ErrorIs(t, err, shortener.ErrInvalidLength)
	})

	t.Run("accepts length one", func(t *testing.T) {
		gen, err := shortener.NewRandomGenerator(1)

		require.NoError(t, err)
		assert.Len(t, gen.Generate(), 1)
	})
}

func TestRandomGenerator_Generate(t *testing.T) {
	t.Run("produces codes of the configured length", func(t *testing.T) {
		gen, err := shortener.NewRandomGenerator(6)
		require.NoError(t, err)

		for i := 0; i < 100; i++ {
			assert.Len(t, gen.Generate(), 6)
		}
	})

	t.Run("only uses the alphanumeric alphabet", func(t *testing.T) {
		gen, err := shortener.NewRandomGenerator(32)
		require.NoError(t, err)

		for i := 0; i < 50; i++ {
			code := gen.Generate()
			for _, r := range code {
				assert.True(t, strings.ContainsRune(testAlphabet, r), "unexpected character %q in %q", r, code)
			}
		}
	})

	t.Run("practically never repeats at reasonable lengths", func(t *testing.T) {
		gen, err := shortener.NewRandomGenerator(12)
		require.NoError(t, err)

		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			code := gen.Generate()
			_, dup := seen[code]

			assert.False(t, dup, "duplicate code %q", code)
			seen[code] = struct{}{}
		}
	})
}

func TestSequentialGenerator_Generate(t *testing.T) {
	t.Run("emits base62 of an increasing counter", func(t *testing.T) {
		gen := shortener.NewSequentialGenerator()

		assert.Equal(t, "0", gen.Generate())
		assert.Equal(t, "1", gen.Generate())
		assert.Equal(t, "2", gen.Generate())
	})

	t.Run("emits distinct codes under concurrency", func(t *testing.T) {
		gen := shortener.NewSequentialGenerator()

		const workers = 50

		var (
			mu    sync.Mutex
			codes = make(map[string]struct{}, workers)
			wg    sync.WaitGroup
		)

		wg.Add(workers)

		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()

				code := gen.Generate()

				mu.Lock()
				codes[code] = struct{}{}
				mu.Unlock()
			}()
		}

		wg.Wait()

		assert.Len(t, codes, workers)
	})
}
