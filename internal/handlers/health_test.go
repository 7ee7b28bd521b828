package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/shorturl/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Check(t *testing.T) {
	t.Run("reports ok with no dependencies", func(t *testing.T) {
		handler := handlers.NewHealthHandler(nil)

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Empty(t, resp.Body.Dependencies)
	})

	t.Run("reports healthy dependencies", func(t *testing.T) {
		handler := handlers.NewHealthHandler(map[string]handlers.Checker{
			"redis": handlers.CheckerFunc(func(context.Context) error { return nil }),
		})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Dependencies["redis"])
	})

	t.Run("degrades when a dependency fails", func(t *testing.T) {
		handler := handlers.NewHealthHandler(map[string]handlers.Checker{
			"redis":    handlers.CheckerFunc(func(context.Context) error { return errors.New("down") }),
			"postgres": handlers.CheckerFunc(func(context.Context) error { return nil }),
		})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Dependencies["redis"])
		assert.Equal(t, "healthy", resp.Body.Dependencies["postgres"])
	})
}
