package middleware

import (
	"context"
	"net/http"

	"github.com/jaevor/go-nanoid"
)

const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID tags every request with a short random ID, exposed both on the
// response header and in the request context for log correlation.
func RequestID() func(http.Handler) http.Handler {
	generate, err := nanoid.Standard(16)
	if err != nil {
		// length is a constant within nanoid's accepted range
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = generate()
			}

			w.Header().Set(requestIDHeader, id)

			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext returns the request ID, or "" when the middleware did
// not run.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}

	return ""
}
