package handlers

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Checker reports whether a backing dependency is reachable.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// RedisChecker adapts a redis.Client to the Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// HealthHandler reports the health of the application and its dependencies.
type HealthHandler struct {
	deps map[string]Checker
}

// NewHealthHandler creates a health handler over the named dependency
// checkers. The in-memory deployment has none and always reports ok.
func NewHealthHandler(deps map[string]Checker) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	Body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies,omitempty"`
	}
}

// Check pings every dependency and degrades the overall status if any fails.
func (h *HealthHandler) Check(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
	resp := &HealthResponse{}
	resp.Body.Status = "ok"

	if len(h.deps) == 0 {
		return resp, nil
	}

	resp.Body.Dependencies = make(map[string]string, len(h.deps))

	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			resp.Body.Dependencies[name] = "unhealthy"
			resp.Body.Status = "degraded"
		} else {
			resp.Body.Dependencies[name] = "healthy"
		}
	}

	return resp, nil
}
