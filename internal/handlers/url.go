package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shorturl/internal/events"
	"github.com/serroba/shorturl/internal/messaging"
	"github.com/serroba/shorturl/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler exposes the shortening service over HTTP.
type URLHandler struct {
	service         *shortener.Service
	baseURL         string
	publishCreated  messaging.Publish[events.URLCreated]
	publishResolved messaging.Publish[events.URLResolved]
	logger          *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service,
	baseURL string,
	publishCreated messaging.Publish[events.URLCreated],
	publishResolved messaging.Publish[events.URLResolved],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:         service,
		baseURL:         baseURL,
		publishCreated:  publishCreated,
		publishResolved: publishResolved,
		logger:          logger,
	}
}

// Shorten handles POST /shorten: 201 on success, 400 for invalid URLs,
// 409 when the URL already has a code.
func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	short, err := h.service.Shorten(ctx, req.Body.URL)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidURL) {
			return nil, huma.Error400BadRequest(err.Error())
		}

		var already *shortener.AlreadyShortenedError
		if errors.As(err, &already) {
			return nil, huma.Error409Conflict(already.Error())
		}

		h.logger.Error("shorten failed",
			zap.String("url", req.Body.URL),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to shorten url")
	}

	meta := RequestMetaFromContext(ctx)

	if err := h.publishCreated(&events.URLCreated{
		ID:          short.ID,
		Code:        string(short.Code),
		OriginalURL: short.OriginalURL,
		CreatedAt:   short.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}); err != nil {
		h.logger.Error("failed to publish url created event",
			zap.String("code", string(short.Code)),
			zap.Error(err),
		)
	}

	fullShortURL := fmt.Sprintf("%s/%s", h.baseURL, short.Code)

	resp := &ShortenResponse{}
	resp.Headers.Location = fullShortURL
	resp.Body.Code = string(short.Code)
	resp.Body.ShortURL = fullShortURL
	resp.Body.OriginalURL = short.OriginalURL

	return resp, nil
}

// Redirect handles GET /{code}: 302 to the original URL, 404 for unknown
// codes. Each successful redirect bumps the hit counter by one.
func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	short, err := h.service.Resolve(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("resolve failed",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve url")
	}

	meta := RequestMetaFromContext(ctx)

	if err := h.publishResolved(&events.URLResolved{
		Code:        string(short.Code),
		OriginalURL: short.OriginalURL,
		Hits:        short.Hits,
		ResolvedAt:  time.Now().UTC(),
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
		Referrer:    meta.Referrer,
	}); err != nil {
		h.logger.Error("failed to publish url resolved event",
			zap.String("code", string(short.Code)),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = short.OriginalURL

	return resp, nil
}
