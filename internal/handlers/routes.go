package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers the URL shortener routes.
func RegisterRoutes(api huma.API, urlHandler *URLHandler, healthHandler *HealthHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "shorten-url",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Shorten a URL",
		Description:   "Creates a short code for the given URL. A URL that already has a code is rejected with 409.",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
	}, urlHandler.Shorten)

	huma.Register(api, huma.Operation{
		OperationID: "redirect-url",
		Method:      http.MethodGet,
		Path:        "/{code}",
		Summary:     "Redirect to the original URL",
		Description: "Redirects to the original URL for the short code and counts the hit.",
		Tags:        []string{"URLs"},
	}, urlHandler.Redirect)

	huma.Get(api, "/health", healthHandler.Check)
}
