// Package events defines the notification events emitted by the shortening
// service. Consumers treat them as fire-and-forget signals; the hit counter
// itself lives in the repository, not here.
package events

import "time"

const (
	TopicURLCreated  = "url.created"
	TopicURLResolved = "url.resolved"
)

// URLCreated is emitted after a URL has been shortened.
type URLCreated struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	OriginalURL string    `json:"originalUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
}

// URLResolved is emitted after a short code has been resolved.
type URLResolved struct {
	Code        string    `json:"code"`
	OriginalURL string    `json:"originalUrl"`
	Hits        int64     `json:"hits"`
	ResolvedAt  time.Time `json:"resolvedAt"`
	ClientIP    string    `json:"clientIp,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	Referrer    string    `json:"referrer,omitempty"`
}
