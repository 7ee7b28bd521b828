package shortener

import (
	"fmt"
	"net/url"
	"strings"
)

// URL is an immutable value object holding a validated, normalized absolute
// URL. Two URLs constructed from inputs that differ only in scheme or host
// casing compare equal.
type URL struct {
	value string
}

// ParseURL validates and normalizes a raw URL string.
//
// The scheme must be http or https (matched case-insensitively) and a host
// must be present. Scheme and host are lowercased; path, query and fragment
// keep their original casing. Failures wrap ErrInvalidURL.
func ParseURL(raw string) (URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if parsed.Scheme == "" {
		return URL{}, fmt.Errorf("%w: missing scheme in %q", ErrInvalidURL, raw)
	}

	if parsed.Host == "" {
		return URL{}, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return URL{}, fmt.Errorf("%w: unsupported scheme %q, only http and https are allowed", ErrInvalidURL, parsed.Scheme)
	}

	parsed.Scheme = scheme
	parsed.Host = strings.ToLower(parsed.Host)

	return URL{value: parsed.String()}, nil
}

// String returns the normalized form.
func (u URL) String() string {
	return u.value
}
