package handlers

// ShortenRequest is the request body for shortening a URL.
type ShortenRequest struct {
	Body struct {
		URL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"url"`
	}
}

// ShortenResponse is the response for a successfully shortened URL.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Code        string `doc:"The short code"      example:"Xa3f9B"                              json:"code"`
		ShortURL    string `doc:"The full short URL"  example:"http://localhost:8888/Xa3f9B"        json:"shortUrl"`
		OriginalURL string `doc:"The normalized URL"  example:"https://example.com/very/long/path"  json:"originalUrl"`
	}
}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"Xa3f9B" path:"code"`
}

// RedirectResponse redirects the client to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}
