package zai

import "net/http"

type HeaderOptions struct {
	Origin         string
	FEVersion      string
	UserAgent      string
	AcceptLanguage string
}

// DefaultHeaders builds the header template sent with every upstream
// request. The template is never mutated after construction.
func DefaultHeaders(opts HeaderOptions) http.Header {
	h := http.Header{}
	h.Set("Accept", "*/*")
	h.Set("Accept-Language", opts.AcceptLanguage)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Content-Type", "application/json")
	h.Set("Origin", opts.Origin)
	h.Set("User-Agent", opts.UserAgent)
	h.Set("X-FE-Version", opts.FEVersion)
	return h
}

// withToken returns a per-request copy of template carrying the caller's
// bearer token.
func withToken(template http.Header, token string) http.Header {
	h := template.Clone()
	h.Set("Authorization", "Bearer "+token)
	return h
}
