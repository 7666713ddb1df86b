package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request declaratively describes one platform call. Keeping requests as
// data rather than *http.Request lets the session rebuild an identical
// attempt, body included, when the token-rejection retry fires.
type Request struct {
	// Method is the HTTP method.
	Method string

	// URL is the absolute endpoint URL without query string.
	URL string

	// Query is appended to the URL.
	Query url.Values

	// Form is sent as an application/x-www-form-urlencoded body.
	// Mutually exclusive with JSON.
	Form url.Values

	// JSON is marshaled and sent as an application/json body.
	JSON any
}

// build constructs a fresh *http.Request for one attempt.
func (r *Request) build(ctx context.Context) (*http.Request, error) {
	u := r.URL
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "*/*")
	return req, nil
}

// Response is a fully drained platform response. Adapters probe the body
// for whichever of the platform's shapes (JSON envelope, HTML fragment,
// validity object) this endpoint speaks.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
