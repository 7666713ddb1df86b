// Package transport implements the authenticated request layer: it attaches
// the security cookie and the platform's rotating anti-forgery token to
// every call, absorbs refreshed tokens from every response, and performs
// the single bounded retry the token protocol allows.
package transport

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/treeforge/merchant/pkg/errors"
	"github.com/treeforge/merchant/pkg/logging"
)

const (
	// securityCookie is the transport-level credential cookie.
	securityCookie = ".ROBLOSECURITY"

	// csrfHeader carries the anti-forgery token in both directions.
	csrfHeader = "X-CSRF-TOKEN"

	// tokenRejectedStatus is the status the platform uses for a stale token.
	tokenRejectedStatus = http.StatusForbidden
)

// tokenRejectedPhrases are the two body phrases that, combined with the
// rejection status, identify a stale-token failure. Any other 403 is a
// genuine authorization failure and must not be retried.
var tokenRejectedPhrases = []string{
	"Token Validation Failed",
	"XSRF token invalid",
}

// DefaultTimeout bounds each HTTP attempt.
var DefaultTimeout = 30 * time.Second

// Session owns the process-wide mutable security token and the credential
// cookie. All platform calls go through one Session; concurrent callers
// would race on the token refresh, so the reconciliation loop stays
// sequential and the token itself is still mutex-guarded.
type Session struct {
	http   *http.Client
	cookie string

	mu    sync.Mutex
	token string
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) {
		s.http = c
	}
}

// NewSession creates a session around the given security cookie. The
// anti-forgery token starts absent and is learned from the first response
// that supplies one.
func NewSession(cookie string, opts ...Option) *Session {
	s := &Session{
		http:   &http.Client{Timeout: DefaultTimeout},
		cookie: cookie,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the current anti-forgery token, or "" before the first
// refresh.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Do issues the request with the current credentials. A response whose
// status and body match the platform's stale-token signal is retried
// exactly once with the token that same response supplied; the outcome of
// the second attempt, whatever it is, is returned unmodified. All other
// responses, including non-2xx ones, are returned to the caller for
// endpoint-specific interpretation.
func (s *Session) Do(ctx context.Context, req *Request) (*Response, error) {
	resp, err := s.attempt(ctx, req)
	if err != nil {
		return nil, err
	}
	if !tokenRejected(resp) {
		return resp, nil
	}

	logging.Ctx(ctx).Debug().
		Str("url", req.URL).
		Msg("Stale anti-forgery token, retrying with refreshed token")

	// Exactly one retry. The rejecting response already refreshed the
	// token in attempt(), so the second attempt carries the fresh value.
	return s.attempt(ctx, req)
}

// attempt performs a single HTTP exchange: build, authenticate, send,
// drain, and absorb any refreshed token regardless of outcome.
func (s *Session) attempt(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := req.build(ctx)
	if err != nil {
		return nil, errors.NewContractError("build request for", req.URL, err)
	}

	if s.cookie == "" {
		return nil, errors.ErrNotLoggedIn
	}
	httpReq.AddCookie(&http.Cookie{Name: securityCookie, Value: s.cookie})

	if token := s.Token(); token != "" {
		httpReq.Header.Set(csrfHeader, token)
	}

	httpResp, err := s.http.Do(httpReq)
	if err != nil {
		return nil, &errors.APIError{Endpoint: req.URL, Message: "request failed", Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &errors.APIError{Endpoint: req.URL, StatusCode: httpResp.StatusCode, Message: "reading response body", Err: err}
	}

	// The platform rotates the token on every response, success or failure.
	if refreshed := httpResp.Header.Get(csrfHeader); refreshed != "" {
		s.mu.Lock()
		s.token = refreshed
		s.mu.Unlock()
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

// tokenRejected reports whether a response is the platform's stale-token
// signal: the designated status plus one of the designated phrases.
func tokenRejected(resp *Response) bool {
	if resp.StatusCode != tokenRejectedStatus {
		return false
	}
	body := string(resp.Body)
	for _, phrase := range tokenRejectedPhrases {
		if strings.Contains(body, phrase) {
			return true
		}
	}
	return false
}
