package merchant

import (
	"net/http"

	"github.com/treeforge/merchant/pkg/errors"
	"github.com/treeforge/merchant/pkg/sync"
)

// config collects the options for building a Client.
type config struct {
	cookie     string
	httpClient *http.Client
	verify     bool
	publisher  sync.Publisher

	wwwBase     string
	developBase string
	apisBase    string
}

// Option is a function that configures a Client.
type Option func(*config) error

// WithCookie supplies the security cookie attached to every platform call.
func WithCookie(cookie string) Option {
	return func(c *config) error {
		if cookie == "" {
			return errors.ErrNotLoggedIn
		}
		c.cookie = cookie
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) error {
		c.httpClient = client
		return nil
	}
}

// WithVerification enables the post-write verification pass: every
// successful create or update is re-fetched and compared against local
// intent, surfacing silent content rewrites as warnings.
func WithVerification(enabled bool) Option {
	return func(c *config) error {
		c.verify = enabled
		return nil
	}
}

// WithPublisher injects a custom publisher, bypassing session and
// transport construction. Used by tests.
func WithPublisher(p sync.Publisher) Option {
	return func(c *config) error {
		c.publisher = p
		return nil
	}
}

// WithBaseURLs points the platform adapters at alternate hosts.
func WithBaseURLs(www, develop, apis string) Option {
	return func(c *config) error {
		c.wwwBase = www
		c.developBase = develop
		c.apisBase = apis
		return nil
	}
}
