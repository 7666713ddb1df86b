// Package merchant reconciles a locally declared catalogue of monetization
// entries (developer products and game passes) against their remote
// representation, creating or updating only what has actually changed.
//
// The package wraps the reconciliation engine and the authenticated
// platform transport behind one client:
//
//	client, err := merchant.New(merchant.WithCookie(cookie))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cat, err := catalog.Load("products.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report := client.Reconcile(ctx, cat, sync.Flags{Create: true, Update: true})
//	for _, e := range report.Created {
//	    fmt.Printf("created %s as %d\n", e.Name, *e.RemoteID)
//	}
//
//	// Persist assigned ids and fingerprints, failures or not.
//	if err := catalog.Save("products.toml", cat); err != nil {
//	    log.Fatal(err)
//	}
//
// Entries are processed strictly sequentially: the platform's rotating
// anti-forgery token is shared mutable session state, and the transport's
// one-retry recovery depends on attempts not interleaving.
package merchant

import (
	"github.com/treeforge/merchant/internal/roblox"
	"github.com/treeforge/merchant/internal/transport"
	"github.com/treeforge/merchant/pkg/errors"
	"github.com/treeforge/merchant/pkg/sync"
)

// New creates a client for one process run. A security cookie is required
// unless a custom publisher is injected.
func New(opts ...Option) (*Client, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	publisher := cfg.publisher
	if publisher == nil {
		if cfg.cookie == "" {
			return nil, errors.ErrNotLoggedIn
		}
		var sessionOpts []transport.Option
		if cfg.httpClient != nil {
			sessionOpts = append(sessionOpts, transport.WithHTTPClient(cfg.httpClient))
		}
		session := transport.NewSession(cfg.cookie, sessionOpts...)

		var publisherOpts []roblox.Option
		if cfg.wwwBase != "" {
			publisherOpts = append(publisherOpts, roblox.WithBaseURLs(cfg.wwwBase, cfg.developBase, cfg.apisBase))
		}
		publisher = roblox.NewPublisher(session, publisherOpts...)
	}

	return &Client{
		publisher: publisher,
		syncer:    sync.New(publisher, sync.WithVerification(cfg.verify)),
	}, nil
}
