// Package roblox implements the remote operation adapters against the
// platform's three endpoint families: the legacy HTML product-create form,
// the JSON product-update API, and the game-pass update endpoint. The wire
// formats are fixed external contracts; this package translates each of
// them into a remote id or a typed failure and nothing else escapes it.
package roblox

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/treeforge/merchant/internal/transport"
	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/errors"
	"github.com/treeforge/merchant/pkg/sync"
)

// Default endpoint hosts. Overridable for tests only; the paths below are
// fixed platform contracts.
const (
	DefaultWWWBase     = "https://www.roblox.com"
	DefaultDevelopBase = "https://develop.roblox.com"
	DefaultAPIsBase    = "https://apis.roblox.com"
)

// Publisher issues the platform calls through an authenticated session.
// It satisfies sync.Publisher.
type Publisher struct {
	session *transport.Session

	wwwBase     string
	developBase string
	apisBase    string
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithBaseURLs points the publisher at alternate hosts (used by tests).
func WithBaseURLs(www, develop, apis string) Option {
	return func(p *Publisher) {
		p.wwwBase = www
		p.developBase = develop
		p.apisBase = apis
	}
}

// NewPublisher creates a publisher over the given session.
func NewPublisher(session *transport.Session, opts ...Option) *Publisher {
	p := &Publisher{
		session:     session,
		wwwBase:     DefaultWWWBase,
		developBase: DefaultDevelopBase,
		apisBase:    DefaultAPIsBase,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ sync.Publisher = (*Publisher)(nil)

// CreateProduct creates a developer product through the legacy form
// endpoint and returns the platform-assigned id extracted from its HTML
// status fragment.
func (p *Publisher) CreateProduct(ctx context.Context, universeID int64, e *catalog.Entry) (int64, error) {
	query := url.Values{}
	query.Set("universeId", strconv.FormatInt(universeID, 10))
	query.Set("name", e.Name)
	query.Set("priceInRobux", strconv.FormatInt(e.PriceValue(), 10))
	query.Set("description", e.DescriptionValue())
	if e.ImageID != nil {
		query.Set("imageAssetId", strconv.FormatInt(*e.ImageID, 10))
	}

	resp, err := p.session.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    p.wwwBase + "/places/developerproducts/add",
		Query:  query,
	})
	if err != nil {
		return 0, fmt.Errorf("create product %q: %w", e.Name, err)
	}

	id, err := decodeCreated(resp)
	if err != nil {
		return 0, fmt.Errorf("create product %q: %w", e.Name, err)
	}
	return id, nil
}

// UpdateProduct pushes the entry's fields to its existing developer
// product through the JSON API.
func (p *Publisher) UpdateProduct(ctx context.Context, universeID int64, e *catalog.Entry) error {
	if !e.HasRemoteID() {
		return errors.NewContractError("update", e.Name, errors.ErrNoRemoteID)
	}

	body := map[string]any{
		"Name":         e.Name,
		"Description":  e.DescriptionValue(),
		"PriceInRobux": e.PriceValue(),
	}
	if e.ImageID != nil {
		body["IconImageAssetId"] = *e.ImageID
	}

	resp, err := p.session.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL: fmt.Sprintf("%s/v1/universes/%d/developerproducts/%d/update",
			p.developBase, universeID, *e.RemoteID),
		JSON: body,
	})
	if err != nil {
		return fmt.Errorf("update product %q: %w", e.Name, err)
	}
	if err := decodeValidity(resp); err != nil {
		return fmt.Errorf("update product %q: %w", e.Name, err)
	}
	return nil
}

// UpdatePass pushes the entry's fields to its existing game pass.
func (p *Publisher) UpdatePass(ctx context.Context, e *catalog.Entry) error {
	if !e.HasRemoteID() {
		return errors.NewContractError("update", e.Name, errors.ErrNoRemoteID)
	}

	form := url.Values{}
	form.Set("id", strconv.FormatInt(*e.RemoteID, 10))
	form.Set("name", e.Name)
	form.Set("description", e.DescriptionValue())
	form.Set("price", strconv.FormatInt(e.PriceValue(), 10))
	form.Set("isForSale", strconv.FormatBool(e.ForSale()))

	resp, err := p.session.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    p.wwwBase + "/game-pass/update",
		Form:   form,
	})
	if err != nil {
		return fmt.Errorf("update pass %q: %w", e.Name, err)
	}
	if err := decodeValidity(resp); err != nil {
		return fmt.Errorf("update pass %q: %w", e.Name, err)
	}
	return nil
}

// productInfo is the JSON shape of the product info endpoint.
type productInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceInRobux *int64 `json:"priceInRobux"`
}

// FetchProduct reads a developer product's authoritative remote state.
func (p *Publisher) FetchProduct(ctx context.Context, productID int64) (*sync.RemoteState, error) {
	resp, err := p.session.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v1/developerproducts/%d", p.developBase, productID),
	})
	if err != nil {
		return nil, err
	}

	var info productInfo
	if err := decodeInfo(resp, &info); err != nil {
		return nil, err
	}
	state := &sync.RemoteState{Name: info.Name, Description: info.Description}
	if info.PriceInRobux != nil {
		state.Price = *info.PriceInRobux
	}
	return state, nil
}

// passInfo is the JSON shape of the game-pass product-info endpoint. Its
// field casing differs from the product one; both are fixed contracts.
type passInfo struct {
	Name         string `json:"Name"`
	Description  string `json:"Description"`
	PriceInRobux *int64 `json:"PriceInRobux"`
}

// FetchPass reads a game pass's authoritative remote state.
func (p *Publisher) FetchPass(ctx context.Context, passID int64) (*sync.RemoteState, error) {
	resp, err := p.session.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/game-passes/v1/game-passes/%d/product-info", p.apisBase, passID),
	})
	if err != nil {
		return nil, err
	}

	var info passInfo
	if err := decodeInfo(resp, &info); err != nil {
		return nil, err
	}
	state := &sync.RemoteState{Name: info.Name, Description: info.Description}
	if info.PriceInRobux != nil {
		state.Price = *info.PriceInRobux
	}
	return state, nil
}
