package sync

import (
	"context"

	"github.com/treeforge/merchant/pkg/catalog"
)

// Publisher is the narrow remote surface the reconciliation engine drives.
// The platform implementation lives in internal/roblox; tests substitute
// their own.
//
// Calling UpdateProduct or UpdatePass on an entry without a remote id is a
// contract violation: implementations fail fast without touching the
// network.
type Publisher interface {
	// CreateProduct creates a developer product and returns its new
	// platform-assigned id.
	CreateProduct(ctx context.Context, universeID int64, e *catalog.Entry) (int64, error)

	// UpdateProduct pushes the entry's fields to its existing product.
	UpdateProduct(ctx context.Context, universeID int64, e *catalog.Entry) error

	// UpdatePass pushes the entry's fields to its existing game pass.
	UpdatePass(ctx context.Context, e *catalog.Entry) error

	// FetchProduct reads a product's authoritative remote state.
	FetchProduct(ctx context.Context, productID int64) (*RemoteState, error)

	// FetchPass reads a game pass's authoritative remote state.
	FetchPass(ctx context.Context, passID int64) (*RemoteState, error)
}

// RemoteState is the subset of remote content the verification pass
// compares against local intent.
type RemoteState struct {
	Name        string
	Description string
	Price       int64
}
