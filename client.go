package merchant

import (
	"context"

	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/sync"
)

// Client is the high-level entry point: one per process run, owning the
// authenticated session and the reconciliation engine built on it.
type Client struct {
	publisher sync.Publisher
	syncer    *sync.Syncer
}

// Classify buckets every catalogue entry into its sync action without
// touching the network. Suitable for dry-run presentation as-is.
func (c *Client) Classify(cat *catalog.Catalog, flags sync.Flags) *sync.Plan {
	return sync.Classify(cat, flags)
}

// Reconcile performs one full classify-and-apply pass. The catalogue's
// entries are mutated in place (remote ids, fingerprints); the caller is
// responsible for persisting them, even when the report contains failures.
func (c *Client) Reconcile(ctx context.Context, cat *catalog.Catalog, flags sync.Flags) *sync.Report {
	return c.syncer.Reconcile(ctx, cat, flags)
}

// Outdated reports which entries have drifted from their stored
// fingerprints. Read-only.
func (c *Client) Outdated(cat *catalog.Catalog) []*catalog.Entry {
	return sync.PreviewOutdated(cat)
}

// Accept overwrites the stored fingerprints of remotely existing entries
// with their current values, adopting local edits as the new baseline
// without contacting the platform. Returns the number of entries rewritten.
func (c *Client) Accept(cat *catalog.Catalog) int {
	return sync.RecomputeFingerprints(cat)
}
