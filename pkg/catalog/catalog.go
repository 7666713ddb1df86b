// Package catalog defines the locally declared monetization catalogue: the
// universe it belongs to, its developer products and game passes, and the
// content fingerprint that detects local edits needing a remote write.
package catalog

import (
	"fmt"

	"github.com/treeforge/merchant/pkg/errors"
)

// Catalog is the local declaration of one universe's monetization entries.
// The catalogue exclusively owns its entries; entries have no identity
// outside it.
type Catalog struct {
	// UniverseID identifies the experience that owns these entries.
	UniverseID int64 `toml:"universe_id" json:"universeId" yaml:"universe_id"`

	// Products are the universe's developer products, in declaration order.
	Products []*Entry `toml:"products,omitempty" json:"products,omitempty" yaml:"products,omitempty"`

	// Passes are the universe's game passes, in declaration order.
	Passes []*Entry `toml:"passes,omitempty" json:"passes,omitempty" yaml:"passes,omitempty"`
}

// New creates an empty catalogue for the given universe.
func New(universeID int64) *Catalog {
	return &Catalog{UniverseID: universeID}
}

// AddProduct appends a product entry and stamps its kind.
func (c *Catalog) AddProduct(e *Entry) *Entry {
	e.kind = KindProduct
	c.Products = append(c.Products, e)
	return e
}

// AddPass appends a pass entry and stamps its kind.
func (c *Catalog) AddPass(e *Entry) *Entry {
	e.kind = KindPass
	c.Passes = append(c.Passes, e)
	return e
}

// Entries returns all entries in catalogue order: products first, then
// passes. Kinds are stamped as a side effect so entries loaded from a file
// always report the collection they came from.
func (c *Catalog) Entries() []*Entry {
	entries := make([]*Entry, 0, len(c.Products)+len(c.Passes))
	for _, e := range c.Products {
		e.kind = KindProduct
		entries = append(entries, e)
	}
	for _, e := range c.Passes {
		e.kind = KindPass
		entries = append(entries, e)
	}
	return entries
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	return len(c.Products) + len(c.Passes)
}

// Validate checks the catalogue's declared constraints: a positive universe
// id, per-entry field constraints, and name uniqueness within each kind.
// Malformed input must never reach the sync engine.
func (c *Catalog) Validate() error {
	if c.UniverseID <= 0 {
		return errors.NewValidationError("universe_id", "is required and must be positive")
	}

	for _, group := range []struct {
		kind    Kind
		entries []*Entry
	}{
		{KindProduct, c.Products},
		{KindPass, c.Passes},
	} {
		seen := make(map[string]bool, len(group.entries))
		for _, e := range group.entries {
			e.kind = group.kind
			if err := e.validate(); err != nil {
				return err
			}
			if seen[e.Name] {
				return errors.NewValidationError("name",
					fmt.Sprintf("%q is declared more than once among %ss", e.Name, group.kind))
			}
			seen[e.Name] = true
		}
	}
	return nil
}
