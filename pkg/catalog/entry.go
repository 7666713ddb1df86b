package catalog

import (
	"github.com/treeforge/merchant/pkg/errors"
)

// Kind identifies the monetization type of an entry. It is fixed when the
// entry is created and never changes.
type Kind string

const (
	// KindProduct is a developer product: consumable, purchasable any number of times.
	KindProduct Kind = "product"
	// KindPass is a game pass: a one-time purchase attached to the experience.
	KindPass Kind = "pass"
)

// Entry is one configured developer product or game pass.
//
// Optional fields are pointers so that "absent" stays distinct from the
// zero value: a product with price 0 is not for sale, but it is still a
// different declaration than a product with no price at all.
type Entry struct {
	// Name is required and must be unique within its kind.
	Name string `toml:"name" json:"name" yaml:"name"`

	// Description is optional display text.
	Description *string `toml:"description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`

	// Price in Robux. Absent or 0 means not for sale. Never negative.
	Price *int64 `toml:"price,omitempty" json:"price,omitempty" yaml:"price,omitempty"`

	// ImageID is an uploaded image asset id. Products only.
	ImageID *int64 `toml:"image_id,omitempty" json:"imageId,omitempty" yaml:"image_id,omitempty"`

	// RemoteID is the platform-assigned identifier. Present iff the entry
	// already exists remotely.
	RemoteID *int64 `toml:"id,omitempty" json:"id,omitempty" yaml:"id,omitempty"`

	// Fingerprint is the stored content fingerprint as of the last
	// successful write. Managed by the sync engine, not by hand.
	Fingerprint *string `toml:"fingerprint,omitempty" json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`

	kind Kind
}

// Kind returns the entry's monetization kind.
func (e *Entry) Kind() Kind {
	return e.kind
}

// HasRemoteID reports whether the entry already exists on the platform.
func (e *Entry) HasRemoteID() bool {
	return e.RemoteID != nil
}

// DescriptionValue returns the description, or "" when absent.
func (e *Entry) DescriptionValue() string {
	if e.Description == nil {
		return ""
	}
	return *e.Description
}

// PriceValue returns the price, or 0 when absent.
func (e *Entry) PriceValue() int64 {
	if e.Price == nil {
		return 0
	}
	return *e.Price
}

// ForSale reports whether the entry carries a purchasable price.
func (e *Entry) ForSale() bool {
	return e.Price != nil && *e.Price > 0
}

// validate checks the entry's field constraints for its kind.
func (e *Entry) validate() error {
	if e.Name == "" {
		return errors.NewValidationError("name", "is required")
	}
	if e.Price != nil && *e.Price < 0 {
		return errors.NewValidationError("price", "must be non-negative for "+e.Name)
	}
	if e.ImageID != nil {
		if e.kind == KindPass {
			return errors.NewValidationError("image_id", "is not supported on game passes ("+e.Name+")")
		}
		if *e.ImageID < 0 {
			return errors.NewValidationError("image_id", "must be non-negative for "+e.Name)
		}
	}
	if e.RemoteID != nil && *e.RemoteID <= 0 {
		return errors.NewValidationError("id", "must be positive for "+e.Name)
	}
	return nil
}

// int64ptr helpers used by constructors and tests.

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
