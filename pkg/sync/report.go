package sync

import (
	"fmt"

	"github.com/treeforge/merchant/pkg/catalog"
)

// Failure pairs an entry with the error that stopped it.
type Failure struct {
	Entry *catalog.Entry
	Err   error
}

// Mismatch records one field the platform silently rewrote after a write
// it reported as successful (content filtering, usually). Not an error:
// the write itself stood.
type Mismatch struct {
	Entry  *catalog.Entry
	Field  string
	Local  string
	Remote string
}

// String renders the mismatch for presentation.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s is %q locally but %q remotely", m.Entry.Name, m.Field, m.Local, m.Remote)
}

// Report is the complete outcome of one reconciliation pass. It is always
// fully populated, even when some entries failed: partial progress, and
// especially freshly assigned remote ids, must never be lost.
type Report struct {
	// Created are entries successfully created this pass.
	Created []*catalog.Entry

	// Updated are entries successfully updated this pass.
	Updated []*catalog.Entry

	// Failed are entries whose remote call failed, each with its error.
	Failed []Failure

	// Outdated lists drifted entries as classified, including ones whose
	// update was skipped.
	Outdated []*catalog.Entry

	// SkippedCreate and SkippedUpdate carry the skip lists from
	// classification through to presentation.
	SkippedCreate []*catalog.Entry
	SkippedUpdate []*catalog.Entry

	// Mismatches are verification warnings: the write succeeded but the
	// platform stored altered content.
	Mismatches []Mismatch

	// VerifyFailures are entries whose post-write verification fetch
	// failed. Distinct from Mismatches; the write still stood.
	VerifyFailures []Failure
}

// OK reports whether every attempted remote call succeeded.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// Attempted returns the number of entries for which a remote call was
// attempted.
func (r *Report) Attempted() int {
	return len(r.Created) + len(r.Updated) + len(r.Failed)
}
