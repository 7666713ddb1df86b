// Package sync implements the reconciliation engine: classifying every
// catalogue entry into a sync action, driving the remote create and update
// calls, and folding their outcomes back into entry state.
package sync

import (
	"github.com/treeforge/merchant/pkg/catalog"
)

// Flags select which actions a reconciliation pass may take.
type Flags struct {
	// Create allows creating entries that have no remote id yet.
	Create bool

	// Update allows updating entries whose content drifted from their
	// stored fingerprint.
	Update bool

	// UpdateAll forces an update of every entry with a remote id, drifted
	// or not. Implies Update.
	UpdateAll bool
}

// Plan is the classification of a catalogue against a set of flags. Every
// entry lands in exactly one of the action buckets; Outdated additionally
// lists the drifted entries regardless of whether updates were requested.
type Plan struct {
	// ToCreate are entries with no remote id, to be created this pass.
	ToCreate []*catalog.Entry

	// SkipCreate are entries with no remote id when creation was not
	// requested.
	SkipCreate []*catalog.Entry

	// Outdated are entries whose stored fingerprint is absent or no longer
	// matches their content. Reporting only; never includes force-updates.
	Outdated []*catalog.Entry

	// ToUpdate are entries to be updated this pass.
	ToUpdate []*catalog.Entry

	// SkipUpdate are entries with a remote id that this pass leaves alone.
	SkipUpdate []*catalog.Entry
}

// Classify buckets every entry per the reconciliation rule. It is a pure
// function of its input: classifying an unmutated catalogue twice with the
// same flags yields identical plans, and nothing is cached between passes.
//
// Entries are considered in catalogue order (products, then passes), which
// affects reporting order only.
func Classify(cat *catalog.Catalog, flags Flags) *Plan {
	plan := &Plan{}
	for _, e := range cat.Entries() {
		// No remote id means never synced, whatever the stored
		// fingerprint claims.
		if !e.HasRemoteID() {
			if flags.Create {
				plan.ToCreate = append(plan.ToCreate, e)
			} else {
				plan.SkipCreate = append(plan.SkipCreate, e)
			}
			continue
		}

		if !e.UpToDate() {
			plan.Outdated = append(plan.Outdated, e)
			if flags.Update || flags.UpdateAll {
				plan.ToUpdate = append(plan.ToUpdate, e)
			} else {
				plan.SkipUpdate = append(plan.SkipUpdate, e)
			}
			continue
		}

		// Up to date; a force-update still pushes it, but it is not
		// counted as outdated.
		if flags.UpdateAll {
			plan.ToUpdate = append(plan.ToUpdate, e)
		} else {
			plan.SkipUpdate = append(plan.SkipUpdate, e)
		}
	}
	return plan
}

// HasWork reports whether the plan schedules any remote call.
func (p *Plan) HasWork() bool {
	return len(p.ToCreate)+len(p.ToUpdate) > 0
}

// PreviewOutdated reports which entries a pass would consider outdated,
// without the create/skip distinctions of a full classification. Used for
// dry-run reporting; touches no network.
func PreviewOutdated(cat *catalog.Catalog) []*catalog.Entry {
	var outdated []*catalog.Entry
	for _, e := range cat.Entries() {
		if e.HasRemoteID() && !e.UpToDate() {
			outdated = append(outdated, e)
		}
	}
	return outdated
}

// RecomputeFingerprints overwrites the stored fingerprint of every entry
// that exists remotely with its current fingerprint, accepting local edits
// as the new baseline. Entries without a remote id are left untouched so
// they keep reading as never synced. Returns the number of entries
// rewritten. Touches no network.
func RecomputeFingerprints(cat *catalog.Catalog) int {
	count := 0
	for _, e := range cat.Entries() {
		if !e.HasRemoteID() {
			continue
		}
		fp := catalog.Fingerprint(e)
		e.Fingerprint = &fp
		count++
	}
	return count
}
