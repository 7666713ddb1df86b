package sync

import (
	"context"
	"strconv"

	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/errors"
	"github.com/treeforge/merchant/pkg/logging"
)

// Syncer drives reconciliation passes against a Publisher. Entries are
// processed one at a time, strictly sequentially: the session token behind
// the publisher is shared mutable state, and concurrent in-flight calls
// could race on its refresh.
type Syncer struct {
	publisher Publisher
	verify    bool
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithVerification enables the post-write verification pass: after every
// successful create or update, the entry's remote state is re-fetched and
// compared against local intent.
func WithVerification(enabled bool) Option {
	return func(s *Syncer) {
		s.verify = enabled
	}
}

// New creates a Syncer around the given publisher.
func New(publisher Publisher, opts ...Option) *Syncer {
	s := &Syncer{publisher: publisher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reconcile classifies the catalogue and executes the resulting plan. On
// each successful call the entry's remote id (creates) and stored
// fingerprint are updated from post-call state; a failed entry is left
// exactly as it was and recorded, and the pass continues with the rest.
// The returned report is complete even when entries failed.
func (s *Syncer) Reconcile(ctx context.Context, cat *catalog.Catalog, flags Flags) *Report {
	plan := Classify(cat, flags)
	report := &Report{
		Outdated:      plan.Outdated,
		SkippedCreate: plan.SkipCreate,
		SkippedUpdate: plan.SkipUpdate,
	}

	log := logging.Ctx(ctx)
	log.Debug().
		Int("to_create", len(plan.ToCreate)).
		Int("to_update", len(plan.ToUpdate)).
		Int("outdated", len(plan.Outdated)).
		Msg("Reconciliation plan")

	for _, e := range plan.ToCreate {
		s.create(ctx, cat.UniverseID, e, report)
	}
	for _, e := range plan.ToUpdate {
		s.update(ctx, cat.UniverseID, e, report)
	}

	return report
}

// create handles one Create-classified entry.
func (s *Syncer) create(ctx context.Context, universeID int64, e *catalog.Entry, report *Report) {
	log := logging.Ctx(ctx)

	// The platform has no API for creating game passes; declaring a pass
	// without an id is a configuration mistake, not a network failure.
	if e.Kind() == catalog.KindPass {
		report.Failed = append(report.Failed, Failure{
			Entry: e,
			Err:   errors.NewContractError("create", e.Name, errors.ErrPassCreateUnsupported),
		})
		return
	}

	id, err := s.publisher.CreateProduct(ctx, universeID, e)
	if err != nil {
		log.Warn().Err(err).Str("entry", e.Name).Msg("Create failed")
		report.Failed = append(report.Failed, Failure{Entry: e, Err: err})
		return
	}

	// Fingerprint from post-call state: the fresh remote id is part of it.
	e.RemoteID = &id
	fp := catalog.Fingerprint(e)
	e.Fingerprint = &fp
	report.Created = append(report.Created, e)

	log.Info().Str("entry", e.Name).Int64("id", id).Msg("Created")

	if s.verify {
		s.verifyEntry(ctx, e, report)
	}
}

// update handles one Update-classified entry.
func (s *Syncer) update(ctx context.Context, universeID int64, e *catalog.Entry, report *Report) {
	log := logging.Ctx(ctx)

	var err error
	switch e.Kind() {
	case catalog.KindPass:
		err = s.publisher.UpdatePass(ctx, e)
	default:
		err = s.publisher.UpdateProduct(ctx, universeID, e)
	}
	if err != nil {
		log.Warn().Err(err).Str("entry", e.Name).Msg("Update failed")
		report.Failed = append(report.Failed, Failure{Entry: e, Err: err})
		return
	}

	fp := catalog.Fingerprint(e)
	e.Fingerprint = &fp
	report.Updated = append(report.Updated, e)

	log.Info().Str("entry", e.Name).Int64("id", *e.RemoteID).Msg("Updated")

	if s.verify {
		s.verifyEntry(ctx, e, report)
	}
}

// verifyEntry re-fetches the entry's authoritative remote state and
// compares it to local intent. The write already succeeded; anything found
// here is a warning, never a rollback.
func (s *Syncer) verifyEntry(ctx context.Context, e *catalog.Entry, report *Report) {
	var remote *RemoteState
	var err error
	switch e.Kind() {
	case catalog.KindPass:
		remote, err = s.publisher.FetchPass(ctx, *e.RemoteID)
	default:
		remote, err = s.publisher.FetchProduct(ctx, *e.RemoteID)
	}
	if err != nil {
		report.VerifyFailures = append(report.VerifyFailures, Failure{Entry: e, Err: err})
		return
	}

	report.Mismatches = append(report.Mismatches, compare(e, remote)...)
}

// compare diffs the verified fields. The platform may rewrite submitted
// text through content filtering without failing the write, so name and
// description get compared alongside price.
func compare(e *catalog.Entry, remote *RemoteState) []Mismatch {
	var mismatches []Mismatch
	if remote.Name != e.Name {
		mismatches = append(mismatches, Mismatch{Entry: e, Field: "name", Local: e.Name, Remote: remote.Name})
	}
	if remote.Description != e.DescriptionValue() {
		mismatches = append(mismatches, Mismatch{Entry: e, Field: "description", Local: e.DescriptionValue(), Remote: remote.Description})
	}
	if remote.Price != e.PriceValue() {
		mismatches = append(mismatches, Mismatch{
			Entry:  e,
			Field:  "price",
			Local:  strconv.FormatInt(e.PriceValue(), 10),
			Remote: strconv.FormatInt(remote.Price, 10),
		})
	}
	return mismatches
}
