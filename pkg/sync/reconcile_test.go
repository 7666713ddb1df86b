package sync

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/errors"
)

// fakePublisher records calls and fails on demand.
type fakePublisher struct {
	nextID  int64
	calls   []string
	failOn  map[string]error
	remotes map[int64]*RemoteState
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{
		nextID:  1000,
		failOn:  map[string]error{},
		remotes: map[int64]*RemoteState{},
	}
}

func (f *fakePublisher) record(e *catalog.Entry) {
	f.remotes[*e.RemoteID] = &RemoteState{
		Name:        e.Name,
		Description: e.DescriptionValue(),
		Price:       e.PriceValue(),
	}
}

func (f *fakePublisher) CreateProduct(_ context.Context, _ int64, e *catalog.Entry) (int64, error) {
	f.calls = append(f.calls, "create:"+e.Name)
	if err := f.failOn[e.Name]; err != nil {
		return 0, err
	}
	f.nextID++
	f.remotes[f.nextID] = &RemoteState{Name: e.Name, Description: e.DescriptionValue(), Price: e.PriceValue()}
	return f.nextID, nil
}

func (f *fakePublisher) UpdateProduct(_ context.Context, _ int64, e *catalog.Entry) error {
	f.calls = append(f.calls, "update-product:"+e.Name)
	if err := f.failOn[e.Name]; err != nil {
		return err
	}
	f.record(e)
	return nil
}

func (f *fakePublisher) UpdatePass(_ context.Context, e *catalog.Entry) error {
	f.calls = append(f.calls, "update-pass:"+e.Name)
	if err := f.failOn[e.Name]; err != nil {
		return err
	}
	f.record(e)
	return nil
}

func (f *fakePublisher) FetchProduct(_ context.Context, id int64) (*RemoteState, error) {
	if remote, ok := f.remotes[id]; ok {
		return remote, nil
	}
	return nil, fmt.Errorf("no product %d", id)
}

func (f *fakePublisher) FetchPass(_ context.Context, id int64) (*RemoteState, error) {
	if remote, ok := f.remotes[id]; ok {
		return remote, nil
	}
	return nil, fmt.Errorf("no pass %d", id)
}

func TestReconcileCreateAssignsIDAndFingerprint(t *testing.T) {
	cat := catalog.New(1)
	a := cat.AddProduct(&catalog.Entry{Name: "A", Price: catalog.Int64(50)})

	fake := newFakePublisher()
	report := New(fake).Reconcile(context.Background(), cat, Flags{Create: true})

	require.True(t, report.OK())
	assert.Equal(t, []string{"A"}, names(report.Created))
	require.NotNil(t, a.RemoteID)
	assert.Equal(t, int64(1001), *a.RemoteID)

	// The stored fingerprint reflects post-call state, remote id included.
	require.NotNil(t, a.Fingerprint)
	assert.Equal(t, catalog.Fingerprint(a), *a.Fingerprint)
	assert.True(t, a.UpToDate())
}

func TestReconcileUpdateDispatchesByKind(t *testing.T) {
	cat := catalog.New(1)
	cat.AddProduct(&catalog.Entry{Name: "P", RemoteID: catalog.Int64(10)})
	cat.AddPass(&catalog.Entry{Name: "G", RemoteID: catalog.Int64(20)})

	fake := newFakePublisher()
	report := New(fake).Reconcile(context.Background(), cat, Flags{Update: true})

	require.True(t, report.OK())
	assert.Equal(t, []string{"update-product:P", "update-pass:G"}, fake.calls)
	assert.Equal(t, []string{"P", "G"}, names(report.Updated))
}

func TestReconcilePartialFailure(t *testing.T) {
	cat := catalog.New(1)
	e1 := cat.AddProduct(&catalog.Entry{Name: "first", RemoteID: catalog.Int64(1)})
	e2 := cat.AddProduct(&catalog.Entry{Name: "second", RemoteID: catalog.Int64(2), Fingerprint: catalog.String("old")})
	e3 := cat.AddProduct(&catalog.Entry{Name: "third", RemoteID: catalog.Int64(3)})

	fake := newFakePublisher()
	fake.failOn["second"] = errors.NewPlatformError(0, "rejected")

	report := New(fake).Reconcile(context.Background(), cat, Flags{Update: true})

	// One failure never aborts the batch.
	assert.Len(t, fake.calls, 3)
	assert.Equal(t, []string{"first", "third"}, names(report.Updated))
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "second", report.Failed[0].Entry.Name)
	assert.Equal(t, 3, report.Attempted())
	assert.False(t, report.OK())

	// Succeeded entries carry fresh fingerprints; the failed one is untouched.
	assert.True(t, e1.UpToDate())
	assert.True(t, e3.UpToDate())
	assert.Equal(t, "old", *e2.Fingerprint)
}

func TestReconcileCreateFailureLeavesEntryUnmodified(t *testing.T) {
	cat := catalog.New(1)
	a := cat.AddProduct(&catalog.Entry{Name: "A"})

	fake := newFakePublisher()
	fake.failOn["A"] = errors.ErrUnknownResponse

	report := New(fake).Reconcile(context.Background(), cat, Flags{Create: true})

	require.Len(t, report.Failed, 1)
	assert.ErrorIs(t, report.Failed[0].Err, errors.ErrUnknownResponse)
	assert.Nil(t, a.RemoteID)
	assert.Nil(t, a.Fingerprint)
}

func TestReconcilePassCreateIsContractFailure(t *testing.T) {
	cat := catalog.New(1)
	cat.AddPass(&catalog.Entry{Name: "VIP"})

	fake := newFakePublisher()
	report := New(fake).Reconcile(context.Background(), cat, Flags{Create: true})

	require.Len(t, report.Failed, 1)
	assert.ErrorIs(t, report.Failed[0].Err, errors.ErrPassCreateUnsupported)
	assert.True(t, errors.IsContract(report.Failed[0].Err))
	assert.Empty(t, fake.calls, "a contract violation never reaches the network")
}

func TestReconcileCarriesSkipLists(t *testing.T) {
	cat := catalog.New(1)
	cat.AddProduct(&catalog.Entry{Name: "new"})
	drifted := cat.AddProduct(stamp(&catalog.Entry{Name: "drifted", RemoteID: catalog.Int64(2)}))
	drifted.Price = catalog.Int64(10)

	fake := newFakePublisher()
	report := New(fake).Reconcile(context.Background(), cat, Flags{})

	assert.Empty(t, fake.calls)
	assert.Equal(t, []string{"new"}, names(report.SkippedCreate))
	assert.Equal(t, []string{"drifted"}, names(report.SkippedUpdate))
	assert.Equal(t, []string{"drifted"}, names(report.Outdated))
}

func TestReconcileVerificationMismatch(t *testing.T) {
	cat := catalog.New(1)
	cat.AddProduct(&catalog.Entry{Name: "Filtered Name", Description: catalog.String("text"), Price: catalog.Int64(50), RemoteID: catalog.Int64(10)})

	// The platform "stores" a filtered rendition of what was submitted.
	fake := newFakePublisher()
	syncer := New(&rewritingPublisher{fakePublisher: fake}, WithVerification(true))
	report := syncer.Reconcile(context.Background(), cat, Flags{Update: true})

	require.True(t, report.OK(), "a content rewrite is not a failure")
	assert.Equal(t, []string{"Filtered Name"}, names(report.Updated))
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, "name", report.Mismatches[0].Field)
	assert.Equal(t, "Filtered Name", report.Mismatches[0].Local)
	assert.Equal(t, "[ Content Deleted ]", report.Mismatches[0].Remote)
}

// rewritingPublisher simulates remote content filtering: writes succeed but
// the stored name comes back censored.
type rewritingPublisher struct {
	*fakePublisher
}

func (r *rewritingPublisher) UpdateProduct(ctx context.Context, universeID int64, e *catalog.Entry) error {
	if err := r.fakePublisher.UpdateProduct(ctx, universeID, e); err != nil {
		return err
	}
	r.remotes[*e.RemoteID].Name = "[ Content Deleted ]"
	return nil
}

func TestReconcileVerificationFetchFailure(t *testing.T) {
	cat := catalog.New(1)
	cat.AddPass(&catalog.Entry{Name: "VIP", RemoteID: catalog.Int64(20)})

	fake := newFakePublisher()
	// UpdatePass records into remotes, but wipe it so the fetch fails.
	syncer := New(&forgetfulPublisher{fakePublisher: fake}, WithVerification(true))
	report := syncer.Reconcile(context.Background(), cat, Flags{Update: true})

	require.True(t, report.OK(), "a verification fetch failure never rolls back the write")
	assert.Equal(t, []string{"VIP"}, names(report.Updated))
	assert.Empty(t, report.Mismatches)
	require.Len(t, report.VerifyFailures, 1)
	assert.Equal(t, "VIP", report.VerifyFailures[0].Entry.Name)
}

// forgetfulPublisher accepts writes but cannot serve reads.
type forgetfulPublisher struct {
	*fakePublisher
}

func (f *forgetfulPublisher) FetchPass(context.Context, int64) (*RemoteState, error) {
	return nil, fmt.Errorf("fetch unavailable")
}

func TestReconcileEndToEndExample(t *testing.T) {
	// Catalogue {universeId: 1, products: [{name: "A", price: 50}]} with
	// create-only flags.
	cat := catalog.New(1)
	a := cat.AddProduct(&catalog.Entry{Name: "A", Price: catalog.Int64(50)})

	plan := Classify(cat, Flags{Create: true})
	assert.Equal(t, []string{"A"}, names(plan.ToCreate))
	assert.Empty(t, plan.SkipCreate)
	assert.Empty(t, plan.Outdated)
	assert.Empty(t, plan.ToUpdate)
	assert.Empty(t, plan.SkipUpdate)

	fake := newFakePublisher()
	report := New(fake).Reconcile(context.Background(), cat, Flags{Create: true})
	require.True(t, report.OK())
	require.NotNil(t, a.RemoteID)
	assert.Equal(t, catalog.Fingerprint(a), *a.Fingerprint)

	// Later the product is edited; the stored fingerprint goes stale.
	a.Price = catalog.Int64(75)
	plan = Classify(cat, Flags{Update: true})
	assert.Equal(t, []string{"A"}, names(plan.Outdated))
	assert.Equal(t, []string{"A"}, names(plan.ToUpdate))
}
