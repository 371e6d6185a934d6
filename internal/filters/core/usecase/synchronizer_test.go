package usecase

import (
	"context"
	"errors"
	"testing"

	"carrier-records-service/internal/filters/core/domain"
	"carrier-records-service/internal/filters/core/ports"

	"go.uber.org/zap"
)

// fakeStore implements ports.SnapshotStorePort for tests.
type fakeStore struct {
	data    map[string][]byte
	PutFn   func(key string, payload []byte) error
	GetFn   func(key string) ([]byte, error)
	puts    int
	deletes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.GetFn != nil {
		return f.GetFn(key)
	}
	v, ok := f.data[key]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return v, nil
}

func (f *fakeStore) Put(_ context.Context, key string, payload []byte) error {
	f.puts++
	if f.PutFn != nil {
		return f.PutFn(key, payload)
	}
	f.data[key] = payload
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deletes++
	delete(f.data, key)
	return nil
}

// fakeClipboard implements ports.ClipboardPort for tests.
type fakeClipboard struct {
	WriteFn func(text string) (string, error)
	last    string
}

func (f *fakeClipboard) WriteText(_ context.Context, text string) (string, error) {
	f.last = text
	if f.WriteFn != nil {
		return f.WriteFn(text)
	}
	return "h1", nil
}

func newPivotSync(store ports.SnapshotStorePort) *Synchronizer {
	return NewSynchronizer(SynchronizerConfig{
		BasePath:        "/pivotTable",
		StorageKey:      "pivot_filters:s1",
		PublicBaseURL:   "http://localhost:8080/",
		ConfirmOnUnload: true,
	}, store, zap.NewNop())
}

func stored(t *testing.T, store *fakeStore, key string) domain.FilterSet {
	t.Helper()
	fs, err := NewPersistentCodec(store, key).Decode(context.Background())
	if err != nil {
		t.Fatalf("failed to decode stored filters: %v", err)
	}
	return fs
}

// ------------------------------------------------------------
// RECONCILE
// ------------------------------------------------------------

func TestReconcile_URLOverridesEmptyStorage(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	s := newPivotSync(store)

	live := s.Reconcile(ctx, "entity_type=Carrier")

	want := domain.FilterSet{{ID: "entity_type", Value: "Carrier"}}
	if !live.Equal(want) {
		t.Fatalf("expected live %v, got %v", want, live)
	}
	if got := stored(t, store, "pivot_filters:s1"); !got.Equal(want) {
		t.Fatalf("expected storage %v, got %v", want, got)
	}
	if s.Location() != "/pivotTable?entity_type=Carrier" {
		t.Fatalf("unexpected location: %s", s.Location())
	}
	if s.State() != domain.Reconciled {
		t.Fatalf("expected reconciled state")
	}
}

func TestReconcile_URLReplacesStoredSetWholesale(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.data["pivot_filters:s1"] = []byte(`[{"id":"legal_name","value":"acme"},{"id":"entity_type","value":"Broker"}]`)
	s := newPivotSync(store)

	live := s.Reconcile(ctx, "entity_type=Carrier")

	if len(live) != 1 || live[0] != (domain.Predicate{ID: "entity_type", Value: "Carrier"}) {
		t.Fatalf("expected URL filters only, got %v", live)
	}
}

func TestReconcile_StorageOnly(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.data["pivot_filters:s1"] = []byte(`[{"id":"legal_name","value":"acme"}]`)
	s := newPivotSync(store)

	live := s.Reconcile(ctx, "")

	want := domain.FilterSet{{ID: "legal_name", Value: "acme"}}
	if !live.Equal(want) {
		t.Fatalf("expected %v, got %v", want, live)
	}
	if s.Location() != "/pivotTable?legal_name=acme" {
		t.Fatalf("expected URL to mirror stored filters, got %s", s.Location())
	}
}

func TestReconcile_RunsOnce(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	s := newPivotSync(store)

	s.Reconcile(ctx, "entity_type=Carrier")
	puts := store.puts

	live := s.Reconcile(ctx, "entity_type=Broker")
	if live[0].Value != "Carrier" {
		t.Fatalf("expected second reconcile to be a no-op, got %v", live)
	}
	if store.puts != puts {
		t.Fatalf("expected no extra writes, got %d", store.puts-puts)
	}
}

func TestReconcile_BrokenEscapeKeepsWellFormedPairs(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.data["pivot_filters:s1"] = []byte(`[{"id":"legal_name","value":"acme"}]`)
	s := newPivotSync(store)

	live := s.Reconcile(ctx, "entity_type=Carrier&discount=50%")

	want := domain.FilterSet{{ID: "entity_type", Value: "Carrier"}, {ID: "discount", Value: "50%"}}
	if !live.Equal(want) {
		t.Fatalf("expected %v, got %v", want, live)
	}
	if got := stored(t, store, "pivot_filters:s1"); !got.Equal(want) {
		t.Fatalf("expected storage %v, got %v", want, got)
	}
	if s.Location() != "/pivotTable?entity_type=Carrier&discount=50%25" {
		t.Fatalf("unexpected location: %s", s.Location())
	}
}

func TestReconcile_StorageReadFailureStartsEmpty(t *testing.T) {
	store := newFakeStore()
	store.GetFn = func(key string) ([]byte, error) { return nil, errors.New("db down") }
	s := newPivotSync(store)

	if live := s.Reconcile(context.Background(), ""); len(live) != 0 {
		t.Fatalf("expected empty live set, got %v", live)
	}
}

// ------------------------------------------------------------
// STEADY STATE
// ------------------------------------------------------------

func TestReplace_WritesAllThreeStores(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	s := newPivotSync(store)
	s.Reconcile(ctx, "")

	fs := []domain.Predicate{{ID: "entity_type", Value: "Carrier"}, {ID: "phone", Value: "555"}}
	live := s.Replace(ctx, fs)

	if !live.Equal(domain.FilterSet(fs)) {
		t.Fatalf("unexpected live: %v", live)
	}
	if s.Location() != "/pivotTable?entity_type=Carrier&phone=555" {
		t.Fatalf("unexpected location: %s", s.Location())
	}
	if got := stored(t, store, "pivot_filters:s1"); !got.Equal(live) {
		t.Fatalf("expected storage %v, got %v", live, got)
	}
}

func TestSet_AddReplaceRemove(t *testing.T) {
	ctx := context.Background()
	s := newPivotSync(newFakeStore())

	if _, err := s.Set(ctx, domain.Predicate{ID: "entity_type", Value: "Carrier"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	live, _ := s.Set(ctx, domain.Predicate{ID: "entity_type", Value: "Broker"})
	if len(live) != 1 || live[0].Value != "Broker" {
		t.Fatalf("expected replace, got %v", live)
	}
	live, _ = s.Set(ctx, domain.Predicate{ID: "entity_type", Value: ""})
	if len(live) != 0 {
		t.Fatalf("expected removal, got %v", live)
	}
	if s.Location() != "/pivotTable" {
		t.Fatalf("expected bare path, got %s", s.Location())
	}
}

func TestSet_EmptyID(t *testing.T) {
	_, err := newPivotSync(newFakeStore()).Set(context.Background(), domain.Predicate{Value: "x"})
	if !errors.Is(err, ErrInvalidPredicate) {
		t.Fatalf("expected ErrInvalidPredicate, got %v", err)
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	s := newPivotSync(store)
	s.Reconcile(ctx, "entity_type=Carrier")

	s.Reset(ctx)

	if len(s.Filters()) != 0 {
		t.Fatalf("expected empty live, got %v", s.Filters())
	}
	if s.Location() != "/pivotTable" {
		t.Fatalf("expected empty query, got %s", s.Location())
	}
	if store.deletes != 1 {
		t.Fatalf("expected snapshot delete, got %d", store.deletes)
	}
	if got := stored(t, store, "pivot_filters:s1"); len(got) != 0 {
		t.Fatalf("expected empty storage, got %v", got)
	}
}

func TestStorageFailure_Degrades(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.PutFn = func(key string, payload []byte) error { return errors.New("quota exceeded") }
	s := newPivotSync(store)

	live := s.Reconcile(ctx, "entity_type=Carrier")

	if len(live) != 1 {
		t.Fatalf("expected live to hold URL filters, got %v", live)
	}
	if !s.Degraded() {
		t.Fatalf("expected degraded=true")
	}
	if s.Location() != "/pivotTable?entity_type=Carrier" {
		t.Fatalf("expected URL to keep filters, got %s", s.Location())
	}

	store.PutFn = nil
	s.Replace(ctx, live)
	if s.Degraded() {
		t.Fatalf("expected degraded to clear after a good write")
	}
}

// ------------------------------------------------------------
// UNLOAD + SHARE
// ------------------------------------------------------------

func TestUnload_PersistsAndConfirms(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	s := newPivotSync(store)
	s.Reconcile(ctx, "entity_type=Carrier")
	delete(store.data, "pivot_filters:s1")

	res := s.Unload(ctx)
	if !res.Persisted || !res.Confirm {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := stored(t, store, "pivot_filters:s1"); len(got) != 1 {
		t.Fatalf("expected live filters saved, got %v", got)
	}
}

func TestUnload_BeforeReconcileWritesNothing(t *testing.T) {
	store := newFakeStore()
	res := newPivotSync(store).Unload(context.Background())
	if res.Persisted || store.puts != 0 {
		t.Fatalf("expected no write, got %+v puts=%d", res, store.puts)
	}
}

func TestShare_Success(t *testing.T) {
	ctx := context.Background()
	s := newPivotSync(newFakeStore())
	s.Reconcile(ctx, "entity_type=Carrier")
	cb := &fakeClipboard{}

	res := s.Share(ctx, cb)

	if cb.last != "http://localhost:8080/pivotTable?entity_type=Carrier" {
		t.Fatalf("unexpected copied url: %s", cb.last)
	}
	if !res.Copied || res.Message != "URL copied to clipboard!" || res.Handle != "h1" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestShare_FailureLeavesFilters(t *testing.T) {
	ctx := context.Background()
	s := newPivotSync(newFakeStore())
	s.Reconcile(ctx, "entity_type=Carrier")
	cb := &fakeClipboard{WriteFn: func(string) (string, error) { return "", errors.New("denied") }}

	res := s.Share(ctx, cb)

	if res.Copied || res.Message != "Failed to copy URL" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(s.Filters()) != 1 {
		t.Fatalf("expected filters untouched, got %v", s.Filters())
	}
}
