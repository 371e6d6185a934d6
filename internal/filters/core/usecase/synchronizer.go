package usecase

import (
	"context"
	"errors"
	"strings"

	"carrier-records-service/internal/filters/core/domain"
	"carrier-records-service/internal/filters/core/ports"

	"go.uber.org/zap"
)

var ErrInvalidPredicate = errors.New("invalid filter predicate")

const (
	shareCopiedMessage = "URL copied to clipboard!"
	shareFailedMessage = "Failed to copy URL"
)

type SynchronizerConfig struct {
	BasePath        string // view path, trailing slash dropped
	StorageKey      string // snapshot key for this view instance
	PublicBaseURL   string // scheme://host prefix used by Share
	ConfirmOnUnload bool
}

// Synchronizer keeps the live filters, the view URL and the persisted
// snapshot consistent. It is driven by one view session at a time and is not
// safe for concurrent use.
type Synchronizer struct {
	cfg     SynchronizerConfig
	live    *LiveStore
	url     *URLCodec
	persist *PersistentCodec
	log     *zap.Logger

	state    domain.SyncState
	degraded bool
}

func NewSynchronizer(cfg SynchronizerConfig, store ports.SnapshotStorePort, log *zap.Logger) *Synchronizer {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.PublicBaseURL = strings.TrimSuffix(cfg.PublicBaseURL, "/")
	return &Synchronizer{
		cfg:     cfg,
		live:    NewLiveStore(),
		url:     NewURLCodec(cfg.BasePath),
		persist: NewPersistentCodec(store, cfg.StorageKey),
		log:     log.With(zap.String("storage_key", cfg.StorageKey)),
	}
}

func (s *Synchronizer) State() domain.SyncState { return s.state }

// Degraded reports that the last storage write failed and only the URL holds
// the current filters.
func (s *Synchronizer) Degraded() bool { return s.degraded }

// Reconcile runs the first-load pass: live starts from the persisted
// snapshot, and any filter in rawQuery replaces it wholesale. Afterwards the
// result is written to the URL and to storage. Later calls return the live
// set without touching any store.
func (s *Synchronizer) Reconcile(ctx context.Context, rawQuery string) domain.FilterSet {
	if s.state == domain.Reconciled {
		return s.Filters()
	}

	initial, err := s.persist.Decode(ctx)
	if err != nil {
		s.log.Warn("loading persisted filters failed", zap.Error(err))
		initial = domain.FilterSet{}
	}

	s.url.SetRawQuery(rawQuery)
	fromURL, err := s.url.Decode(ctx)
	if err != nil {
		s.log.Warn("ignoring malformed filter query", zap.Error(err))
	} else if len(fromURL) > 0 {
		initial = fromURL
	}

	s.state = domain.Reconciled
	s.apply(ctx, initial)
	return s.Filters()
}

// Filters returns a copy of the live set.
func (s *Synchronizer) Filters() domain.FilterSet {
	fs, _ := s.live.Decode(context.Background())
	return fs
}

// Location is the current path-relative URL.
func (s *Synchronizer) Location() string { return s.url.Location() }

// URL is the absolute URL a share hands out.
func (s *Synchronizer) URL() string { return s.cfg.PublicBaseURL + s.url.Location() }

// Replace sets the whole live set, as the table reports it.
func (s *Synchronizer) Replace(ctx context.Context, ps []domain.Predicate) domain.FilterSet {
	s.ensureReconciled(ctx)
	s.apply(ctx, domain.Normalize(ps))
	return s.Filters()
}

// Set adds or replaces one predicate; an empty value removes the field.
func (s *Synchronizer) Set(ctx context.Context, p domain.Predicate) (domain.FilterSet, error) {
	if p.ID == "" {
		return nil, ErrInvalidPredicate
	}
	s.ensureReconciled(ctx)
	next := s.Filters()
	if p.Value == "" {
		next = next.Remove(p.ID)
	} else {
		next = next.Set(p)
	}
	s.apply(ctx, next)
	return s.Filters(), nil
}

// Reset removes the snapshot and empties live, which clears the URL.
func (s *Synchronizer) Reset(ctx context.Context) {
	s.ensureReconciled(ctx)
	if err := s.persist.Clear(ctx); err != nil {
		s.log.Warn("clearing persisted filters failed", zap.Error(err))
	}
	s.apply(ctx, domain.FilterSet{})
}

type UnloadResult struct {
	Persisted bool `json:"persisted"`
	Confirm   bool `json:"confirm"`
}

// Unload writes live to storage before the caller returns. Views configured
// with ConfirmOnUnload also ask for a save confirmation.
func (s *Synchronizer) Unload(ctx context.Context) UnloadResult {
	res := UnloadResult{Confirm: s.cfg.ConfirmOnUnload}
	if s.state != domain.Reconciled {
		return res
	}
	res.Persisted = s.save(ctx, s.Filters())
	return res
}

type ShareResult struct {
	URL     string
	Handle  string
	Copied  bool
	Message string
}

// Share copies the current absolute URL to clipboard. A failed copy is
// reported in the result and leaves the filters alone.
func (s *Synchronizer) Share(ctx context.Context, clipboard ports.ClipboardPort) ShareResult {
	s.ensureReconciled(ctx)
	res := ShareResult{URL: s.URL()}
	handle, err := clipboard.WriteText(ctx, res.URL)
	if err != nil {
		s.log.Error("failed to copy URL", zap.String("url", res.URL), zap.Error(err))
		res.Message = shareFailedMessage
		return res
	}
	res.Handle = handle
	res.Copied = true
	res.Message = shareCopiedMessage
	return res
}

func (s *Synchronizer) ensureReconciled(ctx context.Context) {
	if s.state == domain.Uninitialized {
		s.Reconcile(ctx, "")
	}
}

// apply is the steady-state step: live, then URL, then storage.
func (s *Synchronizer) apply(ctx context.Context, fs domain.FilterSet) {
	_ = s.live.Encode(ctx, fs)
	_ = s.url.Encode(ctx, fs)
	s.save(ctx, fs)
}

func (s *Synchronizer) save(ctx context.Context, fs domain.FilterSet) bool {
	if err := s.persist.Encode(ctx, fs); err != nil {
		s.log.Warn("persisting filters failed, keeping URL only", zap.Error(err))
		s.degraded = true
		return false
	}
	s.degraded = false
	return true
}
