package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	filtersdomain "carrier-records-service/internal/filters/core/domain"
	filtersports "carrier-records-service/internal/filters/core/ports"
	filtersusecase "carrier-records-service/internal/filters/core/usecase"
	"carrier-records-service/internal/records/core/domain"
	recordsports "carrier-records-service/internal/records/core/ports"
	recordsusecase "carrier-records-service/internal/records/core/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUnknownView      = errors.New("unknown view")
	ErrInvalidSessionID = errors.New("invalid session id")
	ErrSessionNotFound  = errors.New("view session not found")
)

type Config struct {
	SourceLocator string
	PublicBaseURL string
	FetchTimeout  time.Duration
	SessionTTL    time.Duration
}

type Deps struct {
	Source    recordsports.RecordSourcePort
	Snapshots filtersports.SnapshotStorePort
	Clipboard filtersports.ClipboardPort
	Links     filtersports.ShareResolverPort
	Enricher  *recordsusecase.Enricher
	Log       *zap.Logger
}

// SessionRef names one mounted view.
type SessionRef struct {
	View      string
	SessionID string
}

type FiltersInput struct {
	SessionRef
	Filters []filtersdomain.Predicate
}

type SetFilterInput struct {
	SessionRef
	Filter filtersdomain.Predicate
}

type GroupingInput struct {
	SessionRef
	Grouping string
}

// ViewsUseCase owns the registered views and their mounted sessions.
type ViewsUseCase struct {
	cfg   Config
	deps  Deps
	log   *zap.Logger
	views map[string]ViewOptions
	now   func() time.Time

	mu       sync.Mutex
	sessions map[SessionRef]*Session
}

func NewViewsUseCase(cfg Config, deps Deps, views ...ViewOptions) *ViewsUseCase {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Enricher == nil {
		deps.Enricher = recordsusecase.NewEnricher(time.UTC)
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	uc := &ViewsUseCase{
		cfg:      cfg,
		deps:     deps,
		log:      deps.Log,
		views:    make(map[string]ViewOptions, len(views)),
		now:      time.Now,
		sessions: map[SessionRef]*Session{},
	}
	for _, v := range views {
		uc.views[v.Name] = v
	}
	return uc
}

// Mount returns the session for ref, creating it (and starting its
// ingestion) on first use. An empty session id gets a fresh one.
func (uc *ViewsUseCase) Mount(ref SessionRef) (*Session, error) {
	opts, ok := uc.views[ref.View]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, ref.View)
	}
	if ref.SessionID == "" {
		ref.SessionID = uuid.NewString()
	} else if _, err := uuid.Parse(ref.SessionID); err != nil {
		return nil, ErrInvalidSessionID
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if s, ok := uc.sessions[ref]; ok {
		return s, nil
	}

	s := &Session{
		id:       ref.SessionID,
		opts:     opts,
		ingestor: recordsusecase.NewIngestor(uc.deps.Source, uc.log.With(zap.String("view", opts.Name))),
		enricher: uc.deps.Enricher,
		syncer: filtersusecase.NewSynchronizer(filtersusecase.SynchronizerConfig{
			BasePath:        opts.BasePath,
			StorageKey:      opts.StorageKey + ":" + ref.SessionID,
			PublicBaseURL:   uc.cfg.PublicBaseURL,
			ConfirmOnUnload: opts.ConfirmOnUnload,
		}, uc.deps.Snapshots, uc.log),
		grouping: opts.DefaultGrouping,
		lastSeen: uc.now(),
	}
	uc.load(s)
	uc.sessions[ref] = s
	return s, nil
}

func (uc *ViewsUseCase) load(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.cfg.FetchTimeout)
	s.ingestor.Load(ctx, uc.cfg.SourceLocator)
	done := s.ingestor.Done()
	go func() {
		<-done
		cancel()
	}()
}

// lookup returns an already mounted session. Only Render mounts new ones.
func (uc *ViewsUseCase) lookup(ref SessionRef) (*Session, error) {
	if _, ok := uc.views[ref.View]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, ref.View)
	}
	if ref.SessionID == "" {
		return nil, ErrInvalidSessionID
	}

	uc.mu.Lock()
	s, ok := uc.sessions[ref]
	uc.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, ref.SessionID)
	}
	return s, nil
}

func (uc *ViewsUseCase) withSession(ref SessionRef, fn func(s *Session) error) (*Session, error) {
	s, err := uc.lookup(ref)
	if err != nil {
		return nil, err
	}
	return uc.run(s, fn)
}

func (uc *ViewsUseCase) run(s *Session, fn func(s *Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = uc.now()
	if err := fn(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Render is the view's first paint and every repaint. It is the only
// operation that mounts a session; the first call for a session reconciles
// filters against in.RawQuery.
func (uc *ViewsUseCase) Render(ctx context.Context, in RenderInput) (*ViewModel, error) {
	s, err := uc.Mount(SessionRef{View: in.View, SessionID: in.SessionID})
	if err != nil {
		return nil, err
	}
	var vm *ViewModel
	_, err = uc.run(s, func(s *Session) error {
		vm = s.render(ctx, in)
		return nil
	})
	return vm, err
}

func (uc *ViewsUseCase) ReplaceFilters(ctx context.Context, in FiltersInput) (*ViewModel, error) {
	return uc.mutate(ctx, in.SessionRef, func(s *Session) error {
		for _, p := range in.Filters {
			if p.ID == "" {
				return filtersusecase.ErrInvalidPredicate
			}
		}
		s.syncer.Replace(ctx, in.Filters)
		return nil
	})
}

func (uc *ViewsUseCase) SetFilter(ctx context.Context, in SetFilterInput) (*ViewModel, error) {
	return uc.mutate(ctx, in.SessionRef, func(s *Session) error {
		_, err := s.syncer.Set(ctx, in.Filter)
		return err
	})
}

func (uc *ViewsUseCase) SetGrouping(ctx context.Context, in GroupingInput) (*ViewModel, error) {
	g, err := domain.ParseGrouping(in.Grouping)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, in.SessionRef, func(s *Session) error {
		return s.setGrouping(g)
	})
}

func (uc *ViewsUseCase) Reset(ctx context.Context, ref SessionRef) (*ViewModel, error) {
	return uc.mutate(ctx, ref, func(s *Session) error {
		if !s.opts.ShowShareReset {
			return ErrActionDisabled
		}
		s.syncer.Reset(ctx)
		return nil
	})
}

// Reload remounts the data: a new ingestion generation supersedes any fetch
// still in flight.
func (uc *ViewsUseCase) Reload(ctx context.Context, ref SessionRef) (*ViewModel, error) {
	return uc.mutate(ctx, ref, func(s *Session) error {
		uc.load(s)
		return nil
	})
}

func (uc *ViewsUseCase) Share(ctx context.Context, ref SessionRef) (filtersusecase.ShareResult, error) {
	var res filtersusecase.ShareResult
	_, err := uc.withSession(ref, func(s *Session) error {
		if !s.opts.ShowShareReset {
			return ErrActionDisabled
		}
		res = s.syncer.Share(ctx, uc.deps.Clipboard)
		return nil
	})
	return res, err
}

// Unload persists the live filters before returning.
func (uc *ViewsUseCase) Unload(ctx context.Context, ref SessionRef) (filtersusecase.UnloadResult, error) {
	var res filtersusecase.UnloadResult
	_, err := uc.withSession(ref, func(s *Session) error {
		res = s.syncer.Unload(ctx)
		return nil
	})
	return res, err
}

func (uc *ViewsUseCase) ResolveShare(ctx context.Context, handle string) (string, error) {
	if uc.deps.Links == nil {
		return "", filtersports.ErrShareNotFound
	}
	return uc.deps.Links.Resolve(ctx, handle)
}

func (uc *ViewsUseCase) mutate(ctx context.Context, ref SessionRef, fn func(s *Session) error) (*ViewModel, error) {
	var vm *ViewModel
	_, err := uc.withSession(ref, func(s *Session) error {
		if err := fn(s); err != nil {
			return err
		}
		vm = s.render(ctx, RenderInput{View: ref.View, SessionID: s.id})
		return nil
	})
	return vm, err
}

// Sweep drops sessions idle for longer than the configured TTL, persisting
// their filters first. It returns how many were dropped.
func (uc *ViewsUseCase) Sweep(ctx context.Context) int {
	if uc.cfg.SessionTTL <= 0 {
		return 0
	}
	cutoff := uc.now().Add(-uc.cfg.SessionTTL)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	dropped := 0
	for ref, s := range uc.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		if idle {
			s.syncer.Unload(ctx)
		}
		s.mu.Unlock()
		if idle {
			delete(uc.sessions, ref)
			dropped++
		}
	}
	return dropped
}

// Flush persists the live filters of every mounted session.
func (uc *ViewsUseCase) Flush(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, s := range uc.sessions {
		s.mu.Lock()
		s.syncer.Unload(ctx)
		s.mu.Unlock()
	}
}

// RunJanitor sweeps every interval until ctx is done.
func (uc *ViewsUseCase) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := uc.Sweep(ctx); n > 0 {
				uc.log.Info("expired view sessions", zap.Int("count", n))
			}
		}
	}
}
