package usecase

import (
	"context"
	"errors"
	"sync"

	"carrier-records-service/internal/records/core/domain"
	"carrier-records-service/internal/records/core/ports"

	"go.uber.org/zap"
)

var ErrInvalidLocator = errors.New("invalid source locator")

// LoadState is the ingestion snapshot a view renders from.
type LoadState struct {
	Rows    []domain.RawRecord
	Columns []domain.ColumnDescriptor
	Loading bool
	Errors  []error

	Generation uint64
}

// Ingestor runs one fetch-and-parse per Load. Every Load starts a new
// generation; results of an older generation are dropped when they arrive.
type Ingestor struct {
	source ports.RecordSourcePort
	log    *zap.Logger

	mu         sync.Mutex
	generation uint64
	state      LoadState
	done       chan struct{}
}

func NewIngestor(source ports.RecordSourcePort, log *zap.Logger) *Ingestor {
	if log == nil {
		log = zap.NewNop()
	}
	done := make(chan struct{})
	close(done)
	return &Ingestor{source: source, log: log, done: done}
}

// Load starts fetching locator and returns at once. State reports Loading
// until this generation settles.
func (in *Ingestor) Load(ctx context.Context, locator string) {
	in.mu.Lock()
	in.generation++
	gen := in.generation
	in.state = LoadState{Loading: true}
	done := make(chan struct{})
	in.done = done
	in.mu.Unlock()

	if locator == "" {
		in.settle(gen, done, nil, nil, ErrInvalidLocator)
		return
	}

	go func() {
		headers, rows, err := in.source.Fetch(ctx, locator)
		in.settle(gen, done, headers, rows, err)
	}()
}

func (in *Ingestor) settle(gen uint64, done chan struct{}, headers []string, rows []domain.RawRecord, err error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	defer close(done)

	if gen != in.generation {
		in.log.Info("discarding stale ingestion result",
			zap.Uint64("generation", gen),
			zap.Uint64("current", in.generation))
		return
	}

	if err != nil {
		in.log.Warn("ingestion failed", zap.Error(err))
		in.state = LoadState{Errors: []error{err}}
		return
	}

	var cols []domain.ColumnDescriptor
	if len(rows) > 0 {
		cols = domain.BuildColumns(headers)
	}
	in.state = LoadState{Rows: rows, Columns: cols}
}

// State returns a snapshot; slices are shared and must not be mutated.
func (in *Ingestor) State() LoadState {
	in.mu.Lock()
	defer in.mu.Unlock()
	st := in.state
	st.Generation = in.generation
	return st
}

// Done is closed once the latest Load has settled.
func (in *Ingestor) Done() <-chan struct{} {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.done
}

// Generation is the number of Load calls so far.
func (in *Ingestor) Generation() uint64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.generation
}
