package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	filtersdomain "carrier-records-service/internal/filters/core/domain"
	filtersusecase "carrier-records-service/internal/filters/core/usecase"
	"carrier-records-service/internal/records/core/domain"
	recordsusecase "carrier-records-service/internal/records/core/usecase"
)

var (
	ErrGroupingDisabled = errors.New("grouping is not enabled for this view")
	ErrActionDisabled   = errors.New("share and reset are not enabled for this view")
)

// ChartModel is what the chart widget gets: records plus the axis key and the
// value keys to draw as series.
type ChartModel struct {
	AxisKey   string
	ValueKeys []string
	Entity    []domain.SeriesEntry
	Grouped   []domain.PivotEntry
}

type ViewModel struct {
	View      string
	SessionID string

	Columns          []domain.ColumnDescriptor
	ColumnVisibility map[string]bool
	Rows             []domain.EnrichedRecord
	TotalRows        int
	Loading          bool
	Errors           []string

	Filters     filtersdomain.FilterSet
	Location    string
	URL         string
	Degraded    bool
	Grouping    domain.Grouping
	GroupingKey string

	Chart ChartModel
}

type RenderInput struct {
	View      string
	SessionID string
	RawQuery  string // filter query, reserved parameters already removed
	SortField string
	SortDesc  bool
	Search    string
}

// Session is one mounted view: its own ingestion, enrichment cache, grouping
// and filter synchronizer. Every event takes mu, so the three filter stores
// only ever see one writer.
type Session struct {
	id   string
	opts ViewOptions

	mu       sync.Mutex
	ingestor *recordsusecase.Ingestor
	enricher *recordsusecase.Enricher
	syncer   *filtersusecase.Synchronizer
	grouping domain.Grouping

	enriched    []domain.EnrichedRecord
	enrichedGen uint64
	enrichedOK  bool
	lastSeen    time.Time
}

func (s *Session) ID() string { return s.id }

// Ingestor exposes the session's loader, mainly so callers can wait on Done.
func (s *Session) Ingestor() *recordsusecase.Ingestor { return s.ingestor }

func (s *Session) render(ctx context.Context, in RenderInput) *ViewModel {
	s.syncer.Reconcile(ctx, in.RawQuery)

	vm := &ViewModel{
		View:             s.opts.Name,
		SessionID:        s.id,
		Filters:          s.syncer.Filters(),
		Location:         s.syncer.Location(),
		URL:              s.syncer.URL(),
		Degraded:         s.syncer.Degraded(),
		Grouping:         s.grouping,
		GroupingKey:      s.grouping.Field(),
		ColumnVisibility: s.opts.columnVisibility(s.grouping),
		Rows:             []domain.EnrichedRecord{},
	}

	state := s.ingestor.State()
	for _, err := range state.Errors {
		vm.Errors = append(vm.Errors, err.Error())
	}
	if state.Loading {
		vm.Loading = true
		return vm
	}

	vm.Columns = append(append([]domain.ColumnDescriptor{}, state.Columns...), domain.DerivedColumns()...)
	if len(state.Columns) == 0 {
		vm.Columns = nil
	}

	rows := s.enrichedRows(state)
	vm.TotalRows = len(rows)

	search := ""
	if s.opts.EnableGlobalSearch {
		search = in.Search
	}
	visible := FilterRows(rows, vm.Filters, search, vm.Columns)
	vm.Rows = recordsusecase.Sort(visible, in.SortField, in.SortDesc)
	vm.Chart = s.chart(visible)
	return vm
}

func (s *Session) enrichedRows(state recordsusecase.LoadState) []domain.EnrichedRecord {
	if !s.enrichedOK || s.enrichedGen != state.Generation {
		s.enriched = s.enricher.Enrich(state.Rows)
		s.enrichedGen = state.Generation
		s.enrichedOK = true
	}
	return s.enriched
}

func (s *Session) chart(rows []domain.EnrichedRecord) ChartModel {
	if s.opts.EnableGrouping {
		m := ChartModel{AxisKey: s.grouping.SeriesKey(), Grouped: recordsusecase.GroupCount(rows, s.grouping)}
		if len(m.Grouped) > 0 {
			m.ValueKeys = []string{"count"}
		}
		return m
	}

	types := recordsusecase.CollectEntityTypes(rows)
	m := ChartModel{
		AxisKey: domain.SeriesAxisKey,
		Entity:  recordsusecase.ToSeries(recordsusecase.Summarize(rows), types),
	}
	for _, t := range types {
		if t != "" {
			m.ValueKeys = append(m.ValueKeys, domain.SeriesValueKey(t))
		}
	}
	return m
}

func (s *Session) setGrouping(g domain.Grouping) error {
	if !s.opts.EnableGrouping {
		return ErrGroupingDisabled
	}
	s.grouping = g
	return nil
}
