package usecase

import (
	"carrier-records-service/internal/records/core/domain"
)

// ViewOptions configures one AggregatedTableView. The flat data table and the
// pivot table are both instances of it.
type ViewOptions struct {
	Name       string
	BasePath   string
	StorageKey string

	EnableGrouping     bool
	EnableGlobalSearch bool
	DefaultGrouping    domain.Grouping
	ShowShareReset     bool
	ConfirmOnUnload    bool
}

// DataViewOptions is the filterable table with the month/entity chart.
func DataViewOptions() ViewOptions {
	return ViewOptions{
		Name:               "data",
		BasePath:           "/",
		StorageKey:         "filters",
		EnableGlobalSearch: true,
		ShowShareReset:     true,
	}
}

// PivotViewOptions is the grouped table with the bucket-count chart.
func PivotViewOptions() ViewOptions {
	return ViewOptions{
		Name:               "pivot",
		BasePath:           "/pivotTable",
		StorageKey:         "pivot_filters",
		EnableGrouping:     true,
		EnableGlobalSearch: true,
		DefaultGrouping:    domain.GroupMonth,
		ShowShareReset:     true,
		ConfirmOnUnload:    true,
	}
}

func (o ViewOptions) columnVisibility(g domain.Grouping) map[string]bool {
	if !o.EnableGrouping {
		return map[string]bool{domain.FieldMonth: false, domain.FieldYear: false, domain.FieldWeek: false}
	}
	return g.ColumnVisibility()
}
