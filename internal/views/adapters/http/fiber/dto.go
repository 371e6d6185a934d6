package fiber

import (
	filtersdomain "carrier-records-service/internal/filters/core/domain"
	"carrier-records-service/internal/records/core/domain"
)

type PredicateDTO struct {
	ID    string `json:"id" example:"entity_type"`
	Value string `json:"value" example:"CARRIER"`
}

type ReplaceFiltersRequest struct {
	Filters []PredicateDTO `json:"filters"`
}

type SetFilterRequest struct {
	ID    string `json:"id" example:"operating_status"`
	Value string `json:"value" example:"AUTHORIZED"`
}

type GroupingRequest struct {
	Grouping string `json:"grouping" example:"Week"`
}

type ChartResponse struct {
	AxisKey   string   `json:"axis_key" example:"month"`
	ValueKeys []string `json:"value_keys"`
	// []SeriesEntry for the data view, []PivotEntry for the pivot view
	Series any `json:"series" swaggertype:"array,object"`
}

type ViewResponse struct {
	View             string                    `json:"view" example:"pivot"`
	SessionID        string                    `json:"session_id"`
	Loading          bool                      `json:"loading"`
	Errors           []string                  `json:"errors"`
	Columns          []domain.ColumnDescriptor `json:"columns"`
	ColumnVisibility map[string]bool           `json:"column_visibility"`
	Rows             []domain.EnrichedRecord   `json:"rows" swaggertype:"array,object"`
	TotalRows        int                       `json:"total_rows"`
	VisibleRows      int                       `json:"visible_rows"`
	Filters          []PredicateDTO            `json:"filters"`
	Location         string                    `json:"location" example:"/pivotTable?entity_type=CARRIER"`
	URL              string                    `json:"url"`
	Degraded         bool                      `json:"storage_degraded"`
	Grouping         string                    `json:"grouping" example:"Month"`
	GroupingKey      string                    `json:"grouping_key,omitempty" example:"monthLabel"`
	Chart            ChartResponse             `json:"chart"`
}

type ShareResponse struct {
	URL     string `json:"url"`
	ShareID string `json:"share_id,omitempty"`
	Copied  bool   `json:"copied"`
	Message string `json:"message" example:"URL copied to clipboard!"`
}

type UnloadResponse struct {
	Persisted bool   `json:"persisted"`
	Confirm   bool   `json:"confirm"`
	Message   string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message" example:"invalid filter predicate"`
}

func toPredicateDTOs(fs filtersdomain.FilterSet) []PredicateDTO {
	out := make([]PredicateDTO, 0, len(fs))
	for _, p := range fs {
		out = append(out, PredicateDTO{ID: p.ID, Value: p.Value})
	}
	return out
}

func fromPredicateDTOs(in []PredicateDTO) []filtersdomain.Predicate {
	out := make([]filtersdomain.Predicate, 0, len(in))
	for _, p := range in {
		out = append(out, filtersdomain.Predicate{ID: p.ID, Value: p.Value})
	}
	return out
}
