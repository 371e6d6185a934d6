package usecase

import (
	"testing"

	filtersdomain "carrier-records-service/internal/filters/core/domain"
	"carrier-records-service/internal/records/core/domain"
)

func TestFilterRows(t *testing.T) {
	rows := []domain.EnrichedRecord{
		{Raw: domain.RawRecord{"legal_name": "Acme Freight", "entity_type": "Carrier"}, MonthLabel: "June"},
		{Raw: domain.RawRecord{"legal_name": "Blue Line", "entity_type": "Broker"}, MonthLabel: "July"},
	}
	cols := []domain.ColumnDescriptor{{Field: "legal_name"}, {Field: "entity_type"}}

	tests := []struct {
		name   string
		fs     filtersdomain.FilterSet
		search string
		want   int
	}{
		{"no filters", nil, "", 2},
		{"case insensitive", filtersdomain.FilterSet{{ID: "entity_type", Value: "carr"}}, "", 1},
		{"all predicates", filtersdomain.FilterSet{{ID: "entity_type", Value: "Carrier"}, {ID: "legal_name", Value: "blue"}}, "", 0},
		{"derived field", filtersdomain.FilterSet{{ID: domain.FieldMonth, Value: "jul"}}, "", 1},
		{"search", nil, " LINE ", 1},
		{"search misses hidden fields", nil, "june", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRows(rows, tt.fs, tt.search, cols)
			if len(got) != tt.want {
				t.Fatalf("expected %d rows, got %d", tt.want, len(got))
			}
		})
	}
}
