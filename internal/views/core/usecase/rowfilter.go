package usecase

import (
	"strings"

	filtersdomain "carrier-records-service/internal/filters/core/domain"
	"carrier-records-service/internal/records/core/domain"
)

// FilterRows keeps rows matching every predicate and, when search is set, with
// search somewhere in columns. Matching is a case-insensitive substring test
// on the shown value.
func FilterRows(rows []domain.EnrichedRecord, fs filtersdomain.FilterSet, search string, columns []domain.ColumnDescriptor) []domain.EnrichedRecord {
	search = strings.ToLower(strings.TrimSpace(search))
	if len(fs) == 0 && search == "" {
		return rows
	}

	out := make([]domain.EnrichedRecord, 0, len(rows))
	for _, r := range rows {
		if matchesAll(r, fs) && matchesSearch(r, search, columns) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r domain.EnrichedRecord, fs filtersdomain.FilterSet) bool {
	for _, p := range fs {
		if !containsFold(r.Value(p.ID), p.Value) {
			return false
		}
	}
	return true
}

func matchesSearch(r domain.EnrichedRecord, search string, columns []domain.ColumnDescriptor) bool {
	if search == "" {
		return true
	}
	for _, c := range columns {
		if strings.Contains(strings.ToLower(r.Value(c.Field)), search) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
