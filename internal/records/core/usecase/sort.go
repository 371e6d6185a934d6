package usecase

import (
	"slices"
	"strings"

	"carrier-records-service/internal/records/core/domain"
)

// CompareInstants orders two date cells by their parsed instant: -1 when a is
// later than b, otherwise 1. Equal instants compare as 1, so the comparator
// is not symmetric; the table's sort toggle depends on that.
func CompareInstants(a, b domain.EnrichedRecord, field string) int {
	ta, _ := a.Instant(field)
	tb, _ := b.Instant(field)
	if ta.After(tb) {
		return -1
	}
	return 1
}

// Sort returns a sorted copy of rows. Date columns use CompareInstants, every
// other column compares the shown strings. desc reverses the column order.
func Sort(rows []domain.EnrichedRecord, field string, desc bool) []domain.EnrichedRecord {
	out := slices.Clone(rows)
	if field == "" {
		return out
	}

	cmp := func(a, b domain.EnrichedRecord) int {
		return strings.Compare(a.Value(field), b.Value(field))
	}
	if domain.IsDateField(field) || field == domain.FieldCreatedShown || field == domain.FieldModifiedShown {
		cmp = func(a, b domain.EnrichedRecord) int {
			return CompareInstants(a, b, field)
		}
	}

	if desc {
		asc := cmp
		cmp = func(a, b domain.EnrichedRecord) int { return -asc(a, b) }
	}

	slices.SortStableFunc(out, cmp)
	return out
}
