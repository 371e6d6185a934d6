package usecase

import (
	"carrier-records-service/internal/records/core/domain"
)

// Summarize counts rows per month label and entity type.
func Summarize(rows []domain.EnrichedRecord) *domain.MonthCountMatrix {
	m := domain.NewMonthCountMatrix()
	for _, r := range rows {
		m.Add(r.MonthLabel, r.Raw[domain.FieldEntityType])
	}
	return m
}

// CollectEntityTypes returns each distinct entity type once, first seen first.
func CollectEntityTypes(rows []domain.EnrichedRecord) []string {
	seen := make(map[string]struct{})
	var types []string
	for _, r := range rows {
		t := r.Raw[domain.FieldEntityType]
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}

// ToSeries emits one entry per matrix month, in matrix order, with every
// non-empty type of allTypes present (zero when the month has none).
func ToSeries(m *domain.MonthCountMatrix, allTypes []string) []domain.SeriesEntry {
	out := make([]domain.SeriesEntry, 0, len(m.Months))
	for _, month := range m.Months {
		counts := m.Counts[month]
		entry := domain.SeriesEntry{Month: month, Counts: make(map[string]int, len(allTypes))}
		for _, t := range allTypes {
			if t == "" {
				continue
			}
			entry.Counts[t] = counts[t]
		}
		out = append(out, entry)
	}
	return out
}

// GroupCount counts rows per label of the grouping's derived field, labels in
// first-seen order. GroupNone yields no series.
func GroupCount(rows []domain.EnrichedRecord, g domain.Grouping) []domain.PivotEntry {
	field := g.Field()
	if field == "" {
		return nil
	}

	key := g.SeriesKey()
	index := make(map[string]int)
	var out []domain.PivotEntry
	for _, r := range rows {
		label := r.Value(field)
		if i, ok := index[label]; ok {
			out[i].Count++
			continue
		}
		index[label] = len(out)
		out = append(out, domain.PivotEntry{Key: key, Label: label, Count: 1})
	}
	return out
}
