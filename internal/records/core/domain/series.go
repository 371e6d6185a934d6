package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MonthCountMatrix is month label -> entity type -> count. Months keeps the
// order in which each month was first seen.
type MonthCountMatrix struct {
	Months []string
	Counts map[string]map[string]int
}

func NewMonthCountMatrix() *MonthCountMatrix {
	return &MonthCountMatrix{Counts: map[string]map[string]int{}}
}

func (m *MonthCountMatrix) Add(month, entityType string) {
	row, ok := m.Counts[month]
	if !ok {
		row = map[string]int{}
		m.Counts[month] = row
		m.Months = append(m.Months, month)
	}
	row[entityType]++
}

// SeriesAxisKey is the axis field of every SeriesEntry.
const SeriesAxisKey = "month"

// SeriesValueKey is the JSON key an entity type is charted under. A type
// named like the axis key gets a suffix so it cannot overwrite the axis label.
func SeriesValueKey(entityType string) string {
	if entityType == SeriesAxisKey {
		return entityType + " (entity)"
	}
	return entityType
}

// SeriesEntry is one chart bar group: {"month": ..., <entityType>: count, ...}.
type SeriesEntry struct {
	Month  string
	Counts map[string]int
}

func (e SeriesEntry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Counts)+1)
	for k, v := range e.Counts {
		out[SeriesValueKey(k)] = v
	}
	out[SeriesAxisKey] = e.Month
	return json.Marshal(out)
}

// PivotEntry is {"<seriesKey>": label, "count": n}.
type PivotEntry struct {
	Key   string
	Label string
	Count int
}

func (e PivotEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		e.Key:   e.Label,
		"count": e.Count,
	})
}

// Grouping is the pivot view's time bucket. The zero value means no grouping.
type Grouping string

const (
	GroupNone  Grouping = ""
	GroupMonth Grouping = "Month"
	GroupYear  Grouping = "Year"
	GroupWeek  Grouping = "Week"
)

var ErrUnknownGrouping = errors.New("unknown grouping")

// ParseGrouping accepts the menu labels; "Clear" maps to no grouping.
func ParseGrouping(s string) (Grouping, error) {
	switch strings.TrimSpace(s) {
	case "", "Clear":
		return GroupNone, nil
	case "Month":
		return GroupMonth, nil
	case "Year":
		return GroupYear, nil
	case "Week":
		return GroupWeek, nil
	}
	return GroupNone, fmt.Errorf("%w: %q", ErrUnknownGrouping, s)
}

// Field is the derived record field a grouping buckets by.
func (g Grouping) Field() string {
	switch g {
	case GroupMonth:
		return FieldMonth
	case GroupYear:
		return FieldYear
	case GroupWeek:
		return FieldWeek
	}
	return ""
}

// SeriesKey is the chart axis key, e.g. "month".
func (g Grouping) SeriesKey() string {
	return strings.ToLower(string(g))
}

// ColumnVisibility mirrors which derived column the pivot table shows.
func (g Grouping) ColumnVisibility() map[string]bool {
	vis := map[string]bool{FieldMonth: false, FieldYear: false, FieldWeek: false}
	switch g {
	case GroupYear:
		vis[FieldYear] = true
	case GroupWeek:
		vis[FieldWeek] = true
	default:
		vis[FieldMonth] = true
	}
	return vis
}
