package usecase

import (
	"fmt"
	"strings"
	"time"

	"carrier-records-service/internal/records/core/domain"
)

const (
	displayLayout  = "02 Jan, 2006 03:04 PM"
	weekDateLayout = "2 Jan, 2006"
)

// timestamp layouts seen in carrier exports; tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// Enricher derives display and grouping fields. Timestamps without an offset
// are read in loc, and every derived field is rendered in loc.
type Enricher struct {
	loc *time.Location
}

func NewEnricher(loc *time.Location) *Enricher {
	if loc == nil {
		loc = time.UTC
	}
	return &Enricher{loc: loc}
}

// Enrich maps rows one to one, keeping order. An unparsable timestamp never
// aborts the batch; its derived fields carry domain.InvalidDate.
func (e *Enricher) Enrich(rows []domain.RawRecord) []domain.EnrichedRecord {
	out := make([]domain.EnrichedRecord, len(rows))
	for i, raw := range rows {
		out[i] = e.enrichOne(raw)
	}
	return out
}

func (e *Enricher) enrichOne(raw domain.RawRecord) domain.EnrichedRecord {
	rec := domain.EnrichedRecord{Raw: raw}

	rec.CreatedAt, rec.CreatedValid = e.ParseTimestamp(raw[domain.FieldCreated])
	rec.ModifiedAt, rec.ModifiedOK = e.ParseTimestamp(raw[domain.FieldModified])

	rec.ModifiedDisplay = domain.InvalidDate
	if rec.ModifiedOK {
		rec.ModifiedDisplay = rec.ModifiedAt.Format(displayLayout)
	}

	if !rec.CreatedValid {
		rec.CreatedDisplay = domain.InvalidDate
		rec.MonthLabel = domain.InvalidDate
		rec.YearLabel = domain.InvalidDate
		rec.WeekLabel = domain.InvalidDate
		return rec
	}

	t := rec.CreatedAt
	rec.CreatedDisplay = t.Format(displayLayout)
	rec.MonthLabel = t.Month().String()
	rec.YearLabel = t.Format("2006")
	rec.WeekLabel = weekLabel(t)
	return rec
}

// ParseTimestamp returns the instant in the enricher's location.
func (e *Enricher) ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, e.loc)
		if err == nil {
			return t.In(e.loc), true
		}
	}
	return time.Time{}, false
}

// ParseDisplay reads back a value rendered by the enricher.
func (e *Enricher) ParseDisplay(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(displayLayout, s, e.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// weekLabel renders "Week 23 (5 Jun, 2023 - 11 Jun, 2023)" for the ISO week,
// Monday through Sunday.
func weekLabel(t time.Time) string {
	_, week := t.ISOWeek()
	offset := (int(t.Weekday()) + 6) % 7
	start := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("Week %d (%s - %s)", week, start.Format(weekDateLayout), end.Format(weekDateLayout))
}
