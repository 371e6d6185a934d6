package domain

import (
	"encoding/json"
	"time"
)

// RawRecord is one parsed CSV data row, keyed by header name.
type RawRecord map[string]string

const (
	FieldCreated       = "created_dt"
	FieldModified      = "data_source_modified_dt"
	FieldEntityType    = "entity_type"
	FieldCreatedShown  = "createdDisplay"
	FieldModifiedShown = "modifiedDisplay"
	FieldMonth         = "monthLabel"
	FieldYear          = "yearLabel"
	FieldWeek          = "weekLabel"
)

// InvalidDate replaces every derived field of an unparsable timestamp.
const InvalidDate = "Invalid DateTime"

type ValueKind string

const (
	KindString ValueKind = "string"
	KindDate   ValueKind = "date"
)

type ColumnDescriptor struct {
	Field        string    `json:"field"`
	DisplayLabel string    `json:"header_name"`
	ValueKind    ValueKind `json:"type"`
}

// EnrichedRecord is a RawRecord plus the fields derived from its timestamps.
type EnrichedRecord struct {
	Raw RawRecord

	CreatedAt    time.Time // zero when CreatedValid is false
	CreatedValid bool
	ModifiedAt   time.Time
	ModifiedOK   bool

	CreatedDisplay  string
	ModifiedDisplay string
	MonthLabel      string
	YearLabel       string
	WeekLabel       string
}

// Value returns what the table shows for field. Timestamp columns resolve to
// their display strings.
func (r EnrichedRecord) Value(field string) string {
	switch field {
	case FieldCreated, FieldCreatedShown:
		return r.CreatedDisplay
	case FieldModified, FieldModifiedShown:
		return r.ModifiedDisplay
	case FieldMonth:
		return r.MonthLabel
	case FieldYear:
		return r.YearLabel
	case FieldWeek:
		return r.WeekLabel
	default:
		return r.Raw[field]
	}
}

// Instant returns the parsed time behind a date column.
func (r EnrichedRecord) Instant(field string) (time.Time, bool) {
	switch field {
	case FieldCreated, FieldCreatedShown:
		return r.CreatedAt, r.CreatedValid
	case FieldModified, FieldModifiedShown:
		return r.ModifiedAt, r.ModifiedOK
	}
	return time.Time{}, false
}

func (r EnrichedRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(r.Raw)+5)
	for k, v := range r.Raw {
		out[k] = v
	}
	out[FieldCreatedShown] = r.CreatedDisplay
	out[FieldModifiedShown] = r.ModifiedDisplay
	out[FieldMonth] = r.MonthLabel
	out[FieldYear] = r.YearLabel
	out[FieldWeek] = r.WeekLabel
	return json.Marshal(out)
}
