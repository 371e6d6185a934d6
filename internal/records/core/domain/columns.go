package domain

// recognizedColumns maps a CSV header to its table label. Headers outside this
// table stay on the RawRecord but get no column.
var recognizedColumns = map[string]string{
	"created_dt":              "Created_DT",
	"data_source_modified_dt": "Modifed_DT",
	"entity_type":             "Entity",
	"operating_status":        "Operating status",
	"legal_name":              "Legal name",
	"dba_name":                "DBA name",
	"physical_address":        "Physical address",
	"phone":                   "Phone",
	"usdot_number":            "DOT",
	"mc_mx_ff_number":         "MC/MX/FF",
	"power_units":             "Power units",
	"out_of_service_date":     "Out of service date",
}

func IsDateField(field string) bool {
	return field == FieldCreated || field == FieldModified
}

// ColumnLabel reports the display label of a recognized header.
func ColumnLabel(field string) (string, bool) {
	label, ok := recognizedColumns[field]
	return label, ok
}

// BuildColumns keeps the recognized headers in header order.
func BuildColumns(headers []string) []ColumnDescriptor {
	cols := make([]ColumnDescriptor, 0, len(headers))
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		label, ok := recognizedColumns[h]
		if !ok {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}

		kind := KindString
		if IsDateField(h) {
			kind = KindDate
		}
		cols = append(cols, ColumnDescriptor{Field: h, DisplayLabel: label, ValueKind: kind})
	}
	return cols
}

// DerivedColumns are the grouping columns appended after the CSV columns.
func DerivedColumns() []ColumnDescriptor {
	return []ColumnDescriptor{
		{Field: FieldMonth, DisplayLabel: "Month", ValueKind: KindString},
		{Field: FieldYear, DisplayLabel: "Year", ValueKind: KindString},
		{Field: FieldWeek, DisplayLabel: "Week", ValueKind: KindString},
	}
}
