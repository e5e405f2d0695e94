package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mosaic/internal/errors"
)

// missingMarkers are cell contents read as missing, in addition to the empty string
var missingMarkers = map[string]bool{
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
	"#n/a": true,
}

// IsMissingCell reports whether a raw cell should be read as a missing value
func IsMissingCell(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || missingMarkers[strings.ToLower(s)]
}

// parseNumber accepts finite floats only
func parseNumber(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// InferKind returns KindNumeric when every non-missing cell parses as a number.
// Columns with no values at all are numeric, like an all-NaN column.
func InferKind(cells []string) Kind {
	for _, c := range cells {
		if IsMissingCell(c) {
			continue
		}
		if _, ok := parseNumber(c); !ok {
			return KindString
		}
	}
	return KindNumeric
}

// ParseCell converts a raw cell according to the column kind
func ParseCell(raw string, kind Kind) Value {
	if IsMissingCell(raw) {
		return Missing()
	}
	if kind == KindNumeric {
		if f, ok := parseNumber(raw); ok {
			return Number(f)
		}
	}
	return String(strings.TrimSpace(raw))
}

// FromStrings builds a table from a header row and raw string rows, discovering
// the schema from the data. Short rows are padded with missing values and
// cells beyond the header are ignored.
func FromStrings(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, errors.InvalidInput("header row is empty")
	}
	names := uniqueHeaders(header)

	cols := make([]Column, len(names))
	for j, name := range names {
		cells := make([]string, len(rows))
		for i, row := range rows {
			if j < len(row) {
				cells[i] = row[j]
			}
		}
		cols[j] = Column{Name: name, Kind: InferKind(cells)}
	}

	values := make([][]Value, len(rows))
	for i, row := range rows {
		vals := make([]Value, len(cols))
		for j, col := range cols {
			if j < len(row) {
				vals[j] = ParseCell(row[j], col.Kind)
			}
		}
		values[i] = vals
	}
	return NewTable(cols, values)
}

// uniqueHeaders trims names, fills blanks as "Unnamed: i" and suffixes
// repeated names with ".1", ".2", ...
func uniqueHeaders(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for seen[name] > 0 {
			name = fmt.Sprintf("%s.%d", base, seen[base])
			seen[base]++
		}
		seen[name]++
		names[i] = name
	}
	return names
}
