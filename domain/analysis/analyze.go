// Package analysis derives summary tables from a dataset for a column selection.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"mosaic/domain/dataset"
	"mosaic/domain/stats"
	"mosaic/internal/errors"
)

// Mode selects the summary operation
type Mode string

const (
	ModeDescriptive Mode = "descriptive"
	ModeTopN        Mode = "top_n"
	ModeBottomN     Mode = "bottom_n"
)

// Modes lists the supported modes in display order
var Modes = []Mode{ModeDescriptive, ModeTopN, ModeBottomN}

// IndexColumn names the statistic column of a descriptive table
const IndexColumn = "index"

func (m Mode) Valid() bool {
	switch m {
	case ModeDescriptive, ModeTopN, ModeBottomN:
		return true
	}
	return false
}

// Label is the human-readable name shown next to the mode selector
func (m Mode) Label() string {
	switch m {
	case ModeDescriptive:
		return "Descriptive Statistics"
	case ModeTopN:
		return "Top N Values"
	case ModeBottomN:
		return "Bottom N Values"
	}
	return string(m)
}

// ParseMode validates a mode string
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", errors.InvalidInput(fmt.Sprintf("unknown analysis mode %q", s))
	}
	return m, nil
}

// RowCount converts a filter value into a row count. Only positive whole
// numbers are accepted.
func RowCount(filter float64) (int, bool) {
	if math.IsNaN(filter) || math.IsInf(filter, 0) || filter < 1 || filter != math.Trunc(filter) {
		return 0, false
	}
	if filter > float64(math.MaxInt32) {
		return math.MaxInt32, true
	}
	return int(filter), true
}

// Analyze derives a table from t for the selected columns.
//
// descriptive returns one row per statistic in stats.SummaryNames order, keyed
// by IndexColumn. top_n and bottom_n return the first `filter` full rows of a
// stable sort over columns (descending or ascending); asking for more rows
// than exist returns all of them. filter is ignored for descriptive.
func Analyze(t *dataset.Table, columns []string, mode Mode, filter float64) (*dataset.Table, error) {
	cols, err := ResolveColumns(t, columns)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeDescriptive:
		return describe(t, cols)
	case ModeTopN, ModeBottomN:
		n, ok := RowCount(filter)
		if !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("%s needs a positive whole number of rows, got %v", mode, filter))
		}
		order := Rank(t, cols, mode == ModeTopN)
		if n < len(order) {
			order = order[:n]
		}
		return t.Take(order), nil
	}
	return nil, errors.InvalidInput(fmt.Sprintf("unknown analysis mode %q", mode))
}

// ResolveColumns checks every name exists and drops repeats, keeping first position
func ResolveColumns(t *dataset.Table, columns []string) ([]string, error) {
	if len(columns) == 0 {
		return nil, errors.InvalidInput("at least one column must be selected")
	}
	seen := make(map[string]bool, len(columns))
	out := make([]string, 0, len(columns))
	for _, name := range columns {
		if !t.HasColumn(name) {
			return nil, errors.UnknownColumn(name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

// describe builds the statistics table. Non-numeric columns report the count
// of present cells and leave the numeric statistics missing.
func describe(t *dataset.Table, columns []string) (*dataset.Table, error) {
	outCols := make([]dataset.Column, 0, len(columns)+1)
	outCols = append(outCols, dataset.Column{Name: IndexColumn, Kind: dataset.KindString})

	summaries := make([][]float64, len(columns))
	for i, name := range columns {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		outCols = append(outCols, dataset.Column{Name: name, Kind: dataset.KindNumeric})

		if col.Kind != dataset.KindNumeric {
			values, err := t.Values(name)
			if err != nil {
				return nil, err
			}
			present := 0
			for _, v := range values {
				if !v.IsMissing() {
					present++
				}
			}
			s := stats.Describe(nil)
			s.Count = present
			summaries[i] = s.Values()
			continue
		}

		data, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		summaries[i] = stats.Describe(data).Values()
	}

	rows := make([][]dataset.Value, len(stats.SummaryNames))
	for r, stat := range stats.SummaryNames {
		row := make([]dataset.Value, 0, len(outCols))
		row = append(row, dataset.String(stat))
		for i := range columns {
			row = append(row, dataset.Number(summaries[i][r]))
		}
		rows[r] = row
	}
	return dataset.NewTable(outCols, rows)
}

// Rank returns row positions sorted by columns, lexicographically in column
// order. Ties keep their original order and missing values sort last in both
// directions.
func Rank(t *dataset.Table, columns []string, descending bool) []int {
	idx := make([]int, 0, len(columns))
	for _, name := range columns {
		if i, ok := t.Index(name); ok {
			idx = append(idx, i)
		}
	}

	order := make([]int, t.Len())
	for i := range order {
		order[i] = i
	}
	rows := make([][]dataset.Value, t.Len())
	for i := range rows {
		rows[i] = t.Row(i)
	}

	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := rows[order[a]], rows[order[b]]
		for _, c := range idx {
			if cmp := compareForRank(ra[c], rb[c], descending); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	return order
}

func compareForRank(a, b dataset.Value, descending bool) int {
	switch {
	case a.IsMissing() && b.IsMissing():
		return 0
	case a.IsMissing():
		return 1
	case b.IsMissing():
		return -1
	}
	c := dataset.Compare(a, b)
	if descending {
		return -c
	}
	return c
}
