package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"mosaic/internal/errors"
)

// Column describes a named, typed column
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Table is an in-memory, row-major table. Tables are never mutated once
// built; operations return new tables that may share row slices.
type Table struct {
	columns []Column
	rows    [][]Value
	index   map[string]int
}

// NewTable validates column names and row widths
func NewTable(columns []Column, rows [][]Value) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c.Name]; dup {
			return nil, errors.InvalidInput(fmt.Sprintf("duplicate column %q", c.Name))
		}
		index[c.Name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d has %d values, want %d", i, len(row), len(columns)))
		}
	}
	return &Table{columns: columns, rows: rows, index: index}, nil
}

// Empty returns a table with the given columns and no rows
func Empty(columns ...Column) *Table {
	t, err := NewTable(columns, nil)
	if err != nil {
		return &Table{index: map[string]int{}}
	}
	return t
}

func (t *Table) Len() int          { return len(t.rows) }
func (t *Table) Columns() []Column { return append([]Column(nil), t.columns...) }

// ColumnNames returns the column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of a column
func (t *Table) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks up a column descriptor, failing with UNKNOWN_COLUMN
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, errors.UnknownColumn(name)
	}
	return t.columns[i], nil
}

// Values returns a copy of a column's cells
func (t *Table) Values(name string) ([]Value, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.UnknownColumn(name)
	}
	out := make([]Value, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Floats returns the numeric cells of a column, skipping missing and non-numeric values
func (t *Table) Floats(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, errors.UnknownColumn(name)
	}
	out := make([]float64, 0, len(t.rows))
	for _, row := range t.rows {
		if f, ok := row[i].Float(); ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// Cell returns the value at row r of the named column
func (t *Table) Cell(r int, name string) (Value, bool) {
	i, ok := t.index[name]
	if !ok || r < 0 || r >= len(t.rows) {
		return Missing(), false
	}
	return t.rows[r][i], true
}

// Row returns a copy of row r
func (t *Table) Row(r int) []Value {
	return append([]Value(nil), t.rows[r]...)
}

// Take returns the rows at the given positions, in that order
func (t *Table) Take(positions []int) *Table {
	rows := make([][]Value, len(positions))
	for i, p := range positions {
		rows[i] = t.rows[p]
	}
	return &Table{columns: t.columns, rows: rows, index: t.index}
}

// Records returns every row as a record
func (t *Table) Records() []Record {
	names := t.ColumnNames()
	out := make([]Record, len(t.rows))
	for i, row := range t.rows {
		out[i] = Record{keys: names, values: append([]Value(nil), row...)}
	}
	return out
}

// Record is one row with its keys in column order
type Record struct {
	keys   []string
	values []Value
}

// NewRecord pairs keys and values; extra values are dropped and missing ones padded
func NewRecord(keys []string, values []Value) Record {
	vals := make([]Value, len(keys))
	copy(vals, values)
	return Record{keys: append([]string(nil), keys...), values: vals}
}

func (r Record) Keys() []string { return append([]string(nil), r.keys...) }

// Get returns the value stored under key
func (r Record) Get(key string) (Value, bool) {
	for i, k := range r.keys {
		if k == key {
			return r.values[i], true
		}
	}
	return Missing(), false
}

// MarshalJSON writes the record as an object whose keys keep column order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
