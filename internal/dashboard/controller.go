package dashboard

import (
	"mosaic/domain/analysis"
	"mosaic/domain/chart"
	"mosaic/domain/dataset"
	"mosaic/internal/errors"
)

// State of the controller for a selection
type State string

const (
	StateIdle  State = "idle"
	StateReady State = "ready"
)

// Selection is the current value of the three inputs
type Selection struct {
	Columns []string `json:"columns"`
	Mode    string   `json:"mode"`
	Filter  *float64 `json:"filter"`
}

// State reports whether the selection is complete. A selection is ready when
// a column is chosen, the mode is known and the filter is set and non-zero;
// top_n and bottom_n additionally need a positive whole number.
func (s Selection) State() State {
	if len(s.Columns) == 0 || s.Filter == nil || *s.Filter == 0 {
		return StateIdle
	}
	mode := analysis.Mode(s.Mode)
	switch mode {
	case analysis.ModeDescriptive:
		return StateReady
	case analysis.ModeTopN, analysis.ModeBottomN:
		if _, ok := analysis.RowCount(*s.Filter); ok {
			return StateReady
		}
	}
	return StateIdle
}

// ColumnDescriptor is a display column of the output table
type ColumnDescriptor struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Output is what the display surface receives for one evaluation
type Output struct {
	State   State              `json:"state"`
	Rows    []dataset.Record   `json:"data"`
	Columns []ColumnDescriptor `json:"columns"`
	Chart   *chart.Spec        `json:"chart"`

	table *dataset.Table
}

// Table returns the derived table behind Rows, or an empty table when idle
func (o *Output) Table() *dataset.Table {
	if o.table == nil {
		return dataset.Empty()
	}
	return o.table
}

// Figure returns the chart as a Plotly figure, nil without a chart
func (o *Output) Figure() map[string]interface{} {
	return o.Chart.Figure()
}

// IdleOutput is emitted for incomplete selections
func IdleOutput() *Output {
	return &Output{
		State:   StateIdle,
		Rows:    []dataset.Record{},
		Columns: []ColumnDescriptor{},
	}
}

// Evaluate recomputes everything for a selection. It depends only on the
// selection and the dataset. Repeated columns count once for the table, the
// chart and enrichment. Unknown columns fail with UNKNOWN_COLUMN;
// enrichment never fails.
func (a *App) Evaluate(sel Selection) (*Output, error) {
	if sel.State() == StateIdle {
		a.logger.Trace("selection incomplete: columns=%v mode=%q", sel.Columns, sel.Mode)
		return IdleOutput(), nil
	}

	mode := analysis.Mode(sel.Mode)
	columns, err := analysis.ResolveColumns(a.table, sel.Columns)
	if err != nil {
		return nil, errors.Wrapf(err, "%s analysis failed", mode)
	}
	derived, err := analysis.Analyze(a.table, columns, mode, *sel.Filter)
	if err != nil {
		return nil, errors.Wrapf(err, "%s analysis failed", mode)
	}

	var spec *chart.Spec
	if len(columns) >= 2 {
		spec, err = chart.Build(a.table, columns[0], columns[1], a.opts.Chart)
		if err != nil {
			return nil, errors.Wrap(err, "chart build failed")
		}
	}

	if a.selects(columns, a.opts.IdentityNameColumn) {
		derived = dataset.LeftJoin(derived, a.identity)
	}

	rows := derived.Records()
	out := &Output{
		State:   StateReady,
		Rows:    rows,
		Columns: describeColumns(rows),
		Chart:   spec,
		table:   derived,
	}
	a.logger.Debug("evaluated %s over %v: %d rows, chart=%t", mode, columns, len(rows), spec != nil)
	return out, nil
}

func (a *App) selects(columns []string, name string) bool {
	if name == "" {
		return false
	}
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}

// describeColumns derives descriptors from the keys of the first row. An
// empty result has no first row and yields no columns.
func describeColumns(rows []dataset.Record) []ColumnDescriptor {
	if len(rows) == 0 {
		return []ColumnDescriptor{}
	}
	keys := rows[0].Keys()
	out := make([]ColumnDescriptor, len(keys))
	for i, k := range keys {
		out[i] = ColumnDescriptor{Name: k, ID: k}
	}
	return out
}
