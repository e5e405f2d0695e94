// Package dashboard holds the controller that turns the current input
// selection into a derived table and chart.
package dashboard

import (
	"mosaic/domain/chart"
	"mosaic/domain/dataset"
	"mosaic/internal"
)

// Options configures enrichment and chart labelling
type Options struct {
	Source             string
	IdentityKeyColumn  string
	IdentityNameColumn string
	Chart              chart.Options
}

// DefaultOptions returns the address -> ens_name enrichment and default chart labels
func DefaultOptions() Options {
	return Options{
		IdentityKeyColumn:  "address",
		IdentityNameColumn: "ens_name",
		Chart:              chart.DefaultOptions(),
	}
}

// App is built once at startup and owns the immutable dataset. It is safe
// for concurrent use since nothing it holds changes after NewApp.
type App struct {
	table    *dataset.Table
	identity *dataset.Lookup
	opts     Options
	logger   *internal.Logger
}

// NewApp builds the identity side table from the dataset. A dataset without
// the key or name column gets an empty side table so enrichment leaves names blank.
func NewApp(table *dataset.Table, opts Options, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	logger = logger.With("dashboard")

	identity, err := dataset.BuildLookup(table, opts.IdentityKeyColumn, opts.IdentityNameColumn)
	if err != nil {
		logger.Warn("identity enrichment disabled: %v", err)
		identity = dataset.NewLookup(opts.IdentityKeyColumn, opts.IdentityNameColumn)
	} else {
		logger.Info("identity side table: %d %s -> %s entries", identity.Len(), opts.IdentityKeyColumn, opts.IdentityNameColumn)
	}

	return &App{
		table:    table,
		identity: identity,
		opts:     opts,
		logger:   logger,
	}
}

// Dataset returns the loaded table
func (a *App) Dataset() *dataset.Table { return a.table }

// Options returns the options the app was built with
func (a *App) Options() Options { return a.opts }

// Info summarizes the loaded dataset
type Info struct {
	Source  string           `json:"source"`
	Rows    int              `json:"rows"`
	Columns []dataset.Column `json:"columns"`
}

func (a *App) Info() Info {
	return Info{Source: a.opts.Source, Rows: a.table.Len(), Columns: a.table.Columns()}
}

// ColumnProfile is one entry of the discovered schema
type ColumnProfile struct {
	Name    string       `json:"name"`
	Kind    dataset.Kind `json:"kind"`
	Missing int          `json:"missing"`
}

// Schema lists the dataset columns with their kinds and missing counts
func (a *App) Schema() []ColumnProfile {
	cols := a.table.Columns()
	out := make([]ColumnProfile, 0, len(cols))
	for _, c := range cols {
		values, err := a.table.Values(c.Name)
		if err != nil {
			continue
		}
		missing := 0
		for _, v := range values {
			if v.IsMissing() {
				missing++
			}
		}
		out = append(out, ColumnProfile{Name: c.Name, Kind: c.Kind, Missing: missing})
	}
	return out
}
