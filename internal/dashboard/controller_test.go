package dashboard

import (
	"encoding/json"
	"testing"

	"mosaic/domain/analysis"
	"mosaic/domain/dataset"
	"mosaic/domain/stats"
	"mosaic/internal"
	"mosaic/internal/errors"
	"mosaic/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	table, err := dataset.FromStrings(
		[]string{"address", "score", "ens_name"},
		[][]string{
			{"0x01", "40", "alice.eth"},
			{"0x02", "90", ""},
			{"0x03", "65", "carol.eth"},
			{"0x04", "90", ""},
			{"0x01", "15", ""},
		},
	)
	require.NoError(t, err)
	opts := DefaultOptions()
	opts.Source = "simple.csv"
	return NewApp(table, opts, internal.NewLogger(internal.LogLevelError))
}

func filter(f float64) *float64 { return &f }

func TestSelectionState(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want State
	}{
		{"no columns", Selection{Mode: "top_n", Filter: filter(2)}, StateIdle},
		{"no mode", Selection{Columns: []string{"score"}, Filter: filter(2)}, StateIdle},
		{"unknown mode", Selection{Columns: []string{"score"}, Mode: "median", Filter: filter(2)}, StateIdle},
		{"no filter", Selection{Columns: []string{"score"}, Mode: "descriptive"}, StateIdle},
		{"zero filter", Selection{Columns: []string{"score"}, Mode: "descriptive", Filter: filter(0)}, StateIdle},
		{"fractional top_n", Selection{Columns: []string{"score"}, Mode: "top_n", Filter: filter(1.5)}, StateIdle},
		{"negative bottom_n", Selection{Columns: []string{"score"}, Mode: "bottom_n", Filter: filter(-3)}, StateIdle},
		{"descriptive any filter", Selection{Columns: []string{"score"}, Mode: "descriptive", Filter: filter(-0.5)}, StateReady},
		{"top_n", Selection{Columns: []string{"score"}, Mode: "top_n", Filter: filter(2)}, StateReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.State())
		})
	}
}

func TestEvaluate_IdleEmitsEmptyOutput(t *testing.T) {
	app := newTestApp(t)

	out, err := app.Evaluate(Selection{Columns: []string{"score"}, Mode: "top_n"})
	require.NoError(t, err)

	assert.Equal(t, StateIdle, out.State)
	assert.Empty(t, out.Rows)
	assert.Empty(t, out.Columns)
	assert.Nil(t, out.Chart)
	assert.Equal(t, 0, out.Table().Len())

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"idle","data":[],"columns":[],"chart":null}`, string(b))
}

func TestEvaluate_TopN(t *testing.T) {
	app := newTestApp(t)

	out, err := app.Evaluate(Selection{Columns: []string{"score"}, Mode: "top_n", Filter: filter(2)})
	require.NoError(t, err)

	assert.Equal(t, StateReady, out.State)
	require.Len(t, out.Rows, 2)
	first, _ := out.Rows[0].Get("address")
	second, _ := out.Rows[1].Get("address")
	assert.Equal(t, "0x02", first.String())
	assert.Equal(t, "0x04", second.String())
	assert.Nil(t, out.Chart, "one column draws no chart")
	assert.Equal(t, []ColumnDescriptor{
		{Name: "address", ID: "address"},
		{Name: "score", ID: "score"},
		{Name: "ens_name", ID: "ens_name"},
	}, out.Columns)
}

func TestEvaluate_DescriptiveWithChart(t *testing.T) {
	app := newTestApp(t)

	out, err := app.Evaluate(Selection{Columns: []string{"score", "address"}, Mode: "descriptive", Filter: filter(1)})
	require.NoError(t, err)

	require.Len(t, out.Rows, len(stats.SummaryNames))
	assert.Equal(t, []string{analysis.IndexColumn, "score", "address"}, out.Rows[0].Keys())

	require.NotNil(t, out.Chart)
	assert.Equal(t, "score", out.Chart.XColumn)
	assert.Equal(t, "address", out.Chart.YColumn)
	assert.NotNil(t, out.Figure())
}

func TestEvaluate_EnrichmentKeepsRowCount(t *testing.T) {
	app := newTestApp(t)

	for _, n := range []float64{1, 3, 5, 9} {
		out, err := app.Evaluate(Selection{Columns: []string{"score", "ens_name"}, Mode: "bottom_n", Filter: filter(n)})
		require.NoError(t, err)

		want := int(n)
		if want > 5 {
			want = 5
		}
		assert.Len(t, out.Rows, want, "n=%v", n)
	}

	// lowest score row is 0x01 without a name; the side table fills it
	out, err := app.Evaluate(Selection{Columns: []string{"score", "ens_name"}, Mode: "bottom_n", Filter: filter(1)})
	require.NoError(t, err)
	name, _ := out.Rows[0].Get("ens_name")
	assert.Equal(t, "alice.eth", name.String())
}

func TestEvaluate_DescriptiveWithNameColumn(t *testing.T) {
	app := newTestApp(t)

	out, err := app.Evaluate(Selection{Columns: []string{"ens_name"}, Mode: "descriptive", Filter: filter(1)})
	require.NoError(t, err)
	assert.Len(t, out.Rows, len(stats.SummaryNames))
	assert.Equal(t, []string{analysis.IndexColumn, "ens_name"}, out.Rows[0].Keys())
}

func TestEvaluate_UnknownColumn(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Evaluate(Selection{Columns: []string{"wallet", "score"}, Mode: "top_n", Filter: filter(2)})
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnknownColumn, errors.GetCode(err))
}

func TestEvaluate_RepeatedColumnsCountOnce(t *testing.T) {
	app := newTestApp(t)

	out, err := app.Evaluate(Selection{Columns: []string{"score", "score"}, Mode: "top_n", Filter: filter(2)})
	require.NoError(t, err)
	assert.Len(t, out.Rows, 2)
	assert.Nil(t, out.Chart, "one distinct column draws no chart")

	out, err = app.Evaluate(Selection{Columns: []string{"score", "score", "address"}, Mode: "descriptive", Filter: filter(1)})
	require.NoError(t, err)
	assert.Equal(t, []string{analysis.IndexColumn, "score", "address"}, out.Rows[0].Keys())
	require.NotNil(t, out.Chart)
	assert.Equal(t, "score", out.Chart.XColumn)
	assert.Equal(t, "address", out.Chart.YColumn)
}

func TestEvaluate_EmptyDataset(t *testing.T) {
	table, err := dataset.FromStrings([]string{"address", "score"}, nil)
	require.NoError(t, err)
	app := NewApp(table, DefaultOptions(), internal.NewLogger(internal.LogLevelError))

	out, err := app.Evaluate(Selection{Columns: []string{"score"}, Mode: "top_n", Filter: filter(3)})
	require.NoError(t, err)
	assert.Equal(t, StateReady, out.State)
	assert.Empty(t, out.Rows)
	assert.Empty(t, out.Columns, "no first row to read columns from")
}

func TestEvaluate_Deterministic(t *testing.T) {
	app := newTestApp(t)
	sel := Selection{Columns: []string{"address", "score"}, Mode: "top_n", Filter: filter(3)}

	a, err := app.Evaluate(sel)
	require.NoError(t, err)
	b, err := app.Evaluate(sel)
	require.NoError(t, err)

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	assert.JSONEq(t, string(ja), string(jb))
}

func TestApp_Schema(t *testing.T) {
	app := newTestApp(t)

	schema := app.Schema()
	require.Len(t, schema, 3)
	assert.Equal(t, ColumnProfile{Name: "ens_name", Kind: dataset.KindString, Missing: 3}, schema[2])

	info := app.Info()
	assert.Equal(t, "simple.csv", info.Source)
	assert.Equal(t, 5, info.Rows)
}

func TestEvaluate_GeneratedDatasets(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		config := testkit.DefaultAirdropConfig()
		config.WalletCount = 60
		config.Seed = seed
		table, err := testkit.NewAirdropDataGenerator(config).GenerateTable()
		require.NoError(t, err)
		app := NewApp(table, DefaultOptions(), internal.NewLogger(internal.LogLevelError))

		for _, mode := range analysis.Modes {
			for _, n := range []float64{1, 10, 60, 100} {
				sel := Selection{Columns: []string{"tier", "score", "ens_name"}, Mode: string(mode), Filter: filter(n)}
				out, err := app.Evaluate(sel)
				require.NoError(t, err)

				want := int(n)
				if mode == analysis.ModeDescriptive {
					want = len(stats.SummaryNames)
				} else if want > table.Len() {
					want = table.Len()
				}
				assert.Len(t, out.Rows, want, "seed=%d mode=%s n=%v", seed, mode, n)
				require.NotNil(t, out.Chart)
				assert.Equal(t, "tier", out.Chart.XColumn)
			}
		}
	}
}
