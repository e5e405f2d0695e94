package dataset

import (
	"encoding/json"
	"math"
	"testing"

	"mosaic/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	table, err := FromStrings(
		[]string{"address", "score", "ens_name"},
		[][]string{
			{"0xa", "10", "alice.eth"},
			{"0xb", "30", ""},
			{"0xc", "20", "carol.eth"},
			{"0xa", "5", "other.eth"},
			{"0xd", "", "NaN"},
		},
	)
	require.NoError(t, err)
	return table
}

func TestFromStrings_InfersKinds(t *testing.T) {
	table := sampleTable(t)

	cols := table.Columns()
	require.Len(t, cols, 3)
	assert.Equal(t, Column{Name: "address", Kind: KindString}, cols[0])
	assert.Equal(t, Column{Name: "score", Kind: KindNumeric}, cols[1])
	assert.Equal(t, Column{Name: "ens_name", Kind: KindString}, cols[2])
	assert.Equal(t, 5, table.Len())

	v, ok := table.Cell(4, "score")
	require.True(t, ok)
	assert.True(t, v.IsMissing())

	v, _ = table.Cell(4, "ens_name")
	assert.True(t, v.IsMissing(), "NaN marker should read as missing")

	f, ok := table.Cell(1, "score")
	require.True(t, ok)
	n, isNum := f.Float()
	assert.True(t, isNum)
	assert.Equal(t, 30.0, n)
}

func TestFromStrings_HeaderCleanup(t *testing.T) {
	table, err := FromStrings([]string{"\ufeffa", "a", "", "a"}, [][]string{{"1", "2", "3", "4", "extra"}, {"5"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", "a.2"}, table.ColumnNames())

	v, _ := table.Cell(1, "a.2")
	assert.True(t, v.IsMissing(), "short rows are padded")
}

func TestFromStrings_EmptyHeader(t *testing.T) {
	_, err := FromStrings(nil, nil)
	assert.Error(t, err)
}

func TestInferKind(t *testing.T) {
	assert.Equal(t, KindNumeric, InferKind([]string{"1", "2.5", "", "-3e2"}))
	assert.Equal(t, KindNumeric, InferKind([]string{"", "NA"}))
	assert.Equal(t, KindString, InferKind([]string{"1", "x"}))
	assert.Equal(t, KindString, InferKind([]string{"inf"}), "infinite values are not numeric")
}

func TestNewTable_Validation(t *testing.T) {
	_, err := NewTable([]Column{{Name: "a"}, {Name: "a"}}, nil)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = NewTable([]Column{{Name: "a"}}, [][]Value{{Number(1), Number(2)}})
	assert.Error(t, err)
}

func TestTable_UnknownColumn(t *testing.T) {
	table := sampleTable(t)

	_, err := table.Values("missing")
	assert.Equal(t, errors.CodeUnknownColumn, errors.GetCode(err))

	_, err = table.Floats("missing")
	assert.Equal(t, errors.CodeUnknownColumn, errors.GetCode(err))

	_, err = table.Column("missing")
	assert.Equal(t, errors.CodeUnknownColumn, errors.GetCode(err))
}

func TestTable_FloatsSkipsMissing(t *testing.T) {
	floats, err := sampleTable(t).Floats("score")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30, 20, 5}, floats)
}

func TestTable_Take(t *testing.T) {
	table := sampleTable(t)
	taken := table.Take([]int{2, 0})

	require.Equal(t, 2, taken.Len())
	v, _ := taken.Cell(0, "address")
	assert.Equal(t, "0xc", v.String())
	v, _ = taken.Cell(1, "address")
	assert.Equal(t, "0xa", v.String())
	assert.Equal(t, 5, table.Len(), "source table is unchanged")
}

func TestRecord_MarshalJSONKeepsColumnOrder(t *testing.T) {
	rec := NewRecord([]string{"z", "a", "m"}, []Value{String("x"), Number(1.5), Missing()})

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"x","a":1.5,"m":null}`, string(b))

	v, ok := rec.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1.5", v.String())
	assert.Equal(t, []string{"z", "a", "m"}, rec.Keys())
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(Number(1), Number(2)))
	assert.Equal(t, 1, Compare(Number(2), Number(1)))
	assert.Equal(t, 0, Compare(Number(2), Number(2)))
	assert.Less(t, Compare(String("a"), String("b")), 0)
	assert.Less(t, Compare(Number(100), String("a")), 0, "numbers sort before strings")
	assert.True(t, Number(math.NaN()).IsMissing())
}
