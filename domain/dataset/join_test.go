package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLookup_FirstNonMissingWins(t *testing.T) {
	lookup, err := BuildLookup(sampleTable(t), "address", "ens_name")
	require.NoError(t, err)

	// 0xa appears twice; 0xb and 0xd have no name
	assert.Equal(t, 2, lookup.Len())
	v, ok := lookup.Get(String("0xa"))
	require.True(t, ok)
	assert.Equal(t, "alice.eth", v.String())

	_, ok = lookup.Get(String("0xb"))
	assert.False(t, ok)
	_, ok = lookup.Get(Missing())
	assert.False(t, ok)
}

func TestBuildLookup_UnknownColumn(t *testing.T) {
	_, err := BuildLookup(sampleTable(t), "wallet", "ens_name")
	assert.Error(t, err)
}

func TestLeftJoin_FillsNamesWithoutChangingRows(t *testing.T) {
	table := sampleTable(t)
	lookup, err := BuildLookup(table, "address", "ens_name")
	require.NoError(t, err)

	joined := LeftJoin(table, lookup)

	require.Equal(t, table.Len(), joined.Len())
	assert.Equal(t, table.ColumnNames(), joined.ColumnNames())

	// 0xa's second row takes the side-table name for its address
	v, _ := joined.Cell(3, "ens_name")
	assert.Equal(t, "alice.eth", v.String())
	// no name anywhere for 0xb: stays missing
	v, _ = joined.Cell(1, "ens_name")
	assert.True(t, v.IsMissing())
	// source untouched
	v, _ = table.Cell(3, "ens_name")
	assert.Equal(t, "other.eth", v.String())
}

func TestLeftJoin_AppendsBlankColumnWhenAbsent(t *testing.T) {
	left, err := NewTable(
		[]Column{{Name: "address", Kind: KindString}, {Name: "score", Kind: KindNumeric}},
		[][]Value{{String("0xc"), Number(1)}, {String("0xz"), Number(2)}},
	)
	require.NoError(t, err)
	lookup, err := BuildLookup(sampleTable(t), "address", "ens_name")
	require.NoError(t, err)

	joined := LeftJoin(left, lookup)

	assert.Equal(t, []string{"address", "score", "ens_name"}, joined.ColumnNames())
	require.Equal(t, 2, joined.Len())
	v, _ := joined.Cell(0, "ens_name")
	assert.Equal(t, "carol.eth", v.String())
	v, _ = joined.Cell(1, "ens_name")
	assert.True(t, v.IsMissing())
}

func TestLeftJoin_NoKeyColumnDegrades(t *testing.T) {
	left, err := NewTable(
		[]Column{{Name: "index", Kind: KindString}, {Name: "score", Kind: KindNumeric}},
		[][]Value{{String("count"), Number(4)}, {String("mean"), Number(16.25)}},
	)
	require.NoError(t, err)

	joined := LeftJoin(left, NewLookup("address", "ens_name"))

	assert.Equal(t, 2, joined.Len())
	assert.Equal(t, []string{"index", "score", "ens_name"}, joined.ColumnNames())
	v, _ := joined.Cell(0, "ens_name")
	assert.True(t, v.IsMissing())
}

func TestLeftJoin_EmptyLeft(t *testing.T) {
	joined := LeftJoin(Empty(Column{Name: "address", Kind: KindString}), NewLookup("address", "ens_name"))
	assert.Equal(t, 0, joined.Len())
}
