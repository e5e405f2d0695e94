package dataset

// Lookup maps a key column to a value column, e.g. address -> ens_name
type Lookup struct {
	KeyColumn   string
	ValueColumn string
	values      map[string]Value
}

// NewLookup returns an empty lookup
func NewLookup(keyColumn, valueColumn string) *Lookup {
	return &Lookup{KeyColumn: keyColumn, ValueColumn: valueColumn, values: map[string]Value{}}
}

// BuildLookup collects key -> value pairs from t. Rows whose key or value is
// missing are skipped and the first occurrence of a key wins, so a join
// against the lookup can never fan out.
func BuildLookup(t *Table, keyColumn, valueColumn string) (*Lookup, error) {
	ki, err := t.Column(keyColumn)
	if err != nil {
		return nil, err
	}
	vi, err := t.Column(valueColumn)
	if err != nil {
		return nil, err
	}
	l := NewLookup(ki.Name, vi.Name)
	keyIdx, _ := t.Index(keyColumn)
	valIdx, _ := t.Index(valueColumn)
	for _, row := range t.rows {
		k, v := row[keyIdx], row[valIdx]
		if k.IsMissing() || v.IsMissing() {
			continue
		}
		if _, seen := l.values[k.String()]; !seen {
			l.values[k.String()] = v
		}
	}
	return l, nil
}

func (l *Lookup) Len() int { return len(l.values) }

// Get returns the value for key
func (l *Lookup) Get(key Value) (Value, bool) {
	if key.IsMissing() {
		return Missing(), false
	}
	v, ok := l.values[key.String()]
	return v, ok
}

// LeftJoin keeps every row of left, in order, and fills l.ValueColumn from
// the lookup where the key matches. Unmatched rows keep what they had. When
// left has no value column it is appended blank; when it has no key column
// nothing can match and only that append happens.
func LeftJoin(left *Table, l *Lookup) *Table {
	columns := left.Columns()
	valIdx, hasVal := left.Index(l.ValueColumn)
	if !hasVal {
		columns = append(columns, Column{Name: l.ValueColumn, Kind: KindString})
		valIdx = len(columns) - 1
	}
	keyIdx, hasKey := left.Index(l.KeyColumn)

	rows := make([][]Value, len(left.rows))
	for i, src := range left.rows {
		row := make([]Value, len(columns))
		copy(row, src)
		if hasKey {
			if v, ok := l.Get(src[keyIdx]); ok {
				row[valIdx] = v
			}
		}
		rows[i] = row
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c.Name] = i
	}
	return &Table{columns: columns, rows: rows, index: index}
}
