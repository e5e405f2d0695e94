package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind is the inferred type of a column
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindString  Kind = "string"
)

type valueType uint8

const (
	valueMissing valueType = iota
	valueNumber
	valueString
)

// Value is a single cell: missing, a number, or a string
type Value struct {
	typ valueType
	num float64
	str string
}

// Missing returns the missing value
func Missing() Value { return Value{} }

// Number wraps a float. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{typ: valueNumber, num: f}
}

// String wraps a string
func String(s string) Value { return Value{typ: valueString, str: s} }

func (v Value) IsMissing() bool { return v.typ == valueMissing }

// Float returns the numeric value and whether the cell holds a number
func (v Value) Float() (float64, bool) {
	if v.typ != valueNumber {
		return 0, false
	}
	return v.num, true
}

// String renders the value the way it is used for join keys and chart categories.
// Missing values render as the empty string.
func (v Value) String() string {
	switch v.typ {
	case valueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case valueString:
		return v.str
	default:
		return ""
	}
}

// Interface returns nil, float64 or string
func (v Value) Interface() interface{} {
	switch v.typ {
	case valueNumber:
		return v.num
	case valueString:
		return v.str
	default:
		return nil
	}
}

// MarshalJSON encodes missing values as null. Infinite numbers have no JSON
// form and are written as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case valueNumber:
		if math.IsInf(v.num, 0) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.num)
	case valueString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

// Compare orders two present values: numbers before strings, numbers
// numerically, strings lexicographically. Callers decide where missing goes;
// here missing sorts before everything.
func Compare(a, b Value) int {
	if a.typ != b.typ {
		return rank(a.typ) - rank(b.typ)
	}
	switch a.typ {
	case valueNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case valueString:
		return strings.Compare(a.str, b.str)
	}
	return 0
}

func rank(t valueType) int {
	switch t {
	case valueMissing:
		return 0
	case valueNumber:
		return 1
	default:
		return 2
	}
}
