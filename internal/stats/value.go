package stats

import (
	"encoding/json"
	"math"
	"strconv"
)

// NotComputable is how a missing Value is printed.
const NotComputable = "n/a"

// Value is a statistic that may be undefined for a sample set.
type Value struct {
	v  float64
	ok bool
}

// Some wraps a computed value. NaN and ±Inf are treated as not computable.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// None is the not-computable value.
func None() Value { return Value{} }

func (v Value) Get() (float64, bool) { return v.v, v.ok }

func (v Value) OK() bool { return v.ok }

func (v Value) String() string {
	if !v.ok {
		return NotComputable
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes a not-computable value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}
