package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// CoerceInt converts a loosely typed value to an integer the way a ring
// builder's own tooling does: floats truncate toward zero, bools count as
// 0/1 and decimal strings are parsed. Finite numbers beyond the int64 range
// saturate to the nearest bound. Anything else is an error.
func CoerceInt(v interface{}) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, fmt.Errorf("cannot convert null to integer")
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to integer", val)
		}
		return i, nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i, nil
		}
	case *big.Int:
		if val == nil {
			return 0, fmt.Errorf("cannot convert null to integer")
		}
		if val.IsInt64() {
			return val.Int64(), nil
		}
		if val.Sign() < 0 {
			return math.MinInt64, nil
		}
		return math.MaxInt64, nil
	}

	f, ok := ToFloat64(v)
	if !ok {
		return 0, fmt.Errorf("cannot convert %T to integer", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot convert %v to integer", f)
	}
	t := math.Trunc(f)
	switch {
	case t >= math.MaxInt64:
		return math.MaxInt64, nil
	case t <= math.MinInt64:
		return math.MinInt64, nil
	}
	return int64(t), nil
}

// ToExactInt returns v as an integer only when it is an integral number
// (no fractional part, no strings, no bools).
func ToExactInt(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case bool, string, nil:
		return 0, false
	case json.Number:
		i, err := val.Int64()
		return i, err == nil
	case *big.Int:
		if val == nil || !val.IsInt64() {
			return 0, false
		}
		return val.Int64(), true
	}

	f, ok := ToFloat64(v)
	if !ok || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
