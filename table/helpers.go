// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package table

import (
	"fmt"
	"time"
)

// toFloat converts any Go numeric type to a float64.  The second
// return value is false if v is not a number.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// valuesEqual compares two column values.  Numbers compare by value
// regardless of their Go type; everything else compares by its
// printed representation.
func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// CompareValues orders two column values, returning a negative number
// if a sorts before b, zero if they are equal, and a positive number
// otherwise.  nil sorts before everything.  Times compare
// chronologically, numbers numerically, and anything else by its
// printed representation, which is correct for ISO 8601 dates and
// timestamps stored as strings.
func CompareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

// Copy returns a shallow copy of a row.
func (r Row) Copy() Row {
	if r == nil {
		return nil
	}
	result := make(Row, len(r))
	for k, v := range r {
		result[k] = v
	}
	return result
}
