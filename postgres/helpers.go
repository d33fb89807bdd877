// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/ugorji/go/codec"
)

// column value <-> SQL encoders

// toSQL converts a row value into something database/sql can send
// for a column of kind.
func toSQL(kind columnKind, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case textArrayColumn:
		return pq.Array(stringSlice(v)), nil
	case jsonColumn:
		var out []byte
		encoder := codec.NewEncoderBytes(&out, &codec.JsonHandle{})
		if err := encoder.Encode(v); err != nil {
			return nil, err
		}
		return string(out), nil
	case dateColumn:
		if t, ok := v.(time.Time); ok {
			return t.Format(dateLayout), nil
		}
		return v, nil
	default:
		return v, nil
	}
}

// stringSlice converts a list value to a []string.
func stringSlice(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		result := make([]string, len(vv))
		for i, item := range vv {
			result[i] = fmt.Sprint(item)
		}
		return result
	}
	return []string{fmt.Sprint(v)}
}

// scanTarget returns a destination for rows.Scan() for a column of
// kind, and a function to extract the row value from it after the
// scan.
func scanTarget(kind columnKind) (interface{}, func() (interface{}, error)) {
	switch kind {
	case textArrayColumn:
		var v pq.StringArray
		return &v, func() (interface{}, error) {
			if v == nil {
				return nil, nil
			}
			return []string(v), nil
		}
	case jsonColumn:
		var v []byte
		return &v, func() (interface{}, error) {
			if v == nil {
				return nil, nil
			}
			var out interface{}
			decoder := codec.NewDecoderBytes(v, jsonHandle())
			err := decoder.Decode(&out)
			return out, err
		}
	case floatColumn:
		var v sql.NullFloat64
		return &v, func() (interface{}, error) {
			if !v.Valid {
				return nil, nil
			}
			return v.Float64, nil
		}
	case dateColumn:
		var v pq.NullTime
		return &v, func() (interface{}, error) {
			if !v.Valid {
				return nil, nil
			}
			return v.Time.Format(dateLayout), nil
		}
	case timestampColumn:
		var v pq.NullTime
		return &v, func() (interface{}, error) {
			if !v.Valid {
				return nil, nil
			}
			return v.Time.UTC(), nil
		}
	default:
		var v sql.NullString
		return &v, func() (interface{}, error) {
			if !v.Valid {
				return nil, nil
			}
			return v.String, nil
		}
	}
}

// jsonHandle returns a codec handle that decodes JSON objects as
// string-keyed maps.
func jsonHandle() *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.MapType = mapStringInterfaceType
	return h
}
