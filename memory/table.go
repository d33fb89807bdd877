// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"context"
	"sort"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/satori/go.uuid"
)

func (t *memTable) Select(ctx context.Context, q table.Query) (result []table.Row, err error) {
	err = t.do(func() error {
		for _, i := range t.matching(q) {
			result = append(result, copyRow(t.rows[i]))
		}
		return nil
	})
	if err == nil && q.Order != nil {
		order := *q.Order
		sort.SliceStable(result, func(i, j int) bool {
			c := table.CompareValues(result[i][order.Field], result[j][order.Field])
			if order.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	return
}

func (t *memTable) Insert(ctx context.Context, row table.Row) (result []table.Row, err error) {
	err = t.do(func() error {
		now := t.store.now()
		stored := copyRow(row)
		stored["id"] = uuid.NewV4().String()
		stored["created_at"] = now
		stored["updated_at"] = now
		t.rows = append(t.rows, stored)
		result = []table.Row{copyRow(stored)}
		return nil
	})
	return
}

func (t *memTable) Update(ctx context.Context, q table.Query, changes table.Row) (result []table.Row, err error) {
	err = t.do(func() error {
		now := t.store.now()
		for _, i := range t.matching(q) {
			row := t.rows[i]
			for k, v := range changes {
				if k == "id" || k == "created_at" {
					continue
				}
				row[k] = copyValue(v)
			}
			row["updated_at"] = now
			result = append(result, copyRow(row))
		}
		return nil
	})
	return
}

func (t *memTable) Delete(ctx context.Context, q table.Query) (result table.DeleteResult, err error) {
	err = t.do(func() error {
		var deleted []table.Row
		kept := t.rows[:0:0]
		for _, row := range t.rows {
			if q.Matches(row) {
				deleted = append(deleted, row)
			} else {
				kept = append(kept, row)
			}
		}
		t.rows = kept
		if t.store.silentDeletes {
			result = table.Indeterminate()
		} else {
			result = table.Confirmed(deleted)
		}
		return nil
	})
	return
}

// copyRow returns a deep copy of a row, so that callers can never
// alias stored slices.
func copyRow(row table.Row) table.Row {
	result := make(table.Row, len(row))
	for k, v := range row {
		result[k] = copyValue(v)
	}
	return result
}

func copyValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case []string:
		return append([]string{}, vv...)
	case []interface{}:
		result := make([]interface{}, len(vv))
		for i, item := range vv {
			result[i] = copyValue(item)
		}
		return result
	case map[string]interface{}:
		result := make(map[string]interface{}, len(vv))
		for k, item := range vv {
			result[k] = copyValue(item)
		}
		return result
	case table.Row:
		return copyRow(vv)
	default:
		return v
	}
}
