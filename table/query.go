// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package table

// Filter is a single equality condition on a column.
type Filter struct {
	Field string
	Value interface{}
}

// Order requests rows sorted by a single column.
type Order struct {
	Field string
	Desc  bool
}

// Query selects a subset of a table's rows.  All of the filters are
// ANDed together.  The zero Query matches every row in unspecified
// order.  Query values are immutable; Eq and OrderBy return modified
// copies, so a typical use is
//
//     rows, err := t.Select(ctx, table.Query{}.Eq("id", id))
type Query struct {
	Filters []Filter
	Order   *Order
}

// Eq returns a copy of q that additionally requires field to equal
// value.
func (q Query) Eq(field string, value interface{}) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, Filter{Field: field, Value: value})
	return q
}

// OrderBy returns a copy of q that sorts by field, descending if desc
// is true.
func (q Query) OrderBy(field string, desc bool) Query {
	q.Order = &Order{Field: field, Desc: desc}
	return q
}

// Matches returns true if row satisfies every filter in q.  This is
// for in-process implementations; stores that can evaluate filters
// themselves should do that instead.
func (q Query) Matches(row Row) bool {
	for _, f := range q.Filters {
		if !valuesEqual(row[f.Field], f.Value) {
			return false
		}
	}
	return true
}
