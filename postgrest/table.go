// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgrest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/pkg/errors"
)

type restTable struct {
	client *restClient
	name   string
}

func (t *restTable) Name() string {
	return t.name
}

// queryValues converts a table query to PostgREST query parameters.
// Only equality filters and a single ordering are supported.
func queryValues(q table.Query, selectAll bool) url.Values {
	values := url.Values{}
	if selectAll {
		values.Set("select", "*")
	}
	for _, f := range q.Filters {
		values.Add(f.Field, "eq."+filterValue(f.Value))
	}
	if q.Order != nil {
		direction := "asc"
		if q.Order.Desc {
			direction = "desc"
		}
		values.Set("order", q.Order.Field+"."+direction)
	}
	return values
}

func filterValue(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return "null"
	case time.Time:
		return vv.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return vv.String()
	default:
		return fmt.Sprint(v)
	}
}

// rows performs a request whose response is a list of rows.
func (t *restTable) rows(ctx context.Context, method string, q table.Query, selectAll bool, in interface{}) ([]table.Row, bool, error) {
	u, err := t.client.tableURL(t.name, queryValues(q, selectAll))
	if err != nil {
		return nil, false, err
	}
	var rows []table.Row
	decoded, err := t.client.do(ctx, method, u, in, &rows)
	return rows, decoded, err
}

func (t *restTable) Select(ctx context.Context, q table.Query) ([]table.Row, error) {
	rows, _, err := t.rows(ctx, http.MethodGet, q, true, nil)
	return rows, errors.Wrapf(err, "select from %v", t.name)
}

func (t *restTable) Insert(ctx context.Context, row table.Row) ([]table.Row, error) {
	in := row
	if in == nil {
		in = table.Row{}
	}
	rows, _, err := t.rows(ctx, http.MethodPost, table.Query{}, false, in)
	return rows, errors.Wrapf(err, "insert into %v", t.name)
}

func (t *restTable) Update(ctx context.Context, q table.Query, changes table.Row) ([]table.Row, error) {
	in := changes
	if in == nil {
		in = table.Row{}
	}
	rows, _, err := t.rows(ctx, http.MethodPatch, q, false, in)
	return rows, errors.Wrapf(err, "update %v", t.name)
}

func (t *restTable) Delete(ctx context.Context, q table.Query) (table.DeleteResult, error) {
	rows, decoded, err := t.rows(ctx, http.MethodDelete, q, false, nil)
	if err != nil {
		return table.DeleteResult{}, errors.Wrapf(err, "delete from %v", t.name)
	}
	if !decoded {
		return table.Indeterminate(), nil
	}
	return table.Confirmed(rows), nil
}
