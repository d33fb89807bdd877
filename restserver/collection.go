// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/nebibs-backend/restdata"
	"github.com/diffeo/nebibs-backend/table"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// collection publishes one table of records as a REST collection.
// Every operation is exactly one table call.
type collection struct {
	api *restAPI

	// Name is the singular name of a record, used as the name of
	// the single-record route; the collection route is Name+"List".
	Name string

	// Resource is the name of the collection in logs and metrics.
	Resource string

	// Path is the URL path of the collection.
	Path string

	// Table is the name of the backing table.
	Table string

	// OrderBy names the column that lists sort on, most recent
	// first.
	OrderBy string

	// NotFound is the error message for a missing record.
	NotFound string

	// Record is a zero record, describing the response type.
	Record restdata.Record

	// Payloads describes the creation and update bodies.
	Payloads restdata.Payloads

	// Normalize converts a store row to a response record.
	Normalize func(table.Row) (restdata.Record, error)

	// CreateRow validates a creation body and returns the row to
	// insert.
	CreateRow func(map[string]interface{}) (table.Row, error)

	// Changes validates an update body and returns the columns to
	// change.
	Changes func(map[string]interface{}) (table.Row, error)
}

func (c *collection) listRoute() string {
	return c.Name + "List"
}

func (c *collection) table() table.Table {
	return c.api.Client.Table(c.Table)
}

// storeError translates an error from the table store.  Errors that
// already know their HTTP status keep it, which is how an
// unconfigured store becomes 503; anything else is a 502.
func (c *collection) storeError(err error) error {
	cause := errors.Cause(err)
	if _, hasStatus := cause.(restdata.ErrorStatus); hasStatus {
		return cause
	}
	return restdata.ErrUpstream{Err: err}
}

// normalize converts a store row, reporting a malformed row as an
// upstream failure.
func (c *collection) normalize(row table.Row) (restdata.Record, error) {
	record, err := c.Normalize(row)
	if err != nil {
		return nil, restdata.ErrUpstream{Err: err}
	}
	return record, nil
}

func (c *collection) notFound() error {
	return restdata.ErrNotFound{Message: c.NotFound}
}

// PopulateRouter adds the collection's routes to a router.
func (c *collection) PopulateRouter(r *mux.Router) {
	r.Path(c.Path).Name(c.listRoute()).Handler(&resourceHandler{
		Resource:   c.Resource,
		Collection: true,
		Context:    c.api.Context,
		Log:        c.api.Log,
		Get:        c.List,
		Post:       c.Create,
	})
	r.Path(c.Path + "/{id}").Name(c.Name).Handler(&resourceHandler{
		Resource: c.Resource,
		Context:  c.api.Context,
		Log:      c.api.Log,
		Get:      c.Get,
		Patch:    c.Update,
		Delete:   c.Delete,
	})
}

// List returns every record, most recent first.
func (c *collection) List(ctx *requestContext) (interface{}, error) {
	rows, err := c.table().Select(ctx.Ctx, table.Query{}.OrderBy(c.OrderBy, true))
	if err != nil {
		return nil, c.storeError(err)
	}
	result := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		record, err := c.normalize(row)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

// Get returns a single record by identifier.
func (c *collection) Get(ctx *requestContext) (interface{}, error) {
	rows, err := c.table().Select(ctx.Ctx, table.Query{}.Eq("id", ctx.ID))
	if err != nil {
		return nil, c.storeError(err)
	}
	if len(rows) == 0 {
		return nil, c.notFound()
	}
	return c.normalize(rows[0])
}

// Create inserts a new record and returns it with its location.
func (c *collection) Create(ctx *requestContext, in map[string]interface{}) (interface{}, error) {
	row, err := c.CreateRow(in)
	if err != nil {
		return nil, err
	}
	rows, err := c.table().Insert(ctx.Ctx, row)
	if err != nil {
		return nil, c.storeError(err)
	}
	if len(rows) == 0 {
		return nil, restdata.ErrInsertFailed{}
	}
	record, err := c.normalize(rows[0])
	if err != nil {
		return nil, err
	}
	var location string
	err = buildURLs(c.api.Router, "id", record.RecordID()).
		URL(&location, c.Name).
		Error
	if err != nil {
		return nil, err
	}
	return responseCreated{Location: location, Body: record}, nil
}

// Update changes the fields named in the request body.  A body that
// names no recognized fields changes nothing and returns the current
// record.
func (c *collection) Update(ctx *requestContext, in map[string]interface{}) (interface{}, error) {
	changes, err := c.Changes(in)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return c.Get(ctx)
	}
	rows, err := c.table().Update(ctx.Ctx, table.Query{}.Eq("id", ctx.ID), changes)
	if err != nil {
		return nil, c.storeError(err)
	}
	if len(rows) == 0 {
		return nil, c.notFound()
	}
	return c.normalize(rows[0])
}

// Delete removes a record.  It is only an error if the store reports
// that nothing was deleted; a store that reports nothing at all is
// taken at its word.
func (c *collection) Delete(ctx *requestContext) (interface{}, error) {
	result, err := c.table().Delete(ctx.Ctx, table.Query{}.Eq("id", ctx.ID))
	if err != nil {
		return nil, c.storeError(err)
	}
	if result.ConfirmedZero() {
		return nil, c.notFound()
	}
	return nil, nil
}
