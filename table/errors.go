// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package table

import (
	"context"
	"fmt"
	"net/http"
)

// ErrNotConfigured is returned from every operation of a client whose
// store endpoint or credential was not provided.  The REST layer
// reports it as 503 Service Unavailable.
type ErrNotConfigured struct {
	Message string
}

func (e ErrNotConfigured) Error() string {
	if e.Message == "" {
		return "Table store is not configured"
	}
	return e.Message
}

// HTTPStatus returns a fixed 503 Service Unavailable status code.
func (e ErrNotConfigured) HTTPStatus() int {
	return http.StatusServiceUnavailable
}

// ErrNoSuchTable is returned by operations on a table the store does
// not know about.
type ErrNoSuchTable struct {
	Name string
}

func (e ErrNoSuchTable) Error() string {
	return fmt.Sprintf("No such table %q", e.Name)
}

// ErrNoSuchColumn is returned by stores with a fixed schema when a
// filter, ordering, or change names a column that does not exist.
type ErrNoSuchColumn struct {
	Table  string
	Column string
}

func (e ErrNoSuchColumn) Error() string {
	return fmt.Sprintf("No such column %q in table %q", e.Column, e.Table)
}

// unconfigured is a Client whose every operation fails with the same
// ErrNotConfigured.
type unconfigured struct {
	err ErrNotConfigured
}

// Unconfigured returns a Client that fails every operation with an
// ErrNotConfigured carrying message.  This lets a process start and
// answer health checks while reporting the missing configuration on
// every data request.
func Unconfigured(message string) Client {
	return unconfigured{err: ErrNotConfigured{Message: message}}
}

func (c unconfigured) Table(name string) Table {
	return unconfiguredTable{name: name, err: c.err}
}

type unconfiguredTable struct {
	name string
	err  ErrNotConfigured
}

func (t unconfiguredTable) Name() string {
	return t.name
}

func (t unconfiguredTable) Select(context.Context, Query) ([]Row, error) {
	return nil, t.err
}

func (t unconfiguredTable) Insert(context.Context, Row) ([]Row, error) {
	return nil, t.err
}

func (t unconfiguredTable) Update(context.Context, Query, Row) ([]Row, error) {
	return nil, t.err
}

func (t unconfiguredTable) Delete(context.Context, Query) (DeleteResult, error) {
	return DeleteResult{}, t.err
}
