// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package table defines the abstract interface to a remote relational
// table store.  The REST layer only ever talks to this interface;
// concrete implementations live in the memory, postgres, and postgrest
// packages, and the backend package picks one from command-line
// configuration.
//
// Every operation is a single round trip to the store.  A Row is a
// flat mapping from column name to value; values are whatever the
// store naturally produces (strings, float64 or integer numbers,
// time.Time, []string, []interface{}, nil), and callers normalize them
// into typed records themselves.
//
// The store assigns the "id", "created_at", and "updated_at" columns
// of every table.  Implementations must return complete rows,
// including those columns, from Select, Insert, and Update.
package table

import "context"

// Row is a single record, as a mapping from column name to value.
type Row map[string]interface{}

// Client is the top-level handle to a table store.  A Client is
// constructed once per process and is safe for concurrent use.
type Client interface {
	// Table returns a handle to the named table.  This does not
	// contact the store; an unknown table name will be reported
	// by the first operation on the returned handle.
	Table(name string) Table
}

// Table is a handle to a single named table.
type Table interface {
	// Name returns the name of the table.
	Name() string

	// Select returns all of the rows matching q, in the order q
	// requests.  If nothing matches, returns an empty (possibly
	// nil) slice and no error.
	Select(ctx context.Context, q Query) ([]Row, error)

	// Insert adds a single row to the table and returns the
	// inserted rows as the store reports them, including
	// store-assigned columns.  A store that silently fails may
	// return no rows and no error.
	Insert(ctx context.Context, row Row) ([]Row, error)

	// Update changes the columns named in changes for every row
	// matching q, and returns the updated rows.  Columns not
	// named in changes are not modified.
	Update(ctx context.Context, q Query, changes Row) ([]Row, error)

	// Delete removes every row matching q.  See DeleteResult for
	// the possible outcomes.
	Delete(ctx context.Context, q Query) (DeleteResult, error)
}

// DeleteOutcome describes how much a store reported about a delete.
type DeleteOutcome int

const (
	// DeleteIndeterminate means the store did not report which
	// rows, if any, were deleted.
	DeleteIndeterminate DeleteOutcome = iota

	// DeleteConfirmed means the store reported the set of deleted
	// rows.  The set may be empty.
	DeleteConfirmed
)

// DeleteResult is the outcome of Table.Delete.
type DeleteResult struct {
	// Outcome says whether Rows is meaningful.
	Outcome DeleteOutcome

	// Rows holds the deleted rows if Outcome is DeleteConfirmed.
	Rows []Row
}

// Indeterminate returns a DeleteResult for a store that reported
// nothing about the delete.
func Indeterminate() DeleteResult {
	return DeleteResult{Outcome: DeleteIndeterminate}
}

// Confirmed returns a DeleteResult reporting exactly rows as deleted.
func Confirmed(rows []Row) DeleteResult {
	return DeleteResult{Outcome: DeleteConfirmed, Rows: rows}
}

// ConfirmedZero returns true if the store positively reported that no
// rows were deleted.
func (r DeleteResult) ConfirmedZero() bool {
	return r.Outcome == DeleteConfirmed && len(r.Rows) == 0
}
