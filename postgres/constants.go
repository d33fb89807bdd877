// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

// columnKind says how a column's values travel to and from SQL.
type columnKind int

const (
	uuidColumn columnKind = iota
	textColumn
	textArrayColumn
	jsonColumn
	floatColumn
	dateColumn
	timestampColumn
)

type column struct {
	Name string
	Kind columnKind
}

// schema holds the columns of every known table, in the order they
// are selected.  This must agree with the migrations in migration.go.
var schema = map[string][]column{
	"experiments": {
		{"id", uuidColumn},
		{"title", textColumn},
		{"description", textColumn},
		{"dependencies", textArrayColumn},
		{"next_action", textColumn},
		{"status", textColumn},
		{"notes", textColumn},
		{"created_at", timestampColumn},
		{"updated_at", timestampColumn},
	},
	"learning_goals": {
		{"id", uuidColumn},
		{"title", textColumn},
		{"target_hours", floatColumn},
		{"progress_percent", floatColumn},
		{"notes", textColumn},
		{"resources", textArrayColumn},
		{"weekly_hours", jsonColumn},
		{"created_at", timestampColumn},
		{"updated_at", timestampColumn},
	},
	"service_entries": {
		{"id", uuidColumn},
		{"date", dateColumn},
		{"description", textColumn},
		{"hours", floatColumn},
		{"reflection", textColumn},
		{"created_at", timestampColumn},
		{"updated_at", timestampColumn},
	},
}

// store-assigned columns, never written from a row
const (
	idColumnName        = "id"
	createdAtColumnName = "created_at"
	updatedAtColumnName = "updated_at"
)

// dateLayout is the ISO 8601 calendar date format used for date
// columns on the way out, matching what the hosted REST API returns.
const dateLayout = "2006-01-02"
