// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestBuildSelect(t *testing.T) {
	assert.Equal(t, "SELECT a, b FROM t",
		buildSelect([]string{"a", "b"}, []string{"t"}, nil))
	assert.Equal(t, "SELECT a FROM t WHERE x=$1 AND y=$2",
		buildSelect([]string{"a"}, []string{"t"}, []string{"x=$1", "y=$2"}))
}

func TestBuildUpdateDelete(t *testing.T) {
	assert.Equal(t, "UPDATE t SET a=$1, b=now() WHERE id=$2",
		buildUpdate("t", []string{"a=$1", "b=now()"}, []string{"id=$2"}))
	assert.Equal(t, "DELETE FROM t WHERE id=$1",
		buildDelete("t", []string{"id=$1"}))
	assert.Equal(t, "DELETE FROM t", buildDelete("t", nil))
}

func TestFieldListInsert(t *testing.T) {
	params := queryParams{}
	fields := fieldList{}
	fields.Add(&params, "a", 1)
	fields.AddDirect("b", "now()")
	fields.Add(&params, "c", "x")
	assert.Equal(t, "INSERT INTO t(a, b, c) VALUES($1, now(), $2)",
		fields.InsertStatement("t"))
	assert.Equal(t, queryParams{1, "x"}, params)
	assert.Equal(t, []string{"a=$1", "b=now()", "c=$2"}, fields.UpdateChanges())
	assert.Equal(t, "INSERT INTO t DEFAULT VALUES", fieldList{}.InsertStatement("t"))
}

func TestChangesSkipsStoreColumns(t *testing.T) {
	tbl := &pgTable{name: "experiments", columns: schema["experiments"]}
	params := queryParams{}
	fields, err := tbl.changes(&params, table.Row{
		"title":      "x",
		"id":         "ignored",
		"created_at": time.Now(),
		"status":     "done",
	})
	if assert.NoError(t, err) {
		assert.Equal(t, []string{"status", "title"}, fields.FieldNames())
		assert.Equal(t, queryParams{"done", "x"}, params)
	}

	_, err = tbl.changes(&params, table.Row{"bogus": 1})
	assert.Equal(t, table.ErrNoSuchColumn{Table: "experiments", Column: "bogus"}, err)
}

func TestToSQL(t *testing.T) {
	v, err := toSQL(textArrayColumn, []interface{}{"a", "b"})
	if assert.NoError(t, err) {
		assert.Equal(t, pq.Array([]string{"a", "b"}), v)
	}

	v, err = toSQL(jsonColumn, []interface{}{
		map[string]interface{}{"week_key": "2025-W01"},
	})
	if assert.NoError(t, err) {
		assert.Equal(t, `[{"week_key":"2025-W01"}]`, v)
	}

	v, err = toSQL(dateColumn, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	if assert.NoError(t, err) {
		assert.Equal(t, "2025-02-01", v)
	}

	v, err = toSQL(textColumn, nil)
	if assert.NoError(t, err) {
		assert.Nil(t, v)
	}
}

func TestUnknownTable(t *testing.T) {
	tbl := NewWithDB(nil).Table("nope")
	_, err := tbl.Select(context.Background(), table.Query{})
	assert.Equal(t, table.ErrNoSuchTable{Name: "nope"}, err)
}
