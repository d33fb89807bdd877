// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package tabletest

import (
	"time"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/satori/go.uuid"
)

// TestSelectEmpty checks that an empty table selects no rows without
// error.
func (s *Suite) TestSelectEmpty() {
	rows, err := s.Experiments().Select(s.Ctx, table.Query{}.OrderBy("created_at", true))
	if s.NoError(err) {
		s.Empty(rows)
	}
}

// TestInsertAssignsColumns checks that the store fills in the id and
// timestamp columns.
func (s *Suite) TestInsertAssignsColumns() {
	row := s.InsertExperiment("first")
	s.Equal("first", row["title"])

	id, isString := row["id"].(string)
	if s.True(isString, "id is %T", row["id"]) {
		_, err := uuid.FromString(id)
		s.NoError(err)
	}
	s.NotNil(row["created_at"])
	s.NotNil(row["updated_at"])
}

// TestSelectByID checks equality filters on the id column.
func (s *Suite) TestSelectByID() {
	first := s.InsertExperiment("first")
	second := s.InsertExperiment("second")

	rows, err := s.Experiments().Select(s.Ctx, table.Query{}.Eq("id", first["id"]))
	if s.NoError(err) && s.Len(rows, 1) {
		s.Equal(first["id"], rows[0]["id"])
		s.Equal("first", rows[0]["title"])
	}

	rows, err = s.Experiments().Select(s.Ctx, table.Query{}.Eq("id", second["id"]))
	if s.NoError(err) && s.Len(rows, 1) {
		s.Equal("second", rows[0]["title"])
	}

	rows, err = s.Experiments().Select(s.Ctx, table.Query{}.Eq("id", uuid.NewV4().String()))
	if s.NoError(err) {
		s.Empty(rows)
	}
}

// TestSelectOrder checks descending ordering on a date column.
func (s *Suite) TestSelectOrder() {
	entries := s.Client.Table("service_entries")
	for _, date := range []string{"2025-01-15", "2025-03-01", "2025-02-01"} {
		_, err := entries.Insert(s.Ctx, table.Row{
			"date":        date,
			"description": "entry " + date,
			"hours":       1.5,
			"reflection":  "",
		})
		s.Require().NoError(err)
	}

	rows, err := entries.Select(s.Ctx, table.Query{}.OrderBy("date", true))
	if s.NoError(err) && s.Len(rows, 3) {
		s.Equal("entry 2025-03-01", rows[0]["description"])
		s.Equal("entry 2025-02-01", rows[1]["description"])
		s.Equal("entry 2025-01-15", rows[2]["description"])
	}

	rows, err = entries.Select(s.Ctx, table.Query{}.OrderBy("date", false))
	if s.NoError(err) && s.Len(rows, 3) {
		s.Equal("entry 2025-01-15", rows[0]["description"])
	}
}

// TestUpdatePartial checks that an update changes only the named
// columns and returns the updated row.
func (s *Suite) TestUpdatePartial() {
	row := s.InsertExperiment("before")
	s.Clock.Add(time.Minute)

	rows, err := s.Experiments().Update(s.Ctx, table.Query{}.Eq("id", row["id"]), table.Row{
		"status":       "completed",
		"dependencies": []string{"a", "b"},
	})
	if s.NoError(err) && s.Len(rows, 1) {
		s.Equal(row["id"], rows[0]["id"])
		s.Equal("before", rows[0]["title"])
		s.Equal("completed", rows[0]["status"])
		s.Equal([]string{"a", "b"}, StringSlice(rows[0]["dependencies"]))
	}

	rows, err = s.Experiments().Select(s.Ctx, table.Query{}.Eq("id", row["id"]))
	if s.NoError(err) && s.Len(rows, 1) {
		s.Equal("completed", rows[0]["status"])
		s.Equal("before", rows[0]["title"])
	}
}

// TestUpdateNoMatch checks that updating a missing row returns no rows.
func (s *Suite) TestUpdateNoMatch() {
	s.InsertExperiment("bystander")
	rows, err := s.Experiments().Update(s.Ctx, table.Query{}.Eq("id", uuid.NewV4().String()), table.Row{
		"title": "nope",
	})
	if s.NoError(err) {
		s.Empty(rows)
	}

	rows, err = s.Experiments().Select(s.Ctx, table.Query{})
	if s.NoError(err) && s.Len(rows, 1) {
		s.Equal("bystander", rows[0]["title"])
	}
}

// TestDelete checks that a deleted row is gone, and that the store
// either reports it or reports nothing.
func (s *Suite) TestDelete() {
	row := s.InsertExperiment("doomed")
	keep := s.InsertExperiment("kept")

	result, err := s.Experiments().Delete(s.Ctx, table.Query{}.Eq("id", row["id"]))
	if s.NoError(err) {
		s.False(result.ConfirmedZero())
		if result.Outcome == table.DeleteConfirmed && s.Len(result.Rows, 1) {
			s.Equal(row["id"], result.Rows[0]["id"])
		}
	}

	rows, err := s.Experiments().Select(s.Ctx, table.Query{})
	if s.NoError(err) && s.Len(rows, 1) {
		s.Equal(keep["id"], rows[0]["id"])
	}
}

// TestDeleteMissing checks that deleting a missing row never reports
// a deleted row.
func (s *Suite) TestDeleteMissing() {
	result, err := s.Experiments().Delete(s.Ctx, table.Query{}.Eq("id", uuid.NewV4().String()))
	if s.NoError(err) {
		s.Empty(result.Rows)
		if result.Outcome == table.DeleteConfirmed {
			s.True(result.ConfirmedZero())
		}
	}
}
