// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres_test

import (
	"database/sql"
	"os"
	"testing"

	"github.com/diffeo/nebibs-backend/postgres"
	"github.com/diffeo/nebibs-backend/table"
	"github.com/diffeo/nebibs-backend/table/tabletest"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TestTable runs the generic table tests against a real database.
//
// This creates a PostgreSQL backend using an empty string as the
// connection string.  This means that, when you run "go test", you
// must set environment variables as described in
// http://www.postgresql.org/docs/current/static/libpq-envars.html.
// If PGHOST is not set the test is skipped.
func TestTable(t *testing.T) {
	if os.Getenv("PGHOST") == "" {
		t.Skip("PGHOST not set")
	}
	db, err := postgres.Open("")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, postgres.Upgrade(db))

	suite.Run(t, &tabletest.Suite{
		NewClient: func(s *tabletest.Suite) table.Client {
			truncate(s, db)
			return postgres.NewWithDB(db)
		},
	})
}

func truncate(s *tabletest.Suite, db *sql.DB) {
	_, err := db.Exec("TRUNCATE experiments, learning_goals, service_entries")
	s.Require().NoError(err)
}
