// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"database/sql"

	"github.com/rubenv/sql-migrate"
)

// This file maintains the database migration code.  See
// https://github.com/rubenv/sql-migrate for details of what goes in
// here.  This runs "outside" the normal request flow, either at
// initial startup or from an external tool.  The schema matches the
// one the hosted database is provisioned with, so a plain PostgreSQL
// server can stand in for it.

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1-initial",
			Up: []string{
				`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
				`CREATE TABLE experiments(
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					title TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					dependencies TEXT[] NOT NULL DEFAULT '{}',
					next_action TEXT NOT NULL DEFAULT '',
					status TEXT NOT NULL DEFAULT 'not_started',
					notes TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE learning_goals(
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					title TEXT NOT NULL,
					target_hours DOUBLE PRECISION,
					progress_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
					notes TEXT NOT NULL DEFAULT '',
					resources TEXT[] NOT NULL DEFAULT '{}',
					weekly_hours JSONB NOT NULL DEFAULT '[]',
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE TABLE service_entries(
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					date DATE NOT NULL,
					description TEXT NOT NULL,
					hours DOUBLE PRECISION NOT NULL,
					reflection TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)`,
				`CREATE INDEX experiments_created_at ON experiments(created_at)`,
				`CREATE INDEX learning_goals_created_at ON learning_goals(created_at)`,
				`CREATE INDEX service_entries_date ON service_entries(date)`,
			},
			Down: []string{
				`DROP TABLE service_entries`,
				`DROP TABLE learning_goals`,
				`DROP TABLE experiments`,
			},
		},
	},
}

// Upgrade upgrades a database to the latest database schema version.
func Upgrade(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in reverse,
// ultimately resulting in dropping all of the tables.
func Drop(db *sql.DB) error {
	_, err := migrate.Exec(db, "postgres", migrationSource, migrate.Down)
	return err
}
