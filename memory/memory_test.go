// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/nebibs-backend/memory"
	"github.com/diffeo/nebibs-backend/table"
	"github.com/diffeo/nebibs-backend/table/tabletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TestTable runs the generic table tests against the memory backend.
func TestTable(t *testing.T) {
	suite.Run(t, &tabletest.Suite{
		NewClient: func(s *tabletest.Suite) table.Client {
			return memory.NewWithClock(s.Clock)
		},
	})
}

// TestTableSilentDeletes runs the generic tests against a store that
// never reports deleted rows.
func TestTableSilentDeletes(t *testing.T) {
	suite.Run(t, &tabletest.Suite{
		NewClient: func(s *tabletest.Suite) table.Client {
			return memory.NewWithOptions(memory.Options{
				Clock:         s.Clock,
				SilentDeletes: true,
			})
		},
	})
}

func TestSilentDeleteIsIndeterminate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewWithOptions(memory.Options{SilentDeletes: true})
	result, err := store.Table("t").Delete(ctx, table.Query{}.Eq("id", "missing"))
	require.NoError(t, err)
	assert.Equal(t, table.DeleteIndeterminate, result.Outcome)
	assert.False(t, result.ConfirmedZero())
}

func TestTimestamps(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()
	clk.Add(24 * time.Hour)
	store := memory.NewWithClock(clk)
	tbl := store.Table("t")

	rows, err := tbl.Insert(ctx, table.Row{"title": "x"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	created := clk.Now().UTC()
	assert.Equal(t, created, rows[0]["created_at"])
	assert.Equal(t, created, rows[0]["updated_at"])

	clk.Add(time.Hour)
	rows, err = tbl.Update(ctx, table.Query{}.Eq("id", rows[0]["id"]), table.Row{
		"title":      "y",
		"created_at": time.Time{},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created, rows[0]["created_at"])
	assert.Equal(t, clk.Now().UTC(), rows[0]["updated_at"])
	assert.Equal(t, "y", rows[0]["title"])
}

// TestNoAliasing checks that callers cannot modify stored rows through
// slices they passed in or got back.
func TestNoAliasing(t *testing.T) {
	ctx := context.Background()
	tbl := memory.New().Table("t")
	deps := []string{"a"}
	rows, err := tbl.Insert(ctx, table.Row{"dependencies": deps})
	require.NoError(t, err)
	deps[0] = "changed"
	rows[0]["dependencies"].([]string)[0] = "changed too"

	rows, err = tbl.Select(ctx, table.Query{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"a"}, rows[0]["dependencies"])
}
