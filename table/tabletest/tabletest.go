// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package tabletest provides generic functional tests for the table
// interface.  A typical backend test module embeds Suite and tells it
// how to build a clean client:
//
//     package mybackend
//
//     import (
//             "testing"
//             "github.com/diffeo/nebibs-backend/table"
//             "github.com/diffeo/nebibs-backend/table/tabletest"
//             "github.com/stretchr/testify/suite"
//     )
//
//     func TestTable(t *testing.T) {
//             suite.Run(t, &tabletest.Suite{
//                     NewClient: func(s *tabletest.Suite) table.Client {
//                             return New()
//                     },
//             })
//     }
//
// The tests only use the "experiments" and "service_entries" tables,
// with the columns the REST layer writes, so they also run against
// stores with a fixed schema.
package tabletest

import (
	"context"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/nebibs-backend/table"
	"github.com/stretchr/testify/suite"
)

// Suite is the generic table backend test suite.
type Suite struct {
	suite.Suite

	// Clock contains the alternate time source to be used in
	// tests.  It is re-initialized to a fresh mock clock before
	// every test.
	Clock *clock.Mock

	// NewClient returns a client over empty tables.  It is called
	// before every test, after Clock is set.
	NewClient func(s *Suite) table.Client

	// Client is the client under test for the current test.
	Client table.Client

	// Ctx is passed to every table operation.
	Ctx context.Context
}

// SetupTest creates a fresh client for every test.
func (s *Suite) SetupTest() {
	s.Clock = clock.NewMock()
	s.Ctx = context.Background()
	s.Client = s.NewClient(s)
}

// Experiments returns the experiments table of the current client.
func (s *Suite) Experiments() table.Table {
	return s.Client.Table("experiments")
}

// InsertExperiment inserts an experiment with the given title and
// returns the stored row; if it fails, fail the test.
func (s *Suite) InsertExperiment(title string) table.Row {
	rows, err := s.Experiments().Insert(s.Ctx, table.Row{
		"title":        title,
		"description":  "",
		"dependencies": []string{},
		"next_action":  "",
		"status":       "not_started",
		"notes":        "",
	})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	return rows[0]
}

// StringSlice converts a column value holding a list of strings to a
// []string, whatever list representation the backend chose.
func StringSlice(v interface{}) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		result := make([]string, len(vv))
		for i, item := range vv {
			result[i] = fmt.Sprint(item)
		}
		return result
	}
	return nil
}
