// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// the table store.  There is no persistence and no sharing between
// processes.  The entire store is behind a single global mutex; this
// limits throughput in the name of simplicity.
//
// This is mostly intended as a reference implementation of the table
// interface that can be used for testing, including in-process
// testing of the REST layer, and for running the service locally
// without a hosted database.
//
// Tables spring into existence on first use.  Insert assigns a fresh
// UUID to the "id" column and the current time to "created_at" and
// "updated_at"; Update refreshes "updated_at".
package memory

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/nebibs-backend/table"
)

// Options controls the behavior of a memory store.
type Options struct {
	// Clock is the time source for store-assigned timestamps.
	// If nil, uses the system clock.
	Clock clock.Clock

	// SilentDeletes makes Delete report an indeterminate result
	// instead of the deleted rows, in the way some hosted stores
	// behave when they are not asked to return representations.
	SilentDeletes bool
}

// New creates a new table store that operates purely in memory.
func New() table.Client {
	return NewWithOptions(Options{})
}

// NewWithClock creates a new in-memory table store using an explicit
// time source.  This is intended for tests that need predictable
// timestamps.
func NewWithClock(clk clock.Clock) table.Client {
	return NewWithOptions(Options{Clock: clk})
}

// NewWithOptions creates a new in-memory table store with explicit
// options.
func NewWithOptions(opts Options) table.Client {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &memStore{
		clock:         opts.Clock,
		silentDeletes: opts.SilentDeletes,
		tables:        make(map[string]*memTable),
	}
}

type memStore struct {
	sem           sync.Mutex
	clock         clock.Clock
	silentDeletes bool
	tables        map[string]*memTable
}

// memTable holds the rows of one table in insertion order.
type memTable struct {
	store *memStore
	name  string
	rows  []table.Row
}

func (s *memStore) Table(name string) table.Table {
	s.sem.Lock()
	defer s.sem.Unlock()

	t := s.tables[name]
	if t == nil {
		t = &memTable{store: s, name: name}
		s.tables[name] = t
	}
	return t
}

// now returns the current time as the store records it, in UTC and
// truncated to microseconds in the way PostgreSQL timestamps are.
func (s *memStore) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

// do runs f holding the global lock.
func (t *memTable) do(f func() error) error {
	t.store.sem.Lock()
	defer t.store.sem.Unlock()
	return f()
}

func (t *memTable) Name() string {
	return t.name
}

func (t *memTable) matching(q table.Query) []int {
	var result []int
	for i, row := range t.rows {
		if q.Matches(row) {
			result = append(result, i)
		}
	}
	return result
}
