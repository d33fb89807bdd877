// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package backend provides a standard way to construct a table store
// based on command-line flags.
package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diffeo/nebibs-backend/memory"
	"github.com/diffeo/nebibs-backend/postgres"
	"github.com/diffeo/nebibs-backend/postgrest"
	"github.com/diffeo/nebibs-backend/table"
)

// NotConfiguredMessage is the error every table operation reports
// when the hosted store is selected without its URL or key.
const NotConfiguredMessage = "SUPABASE_URL and SUPABASE_KEY must be set"

// Backend describes user-visible parameters to store table data.
// This implements the flag.Value interface, and so a typical use is
//
//     func main() {
//         backend := backend.Backend{Implementation: "supabase"}
//         flag.Var(&backend, "backend", "impl:address of table storage")
//         flag.Parse()
//         client, err := backend.Client(backend.Credentials{URL: url, Key: key})
//     }
type Backend struct {
	// Implementation holds the name of the implementation; for
	// instance, "memory".
	Implementation string

	// Address holds some backend-specific address, such as a
	// database connect string.
	Address string
}

// Credentials locate and authenticate the hosted store.
type Credentials struct {
	URL string
	Key string
}

// Client creates a new table client.  This generally should be only
// called once.  If the backend has in-process state, such as a
// database connection pool or an in-memory store, calling this
// multiple times will create multiple copies of that state.
//
// For the "supabase" implementation, the service URL is creds.URL,
// or b.Address if that is empty.  If either the URL or the key is
// missing, Client does not fail; it returns a client whose every
// operation fails with table.ErrNotConfigured, so the process can
// still start and report the problem per request.
func (b *Backend) Client(creds Credentials) (table.Client, error) {
	switch b.Implementation {
	case "memory":
		return memory.New(), nil
	case "postgres":
		return postgres.New(b.Address)
	case "supabase":
		url := creds.URL
		if url == "" {
			url = b.Address
		}
		if url == "" || creds.Key == "" {
			return table.Unconfigured(NotConfiguredMessage), nil
		}
		return postgrest.New(url, creds.Key)
	default:
		return nil, fmt.Errorf("unknown table backend %q", b.Implementation)
	}
}

// String renders a backend description as a string.
func (b *Backend) String() string {
	if b.Address == "" {
		return b.Implementation
	}
	return b.Implementation + ":" + b.Address
}

// Set parses a string into an existing backend description.  The
// string should be of the form "implementation:address", where
// address can be any string.  Set checks to see if the provided
// implementation is any of the known implementations, and returns an
// appropriate error if not.
//
// This is part of the flag.Value interface.  Note that neither this
// nor Client() attempts to validate the b.Address part of the string
// before it is used.
func (b *Backend) Set(param string) error {
	if param == "" {
		return errors.New("must specify a backend type")
	}
	parts := strings.SplitN(param, ":", 2)
	switch parts[0] {
	case "memory", "postgres", "supabase":
	default:
		return fmt.Errorf("unknown table backend %q", parts[0])
	}
	b.Implementation = parts[0]
	b.Address = ""
	if len(parts) == 2 {
		b.Address = parts[1]
	}
	return nil
}
