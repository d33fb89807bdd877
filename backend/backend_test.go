// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package backend

import (
	"context"
	"testing"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	tests := []struct {
		param string
		impl  string
		addr  string
	}{
		{"memory", "memory", ""},
		{"supabase", "supabase", ""},
		{"supabase:https://example.supabase.co", "supabase", "https://example.supabase.co"},
		{"postgres://user@localhost/db", "postgres", "//user@localhost/db"},
		{"postgres:host=localhost dbname=nebibs", "postgres", "host=localhost dbname=nebibs"},
	}
	for _, test := range tests {
		var b Backend
		if assert.NoError(t, b.Set(test.param), test.param) {
			assert.Equal(t, test.impl, b.Implementation, test.param)
			assert.Equal(t, test.addr, b.Address, test.param)
			assert.Equal(t, test.param, b.String())
		}
	}
}

func TestSetInvalid(t *testing.T) {
	var b Backend
	assert.Error(t, b.Set(""))
	assert.Error(t, b.Set("redis:localhost"))
}

func TestMemoryClient(t *testing.T) {
	b := Backend{Implementation: "memory"}
	client, err := b.Client(Credentials{})
	require.NoError(t, err)
	rows, err := client.Table("experiments").Select(context.Background(), table.Query{})
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSupabaseUnconfigured(t *testing.T) {
	for _, creds := range []Credentials{
		{},
		{URL: "https://example.supabase.co"},
		{Key: "secret"},
	} {
		b := Backend{Implementation: "supabase"}
		client, err := b.Client(creds)
		require.NoError(t, err)
		_, err = client.Table("experiments").Select(context.Background(), table.Query{})
		assert.Equal(t, table.ErrNotConfigured{Message: NotConfiguredMessage}, err)
	}
}

func TestSupabaseConfigured(t *testing.T) {
	b := Backend{Implementation: "supabase", Address: "https://example.supabase.co"}
	client, err := b.Client(Credentials{Key: "secret"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestUnknownImplementation(t *testing.T) {
	b := Backend{Implementation: "redis"}
	_, err := b.Client(Credentials{})
	assert.Error(t, err)
}
