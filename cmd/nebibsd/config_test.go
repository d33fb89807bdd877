// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every environment variable the flags read, for the
// duration of a test.
func clearEnv(t *testing.T) {
	for _, name := range []string{
		"NEBIBS_HTTP", "NEBIBS_BACKEND", "SUPABASE_URL", "SUPABASE_KEY",
		"NEBIBS_CONFIG", "NEBIBS_LOG_REQUESTS", "NEBIBS_LOG_LEVEL",
	} {
		if value, present := os.LookupEnv(name); present {
			require.NoError(t, os.Unsetenv(name))
			name := name
			t.Cleanup(func() { os.Setenv(name, value) })
		}
	}
}

// runApp runs the application with args and returns the configuration
// it would have served with.
func runApp(t *testing.T, args ...string) config {
	var got config
	app := newApp(func(cfg config) error {
		got = cfg
		return nil
	})
	require.NoError(t, app.Run(append([]string{"nebibsd"}, args...)))
	return got
}

func writeConfig(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "nebibs.yaml")
	require.NoError(t, ioutil.WriteFile(filename, []byte(content), 0600))
	return filename
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, defaultConfig(), runApp(t))
}

func TestFlags(t *testing.T) {
	clearEnv(t)
	cfg := runApp(t,
		"--http", ":9000",
		"--backend", "memory",
		"--supabase-url", "https://example.supabase.co",
		"--supabase-key", "secret",
		"--log-requests",
		"--log-level", "debug",
	)
	assert.Equal(t, config{
		HTTP:        ":9000",
		Backend:     "memory",
		SupabaseURL: "https://example.supabase.co",
		SupabaseKey: "secret",
		LogRequests: true,
		LogLevel:    "debug",
	}, cfg)
}

func TestEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_URL", "https://env.supabase.co")
	t.Setenv("SUPABASE_KEY", "env-secret")
	cfg := runApp(t)
	assert.Equal(t, "https://env.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, "env-secret", cfg.SupabaseKey)
	assert.Equal(t, "supabase", cfg.Backend)
}

func TestConfigFile(t *testing.T) {
	clearEnv(t)
	filename := writeConfig(t, `
http: ":7000"
backend: postgres:host=localhost
supabase_key: from-file
log_requests: true
`)
	cfg := runApp(t, "--config", filename, "--supabase-key", "from-flag")
	assert.Equal(t, config{
		HTTP:        ":7000",
		Backend:     "postgres:host=localhost",
		SupabaseKey: "from-flag",
		LogRequests: true,
		LogLevel:    "info",
	}, cfg)
}

func TestConfigFileMissing(t *testing.T) {
	clearEnv(t)
	app := newApp(func(config) error { return nil })
	err := app.Run([]string{"nebibsd", "--config", filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}
