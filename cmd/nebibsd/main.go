// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Nebibsd serves the nebibs REST API over a hosted Supabase project,
// or over PostgreSQL or an in-memory store for development.  Typical
// use is
//
//     SUPABASE_URL=https://xyz.supabase.co SUPABASE_KEY=... nebibsd
//
// If the Supabase URL or key is missing the server still starts, and
// every data request fails with 503 Service Unavailable.
package main

import (
	"os"

	"github.com/diffeo/nebibs-backend/backend"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	app := newApp(run)
	if err := app.Run(os.Args); err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("nebibsd failed")
	}
}

// newApp creates the command-line application, which calls action
// with the loaded configuration.
func newApp(action func(config) error) *cli.App {
	app := cli.NewApp()
	app.Name = "nebibsd"
	app.Usage = "Serve the nebibs REST API"
	app.Version = "0.1.0"
	app.Flags = flags
	app.Action = func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		return action(cfg)
	}
	return app
}

// run starts the server and blocks until it stops.
func run(cfg config) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	var b backend.Backend
	if err := b.Set(cfg.Backend); err != nil {
		return err
	}
	client, err := b.Client(backend.Credentials{
		URL: cfg.SupabaseURL,
		Key: cfg.SupabaseKey,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err":     err,
			"backend": b.String(),
		}).Fatal("Could not create table backend")
		return err
	}
	if b.Implementation == "supabase" && (cfg.SupabaseKey == "" || (cfg.SupabaseURL == "" && b.Address == "")) {
		logrus.Warn(backend.NotConfiguredMessage)
	}

	server := &HTTP{
		client:      client,
		laddr:       cfg.HTTP,
		logRequests: cfg.LogRequests,
		log:         logrus.StandardLogger(),
	}
	return server.Serve()
}
