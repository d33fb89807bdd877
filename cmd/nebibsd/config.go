// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"
)

// config is the complete daemon configuration.  It can come from a
// YAML file, and command-line flags and environment variables
// override the file.
type config struct {
	HTTP        string `yaml:"http"`
	Backend     string `yaml:"backend"`
	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key"`
	LogRequests bool   `yaml:"log_requests"`
	LogLevel    string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		HTTP:     ":8000",
		Backend:  "supabase",
		LogLevel: "info",
	}
}

var flags = []cli.Flag{
	cli.StringFlag{
		Name:   "http",
		Value:  defaultConfig().HTTP,
		Usage:  "[ip]:port for HTTP REST interface",
		EnvVar: "NEBIBS_HTTP",
	},
	cli.StringFlag{
		Name:   "backend",
		Value:  defaultConfig().Backend,
		Usage:  "impl[:address] of the table store (memory, supabase, postgres:conn)",
		EnvVar: "NEBIBS_BACKEND",
	},
	cli.StringFlag{
		Name:   "supabase-url",
		Usage:  "URL of the hosted Supabase project",
		EnvVar: "SUPABASE_URL",
	},
	cli.StringFlag{
		Name:   "supabase-key",
		Usage:  "service key of the hosted Supabase project",
		EnvVar: "SUPABASE_KEY",
	},
	cli.StringFlag{
		Name:   "config",
		Usage:  "global configuration YAML file",
		EnvVar: "NEBIBS_CONFIG",
	},
	cli.BoolFlag{
		Name:   "log-requests",
		Usage:  "log all requests",
		EnvVar: "NEBIBS_LOG_REQUESTS",
	},
	cli.StringFlag{
		Name:   "log-level",
		Value:  defaultConfig().LogLevel,
		Usage:  "minimum level of log messages",
		EnvVar: "NEBIBS_LOG_LEVEL",
	},
}

func loadConfigYaml(filename string) (config, error) {
	result := defaultConfig()
	bytes, err := ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, errors.Wrapf(err, "load %v", filename)
}

// loadConfig builds the configuration from the command line.
func loadConfig(c *cli.Context) (config, error) {
	cfg := defaultConfig()
	if filename := c.String("config"); filename != "" {
		var err error
		cfg, err = loadConfigYaml(filename)
		if err != nil {
			return cfg, err
		}
	}

	stringFlags := map[string]*string{
		"http":         &cfg.HTTP,
		"backend":      &cfg.Backend,
		"supabase-url": &cfg.SupabaseURL,
		"supabase-key": &cfg.SupabaseKey,
		"log-level":    &cfg.LogLevel,
	}
	for name, dest := range stringFlags {
		if c.IsSet(name) {
			*dest = c.String(name)
		}
	}
	if c.IsSet("log-requests") {
		cfg.LogRequests = c.Bool("log-requests")
	}
	return cfg, nil
}
