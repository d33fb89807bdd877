// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diffeo/nebibs-backend/restserver"
	"github.com/diffeo/nebibs-backend/table"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const shutdownTimeout = 10 * time.Second

// HTTP serves the REST API.
type HTTP struct {
	client      table.Client
	laddr       string
	logRequests bool
	log         logrus.FieldLogger
}

// Handler builds the complete HTTP handler, including /metrics.
func (h *HTTP) Handler() http.Handler {
	r := mux.NewRouter()
	restserver.PopulateRouter(r, h.client, h.log)
	r.Handle("/metrics", promhttp.Handler())
	return restserver.Wrap(r, restserver.Options{
		Log:         h.log,
		LogRequests: h.logRequests,
	})
}

// Serve runs an HTTP server on the configured local address until it
// fails or the process receives SIGINT or SIGTERM.
func (h *HTTP) Serve() error {
	server := &http.Server{
		Addr:    h.laddr,
		Handler: h.Handler(),
	}

	done := make(chan error, 1)
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		sig := <-signals
		h.log.WithFields(logrus.Fields{"signal": sig}).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		done <- server.Shutdown(ctx)
	}()

	h.log.WithFields(logrus.Fields{"addr": h.laddr}).Info("serving HTTP")
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return <-done
}
