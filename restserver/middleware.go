// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// Options configures the middleware Wrap puts around the router.
type Options struct {
	// Log receives request and panic logs.  If nil, uses the
	// logrus standard logger.
	Log logrus.FieldLogger

	// LogRequests logs every request, not just failures.
	LogRequests bool
}

// Wrap puts the standard middleware stack around a handler: panic
// recovery, optional request logging, and CORS headers that allow any
// origin.
func Wrap(h http.Handler, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	n := negroni.New()
	recovery := negroni.NewRecovery()
	recovery.PrintStack = false
	n.Use(recovery)
	if opts.LogRequests {
		n.Use(NewRequestLogger(log))
	}
	n.UseHandler(CORS(h))
	return n
}

// CORS allows cross-origin requests from anywhere, including
// preflight OPTIONS requests.  The request's origin is echoed back
// rather than "*", so that credentialed requests are allowed too.
func CORS(h http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOriginValidator(func(string) bool { return true }),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{
			"Accept",
			"Authorization",
			"Content-Type",
			"Origin",
			"X-Requested-With",
		}),
		handlers.ExposedHeaders([]string{"Location"}),
		handlers.AllowCredentials(),
	)(h)
}

// requestLogger is a negroni middleware that logs every request.
type requestLogger struct {
	log logrus.FieldLogger
}

// NewRequestLogger creates a negroni middleware that logs every
// request's method, path, status, and duration.
func NewRequestLogger(log logrus.FieldLogger) negroni.Handler {
	return &requestLogger{log: log}
}

func (l *requestLogger) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	start := time.Now()
	next(rw, r)
	res := rw.(negroni.ResponseWriter)
	l.log.WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.URL.Path,
		"status":   res.Status(),
		"duration": time.Since(start),
		"remote":   r.RemoteAddr,
	}).Info("request")
}
