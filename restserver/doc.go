// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a table store as the nebibs REST
// service.
//
// The complete REST API is defined in the restdata package.  Every
// request maps to at most one call on the table.Client the router is
// built with; the handlers keep no state between requests.
//
// HTTP Considerations
//
// Clients should use the standard HTTP Accept: header to request a
// specific format; all of the supported formats are JSON.  See "MIME
// Types" below.
//
// This interface does not (currently) support HTTP caching or
// authentication headers.  Cross-origin requests are allowed from
// anywhere when the router is wrapped with Wrap.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//     application/vnd.nebibs.v1+json
//
// JSON representation of version 1 of this interface.
//
//     application/json
//     text/json
//
// JSON representation of latest version of this interface.  A request
// body with no Content-Type: is read as JSON, and a request with no
// Accept: header gets application/json.
//
// URL Scheme
//
// The following URLs are defined:
//
//     /
//     /health
//     /docs
//     /openapi.json
//     /experiments
//     /experiments/{id}
//     /learning/goals
//     /learning/goals/{id}
//     /service/entries
//     /service/entries/{id}
package restserver
