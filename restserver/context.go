// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diffeo/nebibs-backend/restdata"
	"github.com/gorilla/mux"
)

// requestContext holds all of the information and objects that can be
// extracted from URL parameters.
type requestContext struct {
	// Ctx is the context of the HTTP request.  It is passed to
	// every table operation, so a client disconnect cancels the
	// store call.
	Ctx context.Context

	// ID is the canonical record identifier from the URL, or
	// empty if the route has none.
	ID string

	QueryParams url.Values
}

// Context builds a requestContext from an HTTP request.  A malformed
// identifier fails here, before any handler or store call.
func (api *restAPI) Context(req *http.Request) (ctx *requestContext, err error) {
	ctx = &requestContext{
		Ctx:         req.Context(),
		QueryParams: req.URL.Query(),
	}
	vars := mux.Vars(req)
	if id, present := vars["id"]; present {
		ctx.ID, err = restdata.ParseID(id)
	}
	return
}
