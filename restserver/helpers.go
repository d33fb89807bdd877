// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains various HTTP-related helpers.

import (
	"fmt"
	"net/url"

	"github.com/gorilla/mux"
)

// urlBuilder builds several URLs from named routes, remembering the
// first error:
//
//     err := buildURLs(api.Router, "id", id).
//             URL(&location, "experiment").
//             Error
type urlBuilder struct {
	Router *mux.Router
	Params []string
	Error  error
}

func buildURLs(router *mux.Router, params ...string) *urlBuilder {
	return &urlBuilder{Router: router, Params: params}
}

func (u *urlBuilder) Route(route string) *mux.Route {
	if u.Error != nil {
		return nil
	}
	r := u.Router.Get(route)
	if r == nil {
		u.Error = fmt.Errorf("No such route %q", route)
	}
	return r
}

func (u *urlBuilder) URL(out *string, route string) *urlBuilder {
	var r *mux.Route
	var url *url.URL
	if u.Error == nil {
		r = u.Route(route)
	}
	if u.Error == nil {
		url, u.Error = r.URL(u.Params...)
	}
	if u.Error == nil {
		*out = url.String()
	}
	return u
}

// PathTemplate produces the path template for route, with its
// variables left as {name} placeholders, as OpenAPI path keys are
// written.
func (u *urlBuilder) PathTemplate(out *string, route string) *urlBuilder {
	var r *mux.Route
	var tmpl string
	if u.Error == nil {
		r = u.Route(route)
	}
	if u.Error == nil {
		tmpl, u.Error = r.GetPathTemplate()
	}
	if u.Error == nil {
		*out = tmpl
	}
	return u
}
