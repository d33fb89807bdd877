// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package postgrest provides a table store that talks to a hosted
// database through its PostgREST-style REST API, as Supabase exposes
// it.  Every table is a resource at {url}/rest/v1/{table}; rows are
// selected with GET, inserted with POST, updated with PATCH, and
// deleted with DELETE, with filters and ordering in the query string:
//
//     GET /rest/v1/experiments?select=*&id=eq.0b6e...&order=created_at.desc
//
// Every request carries the service key both as the "apikey" header
// and as a bearer token, and asks the server to return
// representations of changed rows.  Some deployments answer a DELETE
// with 204 No Content regardless; that is reported as an
// indeterminate delete.
package postgrest

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"reflect"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/jtacoma/uritemplates"
	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
)

// tableTemplate is the URI template of a table resource, relative to
// the service URL.
const tableTemplate = "rest/v1/{table}"

type restClient struct {
	base *url.URL
	key  string
	http *http.Client
}

// New creates a table.Client for the hosted service at serviceURL,
// authenticating with key.  This does not contact the service.
func New(serviceURL, key string) (table.Client, error) {
	return NewWithHTTPClient(serviceURL, key, http.DefaultClient)
}

// NewWithHTTPClient creates a table.Client that sends its requests
// through a specific HTTP client.
func NewWithHTTPClient(serviceURL, key string, hc *http.Client) (table.Client, error) {
	base, err := url.Parse(serviceURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse service URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("service URL %q is not absolute", serviceURL)
	}
	// Make relative references resolve below the whole path
	if len(base.Path) == 0 || base.Path[len(base.Path)-1] != '/' {
		base.Path += "/"
	}
	return &restClient{base: base, key: key, http: hc}, nil
}

func (c *restClient) Table(name string) table.Table {
	return &restTable{client: c, name: name}
}

// tableURL returns the resource URL for a table, with query
// parameters.
func (c *restClient) tableURL(name string, query url.Values) (*url.URL, error) {
	tmpl, err := uritemplates.Parse(tableTemplate)
	if err != nil {
		return nil, err
	}
	expanded, err := tmpl.Expand(map[string]interface{}{"table": name})
	if err != nil {
		return nil, err
	}
	u, err := c.base.Parse(expanded)
	if err != nil {
		return nil, err
	}
	u.RawQuery = query.Encode()
	return u, nil
}

// jsonHandle returns a codec handle that decodes JSON objects as
// string-keyed maps.
func jsonHandle() *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return h
}

// do performs some HTTP action.  If in is non-nil, it is serialized
// as the JSON body of the request.  If the response has a non-empty
// body, it is decoded into out, which must be of pointer type, and
// do returns true; if there is no body, out is untouched and do
// returns false.
func (c *restClient) do(ctx context.Context, method string, u *url.URL, in, out interface{}) (decoded bool, err error) {
	var body io.Reader
	if in != nil {
		var buf []byte
		encoder := codec.NewEncoderBytes(&buf, jsonHandle())
		if err = encoder.Encode(in); err != nil {
			return false, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, u.String(), body)
	if err != nil {
		return false, err
	}
	req = req.WithContext(ctx)
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=representation")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer func() {
		err = firstError(err, resp.Body.Close())
	}()

	if err = checkHTTPStatus(resp); err != nil {
		return false, err
	}

	content, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return false, nil
	}
	decoder := codec.NewDecoderBytes(content, jsonHandle())
	if err = decoder.Decode(out); err != nil {
		return false, errors.Wrap(err, "decode response")
	}
	return true, nil
}

func firstError(e1, e2 error) error {
	if e1 != nil {
		return e1
	}
	return e2
}
