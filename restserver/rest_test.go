// Regression tests for rest.go.
//
// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/diffeo/nebibs-backend/memory"
	"github.com/diffeo/nebibs-backend/restdata"
	"github.com/diffeo/nebibs-backend/table"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type failResponseWriter struct {
	Headers    http.Header
	StatusCode int
}

func (rw *failResponseWriter) Header() http.Header {
	if rw.Headers == nil {
		rw.Headers = make(http.Header)
	}
	return rw.Headers
}

func (rw *failResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("foo")
}

func (rw *failResponseWriter) WriteHeader(code int) {
	rw.StatusCode = code
}

// TestDoubleFault checks that, if there is an error serializing a JSON
// response, it doesn't actually panic the process.
func TestDoubleFault(t *testing.T) {
	router := NewRouter(memory.New())
	req := &http.Request{
		Method: http.MethodGet,
		URL: &url.URL{
			Path: "/experiments",
		},
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
		Close:      true,
		Host:       "localhost",
	}
	resp := &failResponseWriter{}
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestPanic checks that a panicking handler produces a 500 response
// with a detail message.
func TestPanic(t *testing.T) {
	h := &resourceHandler{
		Resource: "test",
		Context: func(*http.Request) (*requestContext, error) {
			return &requestContext{}, nil
		},
		Get: func(*requestContext) (interface{}, error) {
			panic("oops")
		},
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"detail":"panic: oops"`)
}

func TestNegotiateResponse(t *testing.T) {
	tests := []struct {
		accept string
		want   string
		status int
	}{
		{"", restdata.JSONMediaType, 0},
		{"*/*", restdata.JSONMediaType, 0},
		{"application/*", restdata.JSONMediaType, 0},
		{"text/*", "text/json", 0},
		{"application/json", "application/json", 0},
		{"text/html, application/json;q=0.5", "application/json", 0},
		{"text/json;q=0.5, " + restdata.V1JSONMediaType, restdata.V1JSONMediaType, 0},
		{"text/html", "", http.StatusNotAcceptable},
		{"application/json;q=0", "", http.StatusNotAcceptable},
	}
	for _, test := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if test.accept != "" {
			req.Header.Set("Accept", test.accept)
		}
		got, err := negotiateResponse(req)
		if test.status == 0 {
			if assert.NoError(t, err, test.accept) {
				assert.Equal(t, test.want, got, test.accept)
			}
		} else if assert.Error(t, err, test.accept) {
			assert.Equal(t, test.status, statusOf(err), test.accept)
		}
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusOf(restdata.ErrNotFound{Message: "x"}))
	assert.Equal(t, http.StatusServiceUnavailable,
		statusOf(pkgerrors.Wrap(table.ErrNotConfigured{}, "select")))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("bug")))
	assert.Equal(t, http.StatusMethodNotAllowed, statusOf(errMethodNotAllowed{Method: "PUT"}))
}
