// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgrest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/diffeo/nebibs-backend/memory"
	"github.com/diffeo/nebibs-backend/postgrest"
	"github.com/diffeo/nebibs-backend/table"
	"github.com/diffeo/nebibs-backend/table/tabletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/ugorji/go/codec"
)

const testKey = "service-key"

// fakeService is a minimal PostgREST lookalike over a memory store.
type fakeService struct {
	t             *testing.T
	store         table.Client
	silentDeletes bool

	mu       sync.Mutex
	requests []*http.Request
}

// Requests returns every request the service has seen.
func (f *fakeService) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request{}, f.requests...)
}

func jsonHandle() *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return h
}

// wireRows converts store rows to what a JSON service would send.
func wireRows(rows []table.Row) []table.Row {
	result := make([]table.Row, len(rows))
	for i, row := range rows {
		out := table.Row{}
		for k, v := range row {
			if t, ok := v.(time.Time); ok {
				v = t.Format(time.RFC3339Nano)
			}
			out[k] = v
		}
		result[i] = out
	}
	return result
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()
	if r.Header.Get("apikey") != testKey || r.Header.Get("Authorization") != "Bearer "+testKey {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid API key","hint":"check the key"}`))
		return
	}
	if !strings.HasPrefix(r.URL.Path, "/rest/v1/") {
		http.NotFound(w, r)
		return
	}
	tbl := f.store.Table(strings.TrimPrefix(r.URL.Path, "/rest/v1/"))

	q := table.Query{}
	for key, values := range r.URL.Query() {
		switch key {
		case "select":
		case "order":
			parts := strings.SplitN(values[0], ".", 2)
			q = q.OrderBy(parts[0], len(parts) > 1 && parts[1] == "desc")
		default:
			q = q.Eq(key, strings.TrimPrefix(values[0], "eq."))
		}
	}

	var body table.Row
	if r.Body != nil && r.ContentLength != 0 {
		if err := codec.NewDecoder(r.Body, jsonHandle()).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var rows []table.Row
	var err error
	status := http.StatusOK
	switch r.Method {
	case http.MethodGet:
		rows, err = tbl.Select(r.Context(), q)
	case http.MethodPost:
		rows, err = tbl.Insert(r.Context(), body)
		status = http.StatusCreated
	case http.MethodPatch:
		rows, err = tbl.Update(r.Context(), q, body)
	case http.MethodDelete:
		var result table.DeleteResult
		result, err = tbl.Delete(r.Context(), q)
		if err == nil && f.silentDeletes {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		rows = result.Rows
	default:
		http.Error(w, "bad method", http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []table.Row{}
	}
	var out []byte
	if err := codec.NewEncoderBytes(&out, jsonHandle()).Encode(wireRows(rows)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// newFake starts a fake service.  If s is non-nil, the service's
// store uses the suite's mock clock.
func newFake(t *testing.T, s *tabletest.Suite, silent bool) (*fakeService, *httptest.Server) {
	fake := &fakeService{t: t, silentDeletes: silent}
	if s != nil {
		fake.store = memory.NewWithClock(s.Clock)
	} else {
		fake.store = memory.New()
	}
	return fake, httptest.NewServer(fake)
}

func runSuite(t *testing.T, silent bool) {
	var servers []*httptest.Server
	defer func() {
		for _, server := range servers {
			server.Close()
		}
	}()
	suite.Run(t, &tabletest.Suite{
		NewClient: func(s *tabletest.Suite) table.Client {
			_, server := newFake(t, s, silent)
			servers = append(servers, server)
			client, err := postgrest.New(server.URL, testKey)
			s.Require().NoError(err)
			return client
		},
	})
}

// TestTable runs the generic table tests through the REST client.
func TestTable(t *testing.T) {
	runSuite(t, false)
}

// TestTableSilentDeletes runs the generic table tests against a
// service that answers every delete with 204 No Content.
func TestTableSilentDeletes(t *testing.T) {
	runSuite(t, true)
}

func TestRequestShape(t *testing.T) {
	fake, server := newFake(t, nil, false)
	defer server.Close()
	client, err := postgrest.New(server.URL+"/", testKey)
	require.NoError(t, err)

	_, err = client.Table("service_entries").Select(context.Background(),
		table.Query{}.Eq("id", "abc").OrderBy("date", true))
	require.NoError(t, err)
	requests := fake.Requests()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/v1/service_entries", req.URL.Path)
	assert.Equal(t, "*", req.URL.Query().Get("select"))
	assert.Equal(t, "eq.abc", req.URL.Query().Get("id"))
	assert.Equal(t, "date.desc", req.URL.Query().Get("order"))
	assert.Equal(t, "return=representation", req.Header.Get("Prefer"))
}

func TestSilentDeleteIsIndeterminate(t *testing.T) {
	_, server := newFake(t, nil, true)
	defer server.Close()
	client, err := postgrest.New(server.URL, testKey)
	require.NoError(t, err)

	result, err := client.Table("experiments").Delete(context.Background(), table.Query{}.Eq("id", "missing"))
	require.NoError(t, err)
	assert.Equal(t, table.DeleteIndeterminate, result.Outcome)
}

func TestServiceError(t *testing.T) {
	_, server := newFake(t, nil, false)
	defer server.Close()
	client, err := postgrest.New(server.URL, "wrong-key")
	require.NoError(t, err)

	_, err = client.Table("experiments").Select(context.Background(), table.Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
	assert.Contains(t, err.Error(), "401")
}

func TestPlainHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()
	client, err := postgrest.New(server.URL, testKey)
	require.NoError(t, err)

	_, err = client.Table("experiments").Insert(context.Background(), table.Row{"title": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestBadServiceURL(t *testing.T) {
	_, err := postgrest.New("not a url", testKey)
	assert.Error(t, err)
	_, err = postgrest.New("", testKey)
	assert.Error(t, err)
}
