// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"context"
	"time"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/prometheus/client_golang/prometheus"
)

var requestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "nebibs",
		Subsystem: "rest",
		Name:      "requests_total",
		Help:      "REST requests by resource, operation, and status",
	},
	[]string{
		"resource",
		"operation",
		"status",
	},
)

var tableSeconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "nebibs",
		Subsystem: "table",
		Name:      "call_seconds",
		Help:      "Latency of table store calls",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{
		"table",
		"operation",
	},
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(tableSeconds)
}

// instrument wraps a table client so that every call is timed.
func instrument(c table.Client) table.Client {
	return instrumentedClient{c}
}

type instrumentedClient struct {
	table.Client
}

func (c instrumentedClient) Table(name string) table.Table {
	return instrumentedTable{c.Client.Table(name)}
}

type instrumentedTable struct {
	table.Table
}

func (t instrumentedTable) observe(operation string, start time.Time) {
	tableSeconds.WithLabelValues(t.Name(), operation).Observe(time.Since(start).Seconds())
}

func (t instrumentedTable) Select(ctx context.Context, q table.Query) ([]table.Row, error) {
	defer t.observe("select", time.Now())
	return t.Table.Select(ctx, q)
}

func (t instrumentedTable) Insert(ctx context.Context, row table.Row) ([]table.Row, error) {
	defer t.observe("insert", time.Now())
	return t.Table.Insert(ctx, row)
}

func (t instrumentedTable) Update(ctx context.Context, q table.Query, changes table.Row) ([]table.Row, error) {
	defer t.observe("update", time.Now())
	return t.Table.Update(ctx, q, changes)
}

func (t instrumentedTable) Delete(ctx context.Context, q table.Query) (table.DeleteResult, error) {
	defer t.observe("delete", time.Now())
	return t.Table.Delete(ctx, q)
}
