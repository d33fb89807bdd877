// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"context"
	"database/sql"
	"sort"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/pkg/errors"
)

type pgTable struct {
	store   *pgStore
	name    string
	columns []column
}

func (t *pgTable) Name() string {
	return t.name
}

// check returns an error if this table is not in the schema.
func (t *pgTable) check() error {
	if t.columns == nil {
		return table.ErrNoSuchTable{Name: t.name}
	}
	return nil
}

// column finds a column by name.
func (t *pgTable) column(name string) (column, error) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, nil
		}
	}
	return column{}, table.ErrNoSuchColumn{Table: t.name, Column: name}
}

// outputs lists every column name, for SELECT and RETURNING.
func (t *pgTable) outputs() []string {
	result := make([]string, len(t.columns))
	for i, c := range t.columns {
		result[i] = c.Name
	}
	return result
}

// conditions converts the filters in q to SQL conditions.
func (t *pgTable) conditions(params *queryParams, q table.Query) ([]string, error) {
	var result []string
	for _, f := range q.Filters {
		c, err := t.column(f.Field)
		if err != nil {
			return nil, err
		}
		v, err := toSQL(c.Kind, f.Value)
		if err != nil {
			return nil, err
		}
		result = append(result, c.Name+"="+params.Param(v))
	}
	return result, nil
}

// changes converts a row to a field list, skipping store-assigned
// columns.  Field order is deterministic.
func (t *pgTable) changes(params *queryParams, row table.Row) (fieldList, error) {
	fields := fieldList{}
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch name {
		case idColumnName, createdAtColumnName, updatedAtColumnName:
			continue
		}
		c, err := t.column(name)
		if err != nil {
			return fields, err
		}
		v, err := toSQL(c.Kind, row[name])
		if err != nil {
			return fields, err
		}
		fields.Add(params, c.Name, v)
	}
	return fields, nil
}

// query runs a statement that returns full rows, and collects them.
func (t *pgTable) query(ctx context.Context, query string, params queryParams) ([]table.Row, error) {
	var result []table.Row
	err := queryAndScan(ctx, t.store.db, query, params, func(rows *sql.Rows) error {
		targets := make([]interface{}, len(t.columns))
		extracts := make([]func() (interface{}, error), len(t.columns))
		for i, c := range t.columns {
			targets[i], extracts[i] = scanTarget(c.Kind)
		}
		if err := rows.Scan(targets...); err != nil {
			return err
		}
		row := make(table.Row, len(t.columns))
		for i, c := range t.columns {
			v, err := extracts[i]()
			if err != nil {
				return err
			}
			row[c.Name] = v
		}
		result = append(result, row)
		return nil
	})
	return result, err
}

func (t *pgTable) Select(ctx context.Context, q table.Query) ([]table.Row, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	params := queryParams{}
	conditions, err := t.conditions(&params, q)
	if err != nil {
		return nil, err
	}
	query := buildSelect(t.outputs(), []string{t.name}, conditions)
	if q.Order != nil {
		c, err := t.column(q.Order.Field)
		if err != nil {
			return nil, err
		}
		query += " ORDER BY " + c.Name
		if q.Order.Desc {
			query += " DESC"
		}
	}
	rows, err := t.query(ctx, query, params)
	return rows, errors.Wrapf(err, "select from %v", t.name)
}

func (t *pgTable) Insert(ctx context.Context, row table.Row) ([]table.Row, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	params := queryParams{}
	fields, err := t.changes(&params, row)
	if err != nil {
		return nil, err
	}
	query := fields.InsertStatement(t.name) + returning(t.outputs())
	rows, err := t.query(ctx, query, params)
	return rows, errors.Wrapf(err, "insert into %v", t.name)
}

func (t *pgTable) Update(ctx context.Context, q table.Query, changes table.Row) ([]table.Row, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	params := queryParams{}
	fields, err := t.changes(&params, changes)
	if err != nil {
		return nil, err
	}
	fields.AddDirect(updatedAtColumnName, "now()")
	conditions, err := t.conditions(&params, q)
	if err != nil {
		return nil, err
	}
	query := buildUpdate(t.name, fields.UpdateChanges(), conditions) + returning(t.outputs())
	rows, err := t.query(ctx, query, params)
	return rows, errors.Wrapf(err, "update %v", t.name)
}

func (t *pgTable) Delete(ctx context.Context, q table.Query) (table.DeleteResult, error) {
	if err := t.check(); err != nil {
		return table.DeleteResult{}, err
	}
	params := queryParams{}
	conditions, err := t.conditions(&params, q)
	if err != nil {
		return table.DeleteResult{}, err
	}
	query := buildDelete(t.name, conditions) + returning(t.outputs())
	rows, err := t.query(ctx, query, params)
	if err != nil {
		return table.DeleteResult{}, errors.Wrapf(err, "delete from %v", t.name)
	}
	return table.Confirmed(rows), nil
}
