// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines the data structures the nebibs REST API
// passes over the wire, and the conversions between them and table
// rows.  JSON encodings of these are passed across the wire as
// application/json, or as the more specific
// application/vnd.nebibs.v1+json MIME type.
//
// API Usage
//
// Each of the three record types lives in its own collection:
//
//     /experiments        Experiment
//     /learning/goals     LearningGoal
//     /service/entries    ServiceEntry
//
// GET the collection to list its records, most recent first.  POST a
// creation payload to the collection to create a record; the response
// is 201 Created with the new record and a Location: header.  GET,
// PATCH, or DELETE {collection}/{id} to read, partially update, or
// remove a single record.  Identifiers are UUIDs; anything else in
// the {id} position is rejected with 422 Unprocessable Entity.
//
// A PATCH body only changes the fields it names.  A PATCH that names
// no recognized fields changes nothing and returns the current record.
// Only LearningGoal.TargetHours may be explicitly set to null.
//
// Errors
//
// Every error response is a serialization of ErrorResponse, a JSON
// object with a single "detail" string, accompanied by a failing
// HTTP status code:
//
//     400  the request body could not be decoded
//     404  no record with the requested identifier
//     415  the request body has an unsupported Content-Type:
//     422  a malformed identifier, or a missing or ill-typed field
//     500  the store accepted an insert but returned nothing
//     502  the store failed, or returned a record that cannot be read
//     503  the store is not configured
//
// Timestamps are represented in JSON as RFC 3339 strings.  Service
// entry dates are plain YYYY-MM-DD strings.
package restdata

import "time"

// V1JSONMediaType is the preferred, most specific MIME type for the
// JSON representation of this content.
const V1JSONMediaType = "application/vnd.nebibs.v1+json"

// JSONMediaType is the generic JSON MIME type, which most clients
// will send and accept.
const JSONMediaType = "application/json"

// DateLayout is the time.Format layout of service entry dates.
const DateLayout = "2006-01-02"

// RootData is the response to GET /.
type RootData struct {
	Service string `json:"service"`
	Docs    string `json:"docs"`
}

// HealthData is the response to GET /health.
type HealthData struct {
	Status string `json:"status"`
}

// Experiment is a single tracked experiment.
type Experiment struct {
	ID           string    `json:"id" mapstructure:"id"`
	Title        string    `json:"title" mapstructure:"title"`
	Description  string    `json:"description" mapstructure:"description"`
	Dependencies []string  `json:"dependencies" mapstructure:"dependencies"`
	NextAction   string    `json:"next_action" mapstructure:"next_action"`
	Status       string    `json:"status" mapstructure:"status"`
	Notes        string    `json:"notes" mapstructure:"notes"`
	CreatedAt    time.Time `json:"created_at" mapstructure:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" mapstructure:"updated_at"`
}

// WeeklyHours records the hours spent toward a learning goal in one
// week.  WeekKey is free-form, typically an ISO week like "2025-W03".
type WeeklyHours struct {
	WeekKey string  `json:"week_key" mapstructure:"week_key"`
	Hours   float64 `json:"hours" mapstructure:"hours"`
}

// LearningGoal is a single learning goal.
type LearningGoal struct {
	ID    string `json:"id" mapstructure:"id"`
	Title string `json:"title" mapstructure:"title"`

	// TargetHours is the number of hours the goal should take,
	// or nil if there is no target.
	TargetHours *float64 `json:"target_hours" mapstructure:"target_hours"`

	// ProgressPercent is not bounded to 0-100.
	ProgressPercent float64       `json:"progress_percent" mapstructure:"progress_percent"`
	Notes           string        `json:"notes" mapstructure:"notes"`
	Resources       []string      `json:"resources" mapstructure:"resources"`
	WeeklyHours     []WeeklyHours `json:"weekly_hours" mapstructure:"weekly_hours"`
	CreatedAt       time.Time     `json:"created_at" mapstructure:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at" mapstructure:"updated_at"`
}

// ServiceEntry is a single logged block of service work.
type ServiceEntry struct {
	ID string `json:"id" mapstructure:"id"`

	// Date is the calendar date of the work, as YYYY-MM-DD.
	Date        string    `json:"date" mapstructure:"date"`
	Description string    `json:"description" mapstructure:"description"`
	Hours       float64   `json:"hours" mapstructure:"hours"`
	Reflection  string    `json:"reflection" mapstructure:"reflection"`
	CreatedAt   time.Time `json:"created_at" mapstructure:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" mapstructure:"updated_at"`
}

// ErrorResponse can be a response to any method, generally accompanied
// by a failing HTTP status code.
type ErrorResponse struct {
	// Detail is a human-readable description of the failure.
	Detail string `json:"detail"`
}

// Record is implemented by every stored entity type.
type Record interface {
	// RecordID returns the store-assigned identifier.
	RecordID() string
}

// RecordID returns the experiment's identifier.
func (e Experiment) RecordID() string { return e.ID }

// RecordID returns the goal's identifier.
func (g LearningGoal) RecordID() string { return g.ID }

// RecordID returns the entry's identifier.
func (e ServiceEntry) RecordID() string { return e.ID }
