// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"reflect"
	"time"

	"github.com/diffeo/nebibs-backend/table"
)

// payloadShape describes the fields a request body may carry for one
// operation on one kind of record.
type payloadShape struct {
	// fields lists every recognized field.  Anything else in a
	// request body is ignored.
	fields []string

	// required fields must be present.  Only meaningful for
	// creation payloads.
	required []string

	// nullable fields may be explicitly null.
	nullable map[string]bool
}

// filter returns the recognized fields of body, checking for missing
// and null fields.
func (s payloadShape) filter(body map[string]interface{}) (map[string]interface{}, error) {
	for _, k := range s.required {
		if _, present := body[k]; !present {
			return nil, ErrValidation{Field: k, Message: "field required"}
		}
	}
	result := make(map[string]interface{})
	for _, k := range s.fields {
		v, present := body[k]
		if !present {
			continue
		}
		if v == nil && !s.nullable[k] {
			return nil, ErrValidation{Field: k, Message: "may not be null"}
		}
		result[k] = v
	}
	return result, nil
}

// decode filters body and decodes it into out, reporting type errors
// as validation errors.  It returns the recognized fields present.
func (s payloadShape) decode(body map[string]interface{}, out interface{}) (map[string]interface{}, error) {
	fields, err := s.filter(body)
	if err != nil {
		return nil, err
	}
	if err := checkWeeklyHours(fields["weekly_hours"]); err != nil {
		return nil, err
	}
	if err := decodeRow(fields, out); err != nil {
		return nil, s.typeError(fields, out)
	}
	if date, ok := fields["date"].(string); ok {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return nil, ErrValidation{Field: "date", Message: "must be a date in YYYY-MM-DD form"}
		}
	}
	return fields, nil
}

// typeError names the first field of fields that does not decode into
// out's type by itself.
func (s payloadShape) typeError(fields map[string]interface{}, out interface{}) error {
	t := reflect.TypeOf(out).Elem()
	for _, k := range s.fields {
		v, present := fields[k]
		if !present {
			continue
		}
		single := reflect.New(t).Interface()
		if decodeRow(map[string]interface{}{k: v}, single) != nil {
			return ErrValidation{Field: k, Message: "wrong type"}
		}
	}
	return ErrValidation{Message: "wrong type"}
}

// describe returns the public description of the shape.
func (s payloadShape) describe() PayloadFields {
	result := PayloadFields{Fields: s.fields, Required: s.required}
	for _, k := range s.fields {
		if s.nullable[k] {
			result.Nullable = append(result.Nullable, k)
		}
	}
	return result
}

// PayloadFields describes a request body: the fields it may carry,
// which of them must be present, and which may be null.
type PayloadFields struct {
	Fields   []string
	Required []string
	Nullable []string
}

// Payloads describes the creation and update bodies of one kind of
// record.
type Payloads struct {
	Create PayloadFields
	Update PayloadFields
}

// checkWeeklyHours verifies that every item of a weekly_hours list
// names both its week and its hours.
func checkWeeklyHours(v interface{}) error {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return ErrValidation{Field: "weekly_hours", Message: "items must be objects"}
		}
		for _, k := range []string{"week_key", "hours"} {
			if obj[k] == nil {
				return ErrValidation{Field: "weekly_hours." + k, Message: "field required"}
			}
		}
	}
	return nil
}

func stringOr(p *string, dflt string) string {
	if p == nil {
		return dflt
	}
	return *p
}

func stringList(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}

// nullableFloat converts an optional number to a row value, nil if
// absent.
func nullableFloat(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func weeklyHoursValue(l []WeeklyHours) []interface{} {
	result := make([]interface{}, len(l))
	for i, wh := range l {
		result[i] = map[string]interface{}{
			"week_key": wh.WeekKey,
			"hours":    wh.Hours,
		}
	}
	return result
}

// pick returns the values of row named in present.
func pick(row table.Row, present map[string]interface{}) table.Row {
	result := table.Row{}
	for k := range present {
		result[k] = row[k]
	}
	return result
}

// Experiments

type experimentFields struct {
	Title        *string  `mapstructure:"title"`
	Description  *string  `mapstructure:"description"`
	Dependencies []string `mapstructure:"dependencies"`
	NextAction   *string  `mapstructure:"next_action"`
	Status       *string  `mapstructure:"status"`
	Notes        *string  `mapstructure:"notes"`
}

func (f experimentFields) row() table.Row {
	return table.Row{
		"title":        stringOr(f.Title, ""),
		"description":  stringOr(f.Description, ""),
		"dependencies": stringList(f.Dependencies),
		"next_action":  stringOr(f.NextAction, ""),
		"status":       stringOr(f.Status, "not_started"),
		"notes":        stringOr(f.Notes, ""),
	}
}

var experimentFieldNames = []string{"title", "description", "dependencies", "next_action", "status", "notes"}

var experimentCreate = payloadShape{
	fields:   experimentFieldNames,
	required: []string{"title"},
}

var experimentUpdate = payloadShape{
	fields: experimentFieldNames,
}

// ExperimentPayloads describes the request bodies for experiments.
var ExperimentPayloads = Payloads{
	Create: experimentCreate.describe(),
	Update: experimentUpdate.describe(),
}

// ExperimentCreateRow validates a creation request body and returns
// the row to insert, with defaults for omitted fields.
func ExperimentCreateRow(body map[string]interface{}) (table.Row, error) {
	var f experimentFields
	if _, err := experimentCreate.decode(body, &f); err != nil {
		return nil, err
	}
	return f.row(), nil
}

// ExperimentChanges validates an update request body and returns the
// columns to change.  The result is empty if the body names no
// recognized fields.
func ExperimentChanges(body map[string]interface{}) (table.Row, error) {
	var f experimentFields
	present, err := experimentUpdate.decode(body, &f)
	if err != nil {
		return nil, err
	}
	return pick(f.row(), present), nil
}

// Learning goals

type learningGoalFields struct {
	Title           *string       `mapstructure:"title"`
	TargetHours     *float64      `mapstructure:"target_hours"`
	ProgressPercent *float64      `mapstructure:"progress_percent"`
	Notes           *string       `mapstructure:"notes"`
	Resources       []string      `mapstructure:"resources"`
	WeeklyHours     []WeeklyHours `mapstructure:"weekly_hours"`
}

func (f learningGoalFields) row() table.Row {
	progress := 0.0
	if f.ProgressPercent != nil {
		progress = *f.ProgressPercent
	}
	return table.Row{
		"title":            stringOr(f.Title, ""),
		"target_hours":     nullableFloat(f.TargetHours),
		"progress_percent": progress,
		"notes":            stringOr(f.Notes, ""),
		"resources":        stringList(f.Resources),
		"weekly_hours":     weeklyHoursValue(f.WeeklyHours),
	}
}

var learningGoalCreate = payloadShape{
	fields:   []string{"title", "target_hours", "notes"},
	required: []string{"title"},
	nullable: map[string]bool{"target_hours": true},
}

var learningGoalUpdate = payloadShape{
	fields:   []string{"title", "target_hours", "progress_percent", "notes", "resources", "weekly_hours"},
	nullable: map[string]bool{"target_hours": true},
}

// LearningGoalPayloads describes the request bodies for learning
// goals.
var LearningGoalPayloads = Payloads{
	Create: learningGoalCreate.describe(),
	Update: learningGoalUpdate.describe(),
}

// LearningGoalCreateRow validates a creation request body and returns
// the row to insert.  A new goal always starts with no progress, no
// resources, and no weekly hours.
func LearningGoalCreateRow(body map[string]interface{}) (table.Row, error) {
	var f learningGoalFields
	if _, err := learningGoalCreate.decode(body, &f); err != nil {
		return nil, err
	}
	return f.row(), nil
}

// LearningGoalChanges validates an update request body and returns
// the columns to change.
func LearningGoalChanges(body map[string]interface{}) (table.Row, error) {
	var f learningGoalFields
	present, err := learningGoalUpdate.decode(body, &f)
	if err != nil {
		return nil, err
	}
	return pick(f.row(), present), nil
}

// Service entries

type serviceEntryFields struct {
	Date        *string  `mapstructure:"date"`
	Description *string  `mapstructure:"description"`
	Hours       *float64 `mapstructure:"hours"`
	Reflection  *string  `mapstructure:"reflection"`
}

func (f serviceEntryFields) row() table.Row {
	row := table.Row{
		"date":        stringOr(f.Date, ""),
		"description": stringOr(f.Description, ""),
		"reflection":  stringOr(f.Reflection, ""),
	}
	if f.Hours != nil {
		row["hours"] = *f.Hours
	}
	return row
}

var serviceEntryFieldNames = []string{"date", "description", "hours", "reflection"}

var serviceEntryCreate = payloadShape{
	fields:   serviceEntryFieldNames,
	required: []string{"date", "description", "hours"},
}

var serviceEntryUpdate = payloadShape{
	fields: serviceEntryFieldNames,
}

// ServiceEntryPayloads describes the request bodies for service
// entries.
var ServiceEntryPayloads = Payloads{
	Create: serviceEntryCreate.describe(),
	Update: serviceEntryUpdate.describe(),
}

// ServiceEntryCreateRow validates a creation request body and returns
// the row to insert.
func ServiceEntryCreateRow(body map[string]interface{}) (table.Row, error) {
	var f serviceEntryFields
	if _, err := serviceEntryCreate.decode(body, &f); err != nil {
		return nil, err
	}
	return f.row(), nil
}

// ServiceEntryChanges validates an update request body and returns
// the columns to change.
func ServiceEntryChanges(body map[string]interface{}) (table.Row, error) {
	var f serviceEntryFields
	present, err := serviceEntryUpdate.decode(body, &f)
	if err != nil {
		return nil, err
	}
	return pick(f.row(), present), nil
}
