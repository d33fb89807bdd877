// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"fmt"
	"reflect"
	"time"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// timestampLayouts are the formats a store may use for timestamps
// that arrive as strings, in order of preference.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

var (
	timeType   = reflect.TypeOf(time.Time{})
	stringType = reflect.TypeOf("")
)

// parseTimestamp parses a timestamp in any of timestampLayouts.
// Timestamps without a zone are taken as UTC.
func parseTimestamp(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// rowDecodeHook converts the store's representations of timestamps
// and dates into the types of the entity fields.
func rowDecodeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	switch {
	case to == timeType && from == stringType:
		return parseTimestamp(data.(string))
	case to == stringType && from == timeType:
		return data.(time.Time).Format(DateLayout), nil
	}
	return data, nil
}

// decodeRow decodes a store row or a request body into out, which
// must be a pointer to a struct with mapstructure tags.  No weak
// typing is done: a string will not become a number.
func decodeRow(in map[string]interface{}, out interface{}) error {
	config := mapstructure.DecoderConfig{
		DecodeHook: rowDecodeHook,
		Result:     out,
	}
	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return err
	}
	return decoder.Decode(in)
}

// rowShape describes the columns of one kind of record as the
// normalizers see them.
type rowShape struct {
	// kind names the record for error messages.
	kind string

	// required columns must be present and non-null.
	required []string

	// defaults are substituted for missing or null columns.
	defaults map[string]interface{}
}

// prepare copies row, filling in defaults and checking required
// columns.
func (s rowShape) prepare(row table.Row) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(row)+len(s.defaults))
	for k, v := range row {
		result[k] = v
	}
	for k, v := range s.defaults {
		if result[k] == nil {
			result[k] = v
		}
	}
	for _, k := range s.required {
		if result[k] == nil {
			return nil, fmt.Errorf("%v row is missing %q", s.kind, k)
		}
	}
	return result, nil
}

// normalize fills out from row.
func (s rowShape) normalize(row table.Row, out interface{}) error {
	in, err := s.prepare(row)
	if err != nil {
		return err
	}
	return errors.Wrapf(decodeRow(in, out), "normalize %v row", s.kind)
}

var experimentShape = rowShape{
	kind:     "experiment",
	required: []string{"id", "title", "created_at", "updated_at"},
	defaults: map[string]interface{}{
		"description":  "",
		"dependencies": []interface{}{},
		"next_action":  "",
		"status":       "not_started",
		"notes":        "",
	},
}

var learningGoalShape = rowShape{
	kind:     "learning goal",
	required: []string{"id", "title", "created_at", "updated_at"},
	defaults: map[string]interface{}{
		"progress_percent": 0.0,
		"notes":            "",
		"resources":        []interface{}{},
		"weekly_hours":     []interface{}{},
	},
}

var serviceEntryShape = rowShape{
	kind:     "service entry",
	required: []string{"id", "date", "description", "hours", "created_at", "updated_at"},
	defaults: map[string]interface{}{
		"reflection": "",
	},
}

// NormalizeExperiment converts a store row to an Experiment.
func NormalizeExperiment(row table.Row) (Experiment, error) {
	var result Experiment
	if err := experimentShape.normalize(row, &result); err != nil {
		return Experiment{}, err
	}
	if result.Dependencies == nil {
		result.Dependencies = []string{}
	}
	return result, nil
}

// NormalizeLearningGoal converts a store row to a LearningGoal.
func NormalizeLearningGoal(row table.Row) (LearningGoal, error) {
	var result LearningGoal
	if err := learningGoalShape.normalize(row, &result); err != nil {
		return LearningGoal{}, err
	}
	if result.Resources == nil {
		result.Resources = []string{}
	}
	if result.WeeklyHours == nil {
		result.WeeklyHours = []WeeklyHours{}
	}
	return result, nil
}

// NormalizeServiceEntry converts a store row to a ServiceEntry.
func NormalizeServiceEntry(row table.Row) (ServiceEntry, error) {
	var result ServiceEntry
	if err := serviceEntryShape.normalize(row, &result); err != nil {
		return ServiceEntry{}, err
	}
	if _, err := time.Parse(DateLayout, result.Date); err != nil {
		// Some stores send dates as midnight timestamps
		t, err2 := parseTimestamp(result.Date)
		if err2 != nil {
			return ServiceEntry{}, errors.Wrap(err, "normalize service entry row")
		}
		result.Date = t.Format(DateLayout)
	}
	return result, nil
}
