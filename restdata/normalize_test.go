// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"testing"
	"time"

	"github.com/diffeo/nebibs-backend/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testID = "0b6e8f5c-4bd7-4a53-9a4e-2f3fb1d6e8a1"

var testTime = time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)

func TestNormalizeExperimentDefaults(t *testing.T) {
	exp, err := NormalizeExperiment(table.Row{
		"id":          testID,
		"title":       "Try it",
		"description": nil,
		"created_at":  testTime,
		"updated_at":  testTime,
	})
	require.NoError(t, err)
	assert.Equal(t, Experiment{
		ID:           testID,
		Title:        "Try it",
		Description:  "",
		Dependencies: []string{},
		NextAction:   "",
		Status:       "not_started",
		Notes:        "",
		CreatedAt:    testTime,
		UpdatedAt:    testTime,
	}, exp)
}

func TestNormalizeExperimentWire(t *testing.T) {
	exp, err := NormalizeExperiment(table.Row{
		"id":           testID,
		"title":        "Try it",
		"dependencies": []interface{}{"a", "b"},
		"status":       "running",
		"created_at":   "2025-01-15T10:30:00+00:00",
		"updated_at":   "2025-01-15T10:30:00.123456",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, exp.Dependencies)
	assert.Equal(t, "running", exp.Status)
	assert.True(t, testTime.Equal(exp.CreatedAt))
	assert.Equal(t, testTime.Add(123456*time.Microsecond), exp.UpdatedAt)
}

func TestNormalizeExperimentMissingRequired(t *testing.T) {
	base := table.Row{
		"id":         testID,
		"title":      "Try it",
		"created_at": testTime,
		"updated_at": testTime,
	}
	for _, k := range []string{"id", "title", "created_at", "updated_at"} {
		row := base.Copy()
		delete(row, k)
		_, err := NormalizeExperiment(row)
		assert.Error(t, err, k)
	}
}

func TestNormalizeExperimentBadTypes(t *testing.T) {
	_, err := NormalizeExperiment(table.Row{
		"id":         testID,
		"title":      17,
		"created_at": testTime,
		"updated_at": testTime,
	})
	assert.Error(t, err)

	_, err = NormalizeExperiment(table.Row{
		"id":         testID,
		"title":      "x",
		"created_at": "yesterday",
		"updated_at": testTime,
	})
	assert.Error(t, err)
}

func TestNormalizeLearningGoal(t *testing.T) {
	goal, err := NormalizeLearningGoal(table.Row{
		"id":           testID,
		"title":        "Go",
		"target_hours": int64(40),
		"weekly_hours": []interface{}{
			map[string]interface{}{"week_key": "2025-W03", "hours": 2.5},
		},
		"created_at": testTime,
		"updated_at": testTime,
	})
	require.NoError(t, err)
	if assert.NotNil(t, goal.TargetHours) {
		assert.Equal(t, 40.0, *goal.TargetHours)
	}
	assert.Equal(t, 0.0, goal.ProgressPercent)
	assert.Equal(t, "", goal.Notes)
	assert.Equal(t, []string{}, goal.Resources)
	assert.Equal(t, []WeeklyHours{{WeekKey: "2025-W03", Hours: 2.5}}, goal.WeeklyHours)
}

func TestNormalizeLearningGoalNullTarget(t *testing.T) {
	goal, err := NormalizeLearningGoal(table.Row{
		"id":               testID,
		"title":            "Go",
		"target_hours":     nil,
		"progress_percent": 150.0,
		"resources":        nil,
		"weekly_hours":     nil,
		"created_at":       testTime,
		"updated_at":       testTime,
	})
	require.NoError(t, err)
	assert.Nil(t, goal.TargetHours)
	assert.Equal(t, 150.0, goal.ProgressPercent)
	assert.Equal(t, []string{}, goal.Resources)
	assert.Equal(t, []WeeklyHours{}, goal.WeeklyHours)
}

func TestNormalizeServiceEntry(t *testing.T) {
	entry, err := NormalizeServiceEntry(table.Row{
		"id":          testID,
		"date":        "2025-01-15",
		"description": "Food bank",
		"hours":       int64(3),
		"created_at":  testTime,
		"updated_at":  testTime,
	})
	require.NoError(t, err)
	assert.Equal(t, ServiceEntry{
		ID:          testID,
		Date:        "2025-01-15",
		Description: "Food bank",
		Hours:       3,
		Reflection:  "",
		CreatedAt:   testTime,
		UpdatedAt:   testTime,
	}, entry)
}

func TestNormalizeServiceEntryDateForms(t *testing.T) {
	row := table.Row{
		"id":          testID,
		"description": "Food bank",
		"hours":       1.5,
		"created_at":  testTime,
		"updated_at":  testTime,
	}

	row["date"] = testTime
	entry, err := NormalizeServiceEntry(row)
	if assert.NoError(t, err) {
		assert.Equal(t, "2025-01-15", entry.Date)
	}

	row["date"] = "2025-01-15T00:00:00Z"
	entry, err = NormalizeServiceEntry(row)
	if assert.NoError(t, err) {
		assert.Equal(t, "2025-01-15", entry.Date)
	}

	row["date"] = "the ides of march"
	_, err = NormalizeServiceEntry(row)
	assert.Error(t, err)

	delete(row, "date")
	_, err = NormalizeServiceEntry(row)
	assert.Error(t, err)
}
