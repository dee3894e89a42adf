package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MADANW/MuhsinAI/internal/models"
)

var testNow = time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestNormalizeMissingScheduleType(t *testing.T) {
	got := NormalizeAt(map[string]any{}, testNow)
	assert.Equal(t, models.ScheduleTypeCustom, got.ScheduleType)
}

func TestNormalizePreservesValidScheduleTypes(t *testing.T) {
	for _, st := range []string{"daily", "weekly", "custom"} {
		got := NormalizeAt(map[string]any{"schedule_type": st}, testNow)
		assert.Equal(t, st, got.ScheduleType)
	}
}

func TestNormalizeInvalidScheduleType(t *testing.T) {
	got := NormalizeAt(map[string]any{"schedule_type": "monthly"}, testNow)
	assert.Equal(t, models.ScheduleTypeCustom, got.ScheduleType)
}

func TestNormalizeDateRangeDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"absent", map[string]any{}},
		{"not a map", decode(t, `{"date_range": "next week"}`)},
		{"missing end_date", decode(t, `{"date_range": {"start_date": "2025-03-01"}}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAt(tt.raw, testNow)
			assert.Equal(t, "2025-03-10", got.DateRange.StartDate)
			assert.Equal(t, "2025-03-11", got.DateRange.EndDate)
		})
	}
}

func TestNormalizeKeepsWellFormedDateRange(t *testing.T) {
	raw := decode(t, `{"date_range": {"start_date": "2025-01-06", "end_date": "2025-01-12"}}`)
	got := NormalizeAt(raw, testNow)
	assert.Equal(t, models.DateRange{StartDate: "2025-01-06", EndDate: "2025-01-12"}, got.DateRange)
}

func TestNormalizeDropsEventsWithoutTitle(t *testing.T) {
	raw := decode(t, `{
		"events": [
			{"title": "Standup"},
			{"description": "no title here"},
			"not an object",
			{"title": "Lunch", "category": "personal"}
		]
	}`)
	got := NormalizeAt(raw, testNow)
	require.Len(t, got.Events, 2)
	for _, ev := range got.Events {
		assert.NotEmpty(t, ev.Title)
	}
	assert.Equal(t, "Standup", got.Events[0].Title)
	assert.Equal(t, "Lunch", got.Events[1].Title)
}

func TestNormalizeEventFieldDefaults(t *testing.T) {
	raw := decode(t, `{"schedule_type": "weekly", "events": [{"title": "Standup"}]}`)
	got := NormalizeAt(raw, testNow)

	require.Len(t, got.Events, 1)
	ev := got.Events[0]
	assert.Equal(t, "Standup", ev.Title)
	assert.Equal(t, "", ev.Description)
	assert.Equal(t, "09:00", ev.StartTime)
	assert.Equal(t, "10:00", ev.EndTime)
	assert.Equal(t, "2025-03-10", ev.Date)
	assert.Equal(t, "personal", ev.Category)
	assert.Equal(t, "medium", ev.Priority)
}

func TestNormalizeInvalidEnumValues(t *testing.T) {
	raw := decode(t, `{"events": [{"title": "Gym", "category": "fitness", "priority": "urgent"}]}`)
	got := NormalizeAt(raw, testNow)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "personal", got.Events[0].Category)
	assert.Equal(t, "medium", got.Events[0].Priority)
}

func TestNormalizeEventsNotAList(t *testing.T) {
	raw := decode(t, `{"events": {"title": "Standup"}}`)
	got := NormalizeAt(raw, testNow)
	assert.Empty(t, got.Events)
}

func TestNormalizeSuggestions(t *testing.T) {
	raw := decode(t, `{"suggestions": ["Take breaks", 42, "Hydrate"]}`)
	got := NormalizeAt(raw, testNow)
	assert.Equal(t, []string{"Take breaks", "Hydrate"}, got.Suggestions)

	raw = decode(t, `{"suggestions": "be on time"}`)
	got = NormalizeAt(raw, testNow)
	assert.Empty(t, got.Suggestions)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := decode(t, `{
		"schedule_type": "bogus",
		"date_range": 7,
		"events": [
			{"title": "Standup", "category": "fitness"},
			{"no_title": true}
		],
		"suggestions": ["one", 2]
	}`)
	first := NormalizeAt(raw, testNow)

	asJSON, err := json.Marshal(first)
	require.NoError(t, err)
	second := NormalizeAt(decode(t, string(asJSON)), testNow)

	assert.Equal(t, first, second)
}
