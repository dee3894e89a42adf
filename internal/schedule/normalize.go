package schedule

import (
	"time"

	"github.com/MADANW/MuhsinAI/internal/models"
)

const dateLayout = "2006-01-02"

// Normalize repairs an arbitrary JSON-decoded object into a Schedule.
// It never fails: invalid fields are replaced with defaults and
// malformed events are dropped, so a bad model reply can never fail the
// request. Running Normalize on its own output is a no-op.
func Normalize(raw map[string]any) models.Schedule {
	return NormalizeAt(raw, time.Now())
}

// NormalizeAt is Normalize with an explicit clock, used for the
// date-range and event-date defaults.
func NormalizeAt(raw map[string]any, now time.Time) models.Schedule {
	today := now.Format(dateLayout)

	out := models.Schedule{
		ScheduleType: models.ScheduleTypeCustom,
		DateRange: models.DateRange{
			StartDate: today,
			EndDate:   now.AddDate(0, 0, 1).Format(dateLayout),
		},
		Events:      []models.ScheduleEvent{},
		Suggestions: []string{},
	}

	if st, ok := raw["schedule_type"].(string); ok && models.ValidScheduleTypes[st] {
		out.ScheduleType = st
	}

	if dr, ok := raw["date_range"].(map[string]any); ok {
		start, startOK := dr["start_date"].(string)
		end, endOK := dr["end_date"].(string)
		if startOK && endOK {
			out.DateRange = models.DateRange{StartDate: start, EndDate: end}
		}
	}

	if events, ok := raw["events"].([]any); ok {
		for _, e := range events {
			ev, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if _, ok := ev["title"]; !ok {
				// An event without a title is unusable; drop it.
				continue
			}
			event := models.ScheduleEvent{
				Title:       stringField(ev, "title", "Untitled Event"),
				Description: stringField(ev, "description", ""),
				StartTime:   stringField(ev, "start_time", models.DefaultStartTime),
				EndTime:     stringField(ev, "end_time", models.DefaultEndTime),
				Date:        stringField(ev, "date", today),
				Category:    stringField(ev, "category", models.DefaultCategory),
				Priority:    stringField(ev, "priority", models.DefaultPriority),
			}
			if !models.ValidCategories[event.Category] {
				event.Category = models.DefaultCategory
			}
			if !models.ValidPriorities[event.Priority] {
				event.Priority = models.DefaultPriority
			}
			out.Events = append(out.Events, event)
		}
	}

	if suggestions, ok := raw["suggestions"].([]any); ok {
		for _, s := range suggestions {
			if str, ok := s.(string); ok {
				out.Suggestions = append(out.Suggestions, str)
			}
		}
	}

	return out
}

// stringField coerces a map entry to a string, falling back to def when
// the key is absent or not a string.
func stringField(m map[string]any, key, def string) string {
	v, ok := m[key].(string)
	if !ok || v == "" {
		return def
	}
	return v
}
