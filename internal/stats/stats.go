// Package stats computes user activity statistics by scanning stored
// chat records. The scan is a single pass per request; chat volume per
// user is expected to stay small enough that no incremental
// maintenance is needed.
package stats

import (
	"encoding/json"
	"time"

	"github.com/MADANW/MuhsinAI/internal/models"
)

// Aggregate computes a fresh statistics snapshot from a user's full
// chat history. Records whose stored response is not valid JSON are
// skipped and contribute to neither the schedule count nor the
// category totals.
func Aggregate(user *models.User, chats []models.Chat, now time.Time) *models.UserStats {
	snapshot := &models.UserStats{
		TotalChats:    len(chats),
		CategoryUsage: map[string]int{},
	}

	totalEvents := 0
	for _, chat := range chats {
		events, ok := scheduleEvents(chat.Response)
		if !ok {
			continue
		}
		snapshot.TotalSchedules++
		totalEvents += len(events)
		for _, e := range events {
			category := "unknown"
			if ev, ok := e.(map[string]any); ok {
				if c, ok := ev["category"].(string); ok {
					category = c
				}
			}
			snapshot.CategoryUsage[category]++
		}
	}
	// Any record counts as activity, schedule or not.
	for _, chat := range chats {
		if snapshot.LastActivity == nil || chat.CreatedAt.After(*snapshot.LastActivity) {
			created := chat.CreatedAt
			snapshot.LastActivity = &created
		}
	}

	if snapshot.TotalSchedules > 0 {
		snapshot.AverageEventsPerSchedule = float64(totalEvents) / float64(snapshot.TotalSchedules)
	}
	snapshot.MostUsedCategory = MostUsed(snapshot.CategoryUsage)
	snapshot.AccountAgeDays = int(now.Sub(user.CreatedAt).Hours() / 24)

	return snapshot
}

// RecentActivity counts chats created within the last `days` days.
func RecentActivity(chats []models.Chat, days int, now time.Time) int {
	cutoff := now.AddDate(0, 0, -days)
	count := 0
	for _, chat := range chats {
		if chat.CreatedAt.After(cutoff) {
			count++
		}
	}
	return count
}

// MostUsed returns the category with the highest count, breaking ties
// by the lexicographically smallest name so the result is
// deterministic. Empty usage returns "".
func MostUsed(usage map[string]int) string {
	best := ""
	bestCount := 0
	for category, count := range usage {
		if count > bestCount || (count == bestCount && bestCount > 0 && category < best) {
			best = category
			bestCount = count
		}
	}
	return best
}

// scheduleEvents decodes a stored response and extracts the schedule's
// event list when present.
func scheduleEvents(response string) ([]any, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(response), &data); err != nil {
		return nil, false
	}
	sched, ok := data["schedule"].(map[string]any)
	if !ok {
		return nil, false
	}
	events, ok := sched["events"].([]any)
	if !ok {
		return nil, false
	}
	return events, true
}
