package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MADANW/MuhsinAI/internal/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func chatWith(response string, createdAt time.Time) models.Chat {
	return models.Chat{UserID: 1, Prompt: "p", Response: response, CreatedAt: createdAt}
}

func scheduleResponse(categories ...string) string {
	events := ""
	for i, c := range categories {
		if i > 0 {
			events += ","
		}
		events += `{"title":"e","category":"` + c + `"}`
	}
	return `{"success":true,"message":"ok","schedule":{"schedule_type":"daily","events":[` + events + `]}}`
}

func TestAggregateEmptyHistory(t *testing.T) {
	user := &models.User{ID: 1, CreatedAt: now.AddDate(0, 0, -30)}

	got := Aggregate(user, nil, now)

	assert.Equal(t, 0, got.TotalChats)
	assert.Equal(t, 0, got.TotalSchedules)
	assert.Equal(t, 0.0, got.AverageEventsPerSchedule)
	assert.Empty(t, got.MostUsedCategory)
	assert.Nil(t, got.LastActivity)
	assert.Equal(t, 30, got.AccountAgeDays)
}

func TestAggregateCountsAndAverages(t *testing.T) {
	user := &models.User{ID: 1, CreatedAt: now.AddDate(0, 0, -10)}
	chats := []models.Chat{
		chatWith(scheduleResponse("work", "work"), now.Add(-3*time.Hour)),
		chatWith(scheduleResponse("personal"), now.Add(-2*time.Hour)),
		chatWith(`{"success":true,"message":"just chatting"}`, now.Add(-1*time.Hour)),
	}

	got := Aggregate(user, chats, now)

	assert.Equal(t, 3, got.TotalChats)
	assert.Equal(t, 2, got.TotalSchedules)
	assert.Equal(t, 1.5, got.AverageEventsPerSchedule)
	assert.Equal(t, map[string]int{"work": 2, "personal": 1}, got.CategoryUsage)
	assert.Equal(t, "work", got.MostUsedCategory)
	require.NotNil(t, got.LastActivity)
	assert.Equal(t, now.Add(-1*time.Hour), *got.LastActivity)
}

func TestAggregateSkipsUndecodableRecords(t *testing.T) {
	user := &models.User{ID: 1, CreatedAt: now.AddDate(0, 0, -1)}
	chats := []models.Chat{
		chatWith("not json at all", now.Add(-2*time.Hour)),
		chatWith(scheduleResponse("health"), now.Add(-1*time.Hour)),
	}

	got := Aggregate(user, chats, now)

	assert.Equal(t, 2, got.TotalChats)
	assert.Equal(t, 1, got.TotalSchedules)
	assert.Equal(t, map[string]int{"health": 1}, got.CategoryUsage)
}

func TestAggregateMissingCategoryCountsAsUnknown(t *testing.T) {
	user := &models.User{ID: 1, CreatedAt: now}
	chats := []models.Chat{
		chatWith(`{"schedule":{"events":[{"title":"e"}]}}`, now),
	}

	got := Aggregate(user, chats, now)

	assert.Equal(t, map[string]int{"unknown": 1}, got.CategoryUsage)
}

func TestMostUsedTieBreaksLexicographically(t *testing.T) {
	assert.Equal(t, "personal", MostUsed(map[string]int{"work": 2, "personal": 2}))
	assert.Equal(t, "work", MostUsed(map[string]int{"work": 3, "personal": 2}))
	assert.Equal(t, "", MostUsed(map[string]int{}))
}

func TestRecentActivity(t *testing.T) {
	chats := []models.Chat{
		chatWith("{}", now.AddDate(0, 0, -1)),
		chatWith("{}", now.AddDate(0, 0, -5)),
		chatWith("{}", now.AddDate(0, 0, -20)),
	}

	assert.Equal(t, 2, RecentActivity(chats, 7, now))
	assert.Equal(t, 3, RecentActivity(chats, 30, now))
	assert.Equal(t, 0, RecentActivity(nil, 7, now))
}
