package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MADANW/MuhsinAI/internal/database"
	"github.com/MADANW/MuhsinAI/internal/models"
	"github.com/MADANW/MuhsinAI/internal/repository"
)

func setupUserService(t *testing.T) (*UserService, repository.ChatRepository, *models.User) {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := repository.NewUserRepository(db.DB(), zerolog.Nop())
	prefs := repository.NewPreferencesRepository(db.DB(), zerolog.Nop())
	chats := repository.NewChatRepository(db.DB(), zerolog.Nop())

	user := &models.User{Email: "alice@example.com", HashedPassword: "x"}
	require.NoError(t, users.Create(context.Background(), user))

	return NewUserService(users, prefs, chats, zerolog.Nop()), chats, user
}

func TestGetPreferencesCreatesDefaultsLazily(t *testing.T) {
	svc, _, user := setupUserService(t)
	ctx := context.Background()

	record, err := svc.GetPreferences(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), record.Preferences)

	// Second read hits the stored row.
	again, err := svc.GetPreferences(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Preferences, again.Preferences)
}

func TestUpdatePreferencesOnFirstTouch(t *testing.T) {
	svc, _, user := setupUserService(t)

	style := models.DefaultPreferences().AI
	style.ConversationStyle = "professional"
	record, err := svc.UpdatePreferences(context.Background(), user.ID, &models.PreferencesUpdate{AI: &style})
	require.NoError(t, err)
	assert.Equal(t, "professional", record.Preferences.AI.ConversationStyle)
	// Untouched sections got the defaults from the lazily created row.
	assert.Equal(t, "09:00", record.Preferences.Schedule.DefaultWorkHoursStart)
}

func TestUpdatePreferencesRejectsBadWorkHours(t *testing.T) {
	svc, _, user := setupUserService(t)
	ctx := context.Background()

	cases := []struct {
		name       string
		start, end string
	}{
		{"not a clock time", "nine", "17:00"},
		{"end before start", "17:00", "09:00"},
		{"equal", "09:00", "09:00"},
		{"longer than 16 hours", "05:00", "23:30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sched := models.DefaultPreferences().Schedule
			sched.DefaultWorkHoursStart = tc.start
			sched.DefaultWorkHoursEnd = tc.end
			_, err := svc.UpdatePreferences(ctx, user.ID, &models.PreferencesUpdate{Schedule: &sched})
			assert.ErrorIs(t, err, ErrInvalidWorkHours)
		})
	}
}

func TestValidateWorkHoursAcceptsFullDay(t *testing.T) {
	assert.NoError(t, ValidateWorkHours("06:00", "22:00"))
	assert.NoError(t, ValidateWorkHours("09:00", "17:00"))
}

func TestStatsFromChatHistory(t *testing.T) {
	svc, chats, user := setupUserService(t)
	ctx := context.Background()

	scheduleResponse, err := json.Marshal(map[string]any{
		"success": true,
		"schedule": map[string]any{
			"events": []any{
				map[string]any{"title": "Standup", "category": "work"},
				map[string]any{"title": "Gym", "category": "health"},
			},
		},
	})
	require.NoError(t, err)

	_, err = chats.Create(ctx, user.ID, "plan my day", string(scheduleResponse))
	require.NoError(t, err)
	_, err = chats.Create(ctx, user.ID, "hello", `{"success":true,"message":"hi"}`)
	require.NoError(t, err)

	snapshot, err := svc.Stats(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.TotalChats)
	assert.Equal(t, 1, snapshot.TotalSchedules)
	assert.Equal(t, 2.0, snapshot.AverageEventsPerSchedule)
	assert.Equal(t, map[string]int{"work": 1, "health": 1}, snapshot.CategoryUsage)
	require.NotNil(t, snapshot.LastActivity)
}

func TestActivityTrend(t *testing.T) {
	svc, chats, user := setupUserService(t)
	ctx := context.Background()

	activity, err := svc.Activity(ctx, user.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "low", activity.ActivityTrend)
	assert.Zero(t, activity.RecentChats)

	for i := 0; i < 3; i++ {
		_, err := chats.Create(ctx, user.ID, "hello", "{}")
		require.NoError(t, err)
	}
	activity, err = svc.Activity(ctx, user.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, activity.RecentChats)
	assert.Equal(t, "moderate", activity.ActivityTrend)
}

func TestCompleteProfile(t *testing.T) {
	svc, _, user := setupUserService(t)

	complete, err := svc.CompleteProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, complete.Profile.ID)
	assert.Equal(t, models.DefaultPreferences(), complete.Preferences)
	require.NotNil(t, complete.Stats)
	assert.Zero(t, complete.Stats.TotalChats)
}

func TestDeleteAccount(t *testing.T) {
	svc, _, user := setupUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))
	_, err := svc.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
