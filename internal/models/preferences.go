package models

import "time"

// NotificationPreferences controls which notifications a user receives.
type NotificationPreferences struct {
	EmailNotifications bool `json:"email_notifications"`
	PushNotifications  bool `json:"push_notifications"`
	ScheduleReminders  bool `json:"schedule_reminders"`
	DailySummary       bool `json:"daily_summary"`
	NewFeatures        bool `json:"new_features"`
}

// SchedulePreferences tunes schedule generation defaults.
type SchedulePreferences struct {
	DefaultWorkHoursStart string `json:"default_work_hours_start"`
	DefaultWorkHoursEnd   string `json:"default_work_hours_end"`
	DefaultBreakDuration  int    `json:"default_break_duration"`
	DefaultLunchDuration  int    `json:"default_lunch_duration"`
	PreferMorningWorkouts bool   `json:"prefer_morning_workouts"`
	IncludeTravelTime     bool   `json:"include_travel_time"`
	DefaultScheduleType   string `json:"default_schedule_type"`
}

// AIPreferences tunes how the assistant converses.
type AIPreferences struct {
	ConversationStyle    string `json:"conversation_style"`
	DetailLevel          string `json:"detail_level"`
	IncludeExplanations  bool   `json:"include_explanations"`
	SuggestOptimizations bool   `json:"suggest_optimizations"`
	LearningMode         bool   `json:"learning_mode"`
}

// UserPreferences groups all preference sections.
type UserPreferences struct {
	Notifications  NotificationPreferences `json:"notifications"`
	Schedule       SchedulePreferences     `json:"schedule"`
	AI             AIPreferences           `json:"ai"`
	CustomSettings map[string]any          `json:"custom_settings"`
}

// PreferencesUpdate applies partial changes; nil sections are left
// untouched.
type PreferencesUpdate struct {
	Notifications  *NotificationPreferences `json:"notifications,omitempty"`
	Schedule       *SchedulePreferences     `json:"schedule,omitempty"`
	AI             *AIPreferences           `json:"ai,omitempty"`
	CustomSettings map[string]any           `json:"custom_settings,omitempty"`
}

// PreferencesRecord is a stored preferences row.
type PreferencesRecord struct {
	UserID      int64           `json:"user_id"`
	Preferences UserPreferences `json:"preferences"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DefaultPreferences returns the preferences assigned to a new account.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Notifications: NotificationPreferences{
			EmailNotifications: true,
			PushNotifications:  true,
			ScheduleReminders:  true,
			DailySummary:       true,
			NewFeatures:        false,
		},
		Schedule: SchedulePreferences{
			DefaultWorkHoursStart: "09:00",
			DefaultWorkHoursEnd:   "17:00",
			DefaultBreakDuration:  15,
			DefaultLunchDuration:  60,
			PreferMorningWorkouts: false,
			IncludeTravelTime:     true,
			DefaultScheduleType:   "daily",
		},
		AI: AIPreferences{
			ConversationStyle:    "friendly",
			DetailLevel:          "detailed",
			IncludeExplanations:  true,
			SuggestOptimizations: true,
			LearningMode:         true,
		},
		CustomSettings: map[string]any{},
	}
}
