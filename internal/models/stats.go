package models

import "time"

// UserStats is a snapshot of a user's activity, recomputed from chat
// history on every request.
type UserStats struct {
	TotalChats               int            `json:"total_chats"`
	TotalSchedules           int            `json:"total_schedules"`
	AverageEventsPerSchedule float64        `json:"average_events_per_schedule"`
	MostUsedCategory         string         `json:"most_used_category,omitempty"`
	CategoryUsage            map[string]int `json:"category_usage"`
	AccountAgeDays           int            `json:"account_age_days"`
	LastActivity             *time.Time     `json:"last_activity,omitempty"`
}

// UserActivity summarizes a user's recent activity over a window.
type UserActivity struct {
	UserID                 int64          `json:"user_id"`
	RecentChats            int            `json:"recent_chats"`
	RecentSchedules        int            `json:"recent_schedules"`
	PreferredScheduleTimes map[string]int `json:"preferred_schedule_times"`
	CategoryUsage          map[string]int `json:"category_usage"`
	ActivityTrend          string         `json:"activity_trend"`
}

// CompleteProfile combines profile, preferences and stats.
type CompleteProfile struct {
	Profile     *User           `json:"profile"`
	Preferences UserPreferences `json:"preferences"`
	Stats       *UserStats      `json:"stats"`
}
