package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/MADANW/MuhsinAI/internal/models"
)

// PreferencesRepository defines the interface for preference rows.
type PreferencesRepository interface {
	CreateDefaults(ctx context.Context, userID int64) (*models.PreferencesRecord, error)
	Get(ctx context.Context, userID int64) (*models.PreferencesRecord, error)
	Update(ctx context.Context, userID int64, update *models.PreferencesUpdate) (*models.PreferencesRecord, error)
}

type preferencesRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(db *sql.DB, log zerolog.Logger) PreferencesRepository {
	return &preferencesRepository{db: db, log: log}
}

// CreateDefaults inserts the default preferences row for a new user.
func (r *preferencesRepository) CreateDefaults(ctx context.Context, userID int64) (*models.PreferencesRecord, error) {
	record := &models.PreferencesRecord{
		UserID:      userID,
		Preferences: models.DefaultPreferences(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := r.write(ctx, `INSERT INTO user_preferences (
			user_id, email_notifications, push_notifications, schedule_reminders, daily_summary, new_features,
			work_hours_start, work_hours_end, break_duration, lunch_duration, prefer_morning_workouts,
			include_travel_time, default_schedule_type, conversation_style, detail_level,
			include_explanations, suggest_optimizations, learning_mode, custom_settings, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, record, true); err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to create default preferences")
		return nil, err
	}
	return record, nil
}

// Get returns the user's preferences row.
func (r *preferencesRepository) Get(ctx context.Context, userID int64) (*models.PreferencesRecord, error) {
	query := `
		SELECT user_id, email_notifications, push_notifications, schedule_reminders, daily_summary, new_features,
			work_hours_start, work_hours_end, break_duration, lunch_duration, prefer_morning_workouts,
			include_travel_time, default_schedule_type, conversation_style, detail_level,
			include_explanations, suggest_optimizations, learning_mode, custom_settings, updated_at
		FROM user_preferences
		WHERE user_id = ?
	`

	record := &models.PreferencesRecord{}
	p := &record.Preferences
	var customSettings string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&record.UserID,
		&p.Notifications.EmailNotifications,
		&p.Notifications.PushNotifications,
		&p.Notifications.ScheduleReminders,
		&p.Notifications.DailySummary,
		&p.Notifications.NewFeatures,
		&p.Schedule.DefaultWorkHoursStart,
		&p.Schedule.DefaultWorkHoursEnd,
		&p.Schedule.DefaultBreakDuration,
		&p.Schedule.DefaultLunchDuration,
		&p.Schedule.PreferMorningWorkouts,
		&p.Schedule.IncludeTravelTime,
		&p.Schedule.DefaultScheduleType,
		&p.AI.ConversationStyle,
		&p.AI.DetailLevel,
		&p.AI.IncludeExplanations,
		&p.AI.SuggestOptimizations,
		&p.AI.LearningMode,
		&customSettings,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		r.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get preferences")
		return nil, err
	}

	p.CustomSettings = map[string]any{}
	if customSettings != "" {
		if err := json.Unmarshal([]byte(customSettings), &p.CustomSettings); err != nil {
			// A corrupt blob should not make preferences unreadable.
			p.CustomSettings = map[string]any{}
		}
	}
	return record, nil
}

// Update applies the non-nil sections of the update and returns the
// stored result.
func (r *preferencesRepository) Update(ctx context.Context, userID int64, update *models.PreferencesUpdate) (*models.PreferencesRecord, error) {
	record, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Notifications != nil {
		record.Preferences.Notifications = *update.Notifications
	}
	if update.Schedule != nil {
		record.Preferences.Schedule = *update.Schedule
	}
	if update.AI != nil {
		record.Preferences.AI = *update.AI
	}
	if update.CustomSettings != nil {
		record.Preferences.CustomSettings = update.CustomSettings
	}
	record.UpdatedAt = time.Now().UTC()

	if err := r.write(ctx, `UPDATE user_preferences SET
			email_notifications = ?, push_notifications = ?, schedule_reminders = ?, daily_summary = ?, new_features = ?,
			work_hours_start = ?, work_hours_end = ?, break_duration = ?, lunch_duration = ?, prefer_morning_workouts = ?,
			include_travel_time = ?, default_schedule_type = ?, conversation_style = ?, detail_level = ?,
			include_explanations = ?, suggest_optimizations = ?, learning_mode = ?, custom_settings = ?, updated_at = ?
		WHERE user_id = ?`, record, false); err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to update preferences")
		return nil, err
	}
	return record, nil
}

// write executes an insert or update with the record's values bound in
// column order.
func (r *preferencesRepository) write(ctx context.Context, query string, record *models.PreferencesRecord, insert bool) error {
	p := record.Preferences
	customSettings, err := json.Marshal(p.CustomSettings)
	if err != nil {
		return err
	}

	args := []any{}
	if insert {
		args = append(args, record.UserID)
	}
	args = append(args,
		p.Notifications.EmailNotifications,
		p.Notifications.PushNotifications,
		p.Notifications.ScheduleReminders,
		p.Notifications.DailySummary,
		p.Notifications.NewFeatures,
		p.Schedule.DefaultWorkHoursStart,
		p.Schedule.DefaultWorkHoursEnd,
		p.Schedule.DefaultBreakDuration,
		p.Schedule.DefaultLunchDuration,
		p.Schedule.PreferMorningWorkouts,
		p.Schedule.IncludeTravelTime,
		p.Schedule.DefaultScheduleType,
		p.AI.ConversationStyle,
		p.AI.DetailLevel,
		p.AI.IncludeExplanations,
		p.AI.SuggestOptimizations,
		p.AI.LearningMode,
		string(customSettings),
		record.UpdatedAt,
	)
	if !insert {
		args = append(args, record.UserID)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
