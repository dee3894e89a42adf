package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MADANW/MuhsinAI/internal/models"
	"github.com/MADANW/MuhsinAI/internal/repository"
	"github.com/MADANW/MuhsinAI/internal/stats"
)

// ErrInvalidWorkHours is returned when a schedule preferences update
// carries an unusable work-hours window.
var ErrInvalidWorkHours = errors.New("invalid work hours")

const maxWorkHours = 16 * time.Hour

// UserService covers profile, preferences and statistics operations.
type UserService struct {
	users repository.UserRepository
	prefs repository.PreferencesRepository
	chats repository.ChatRepository
	log   zerolog.Logger
}

// NewUserService creates a user service over the given repositories.
func NewUserService(users repository.UserRepository, prefs repository.PreferencesRepository, chats repository.ChatRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, prefs: prefs, chats: chats, log: log}
}

// GetProfile returns the user's profile.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update *models.ProfileUpdate) (*models.User, error) {
	return s.users.UpdateProfile(ctx, userID, update)
}

// GetPreferences returns the user's preferences, creating the default
// row on first access. Accounts created before preferences existed
// have no row, so absence is not an error.
func (s *UserService) GetPreferences(ctx context.Context, userID int64) (*models.PreferencesRecord, error) {
	record, err := s.prefs.Get(ctx, userID)
	if errors.Is(err, repository.ErrPreferencesNotFound) {
		return s.prefs.CreateDefaults(ctx, userID)
	}
	return record, err
}

// UpdatePreferences validates and applies a partial preferences update.
func (s *UserService) UpdatePreferences(ctx context.Context, userID int64, update *models.PreferencesUpdate) (*models.PreferencesRecord, error) {
	if update.Schedule != nil {
		if err := ValidateWorkHours(update.Schedule.DefaultWorkHoursStart, update.Schedule.DefaultWorkHoursEnd); err != nil {
			return nil, err
		}
	}

	// Make sure the row exists so updates work on first touch too.
	if _, err := s.GetPreferences(ctx, userID); err != nil {
		return nil, err
	}
	return s.prefs.Update(ctx, userID, update)
}

// Stats recomputes the user's statistics snapshot from their full chat
// history.
func (s *UserService) Stats(ctx context.Context, userID int64) (*models.UserStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	chats, err := s.chats.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.Aggregate(user, chats, time.Now().UTC()), nil
}

// Activity summarizes the user's activity over the last `days` days.
func (s *UserService) Activity(ctx context.Context, userID int64, days int) (*models.UserActivity, error) {
	snapshot, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	chats, err := s.chats.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := stats.RecentActivity(chats, days, time.Now().UTC())
	trend := "low"
	switch {
	case recent >= 10:
		trend = "high"
	case recent >= 3:
		trend = "moderate"
	}

	return &models.UserActivity{
		UserID:                 userID,
		RecentChats:            recent,
		RecentSchedules:        snapshot.TotalSchedules,
		PreferredScheduleTimes: map[string]int{},
		CategoryUsage:          snapshot.CategoryUsage,
		ActivityTrend:          trend,
	}, nil
}

// CompleteProfile bundles profile, preferences and stats in one call.
func (s *UserService) CompleteProfile(ctx context.Context, userID int64) (*models.CompleteProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.CompleteProfile{
		Profile:     user,
		Preferences: prefs.Preferences,
		Stats:       snapshot,
	}, nil
}

// DeleteAccount removes the user; preferences and chats cascade.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", userID).Msg("Account deleted")
	return nil
}

// ValidateWorkHours checks that start and end are HH:MM clock times
// forming a window that is positive and at most 16 hours.
func ValidateWorkHours(start, end string) error {
	startTime, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("%w: start time must be HH:MM", ErrInvalidWorkHours)
	}
	endTime, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("%w: end time must be HH:MM", ErrInvalidWorkHours)
	}

	window := endTime.Sub(startTime)
	if window <= 0 {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidWorkHours)
	}
	if window > maxWorkHours {
		return fmt.Errorf("%w: work hours cannot exceed 16 hours", ErrInvalidWorkHours)
	}
	return nil
}
