package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MADANW/MuhsinAI/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, update *models.ProfileUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, log zerolog.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

const userColumns = `id, email, hashed_password, first_name, last_name, display_name, bio, timezone, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.FirstName,
		&user.LastName,
		&user.DisplayName,
		&user.Bio,
		&user.Timezone,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		user.UpdatedAt = &updatedAt.Time
	}
	return &user, nil
}

// Create inserts a new user. Email is stored lowercased; a duplicate
// email returns ErrEmailAlreadyExists.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}

	exists, err := r.emailExists(ctx, r.db, user.Email)
	if err != nil {
		r.log.Error().Err(err).Str("email", user.Email).Msg("Failed to check email existence")
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}

	user.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (email, hashed_password, first_name, last_name, display_name, bio, timezone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Email,
		user.HashedPassword,
		user.FirstName,
		user.LastName,
		user.DisplayName,
		user.Bio,
		user.Timezone,
		user.CreatedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("email", user.Email).Msg("Failed to create user")
		return err
	}

	user.ID, err = result.LastInsertId()
	if err != nil {
		return err
	}
	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		r.log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user by ID")
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by their email, case-insensitively
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		r.log.Error().Err(err).Str("email", email).Msg("Failed to get user by email")
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of the update to a user.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, update *models.ProfileUpdate) (*models.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", id).Msg("Failed to begin transaction")
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		r.log.Error().Err(err).Int64("user_id", id).Msg("Failed to get user by ID")
		return nil, err
	}

	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if email != user.Email {
			exists, err := r.emailExists(ctx, tx, email)
			if err != nil {
				r.log.Error().Err(err).Str("email", email).Msg("Failed to check email existence")
				return nil, err
			}
			if exists {
				return nil, ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*update.DisplayName)
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.Timezone != nil {
		user.Timezone = *update.Timezone
	}

	now := time.Now().UTC()
	user.UpdatedAt = &now

	updateQuery := `
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, display_name = ?, bio = ?, timezone = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(
		ctx,
		updateQuery,
		user.Email,
		user.FirstName,
		user.LastName,
		user.DisplayName,
		user.Bio,
		user.Timezone,
		user.UpdatedAt,
		id,
	)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", id).Msg("Failed to update user")
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		r.log.Error().Err(err).Int64("user_id", id).Msg("Failed to commit transaction")
		return nil, err
	}
	return user, nil
}

// Delete removes a user; chats and preferences cascade.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// emailExists checks if a user with the given email already exists
func (r *userRepository) emailExists(ctx context.Context, q queryer, email string) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
