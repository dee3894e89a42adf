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

// ChatRepository defines the interface for chat record access. Every
// read and delete is scoped to the owning user so records can never
// leak across accounts.
type ChatRepository interface {
	Create(ctx context.Context, userID int64, prompt, response string) (*models.Chat, error)
	GetByID(ctx context.Context, chatID, userID int64) (*models.Chat, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Chat, error)
	ListAllByUser(ctx context.Context, userID int64) ([]models.Chat, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	Delete(ctx context.Context, chatID, userID int64) error
}

type chatRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *sql.DB, log zerolog.Logger) ChatRepository {
	return &chatRepository{db: db, log: log}
}

// Create stores one chat turn. Prompt and response are trimmed.
func (r *chatRepository) Create(ctx context.Context, userID int64, prompt, response string) (*models.Chat, error) {
	chat := &models.Chat{
		UserID:    userID,
		Prompt:    strings.TrimSpace(prompt),
		Response:  strings.TrimSpace(response),
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO chats (user_id, prompt, response, created_at) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, chat.UserID, chat.Prompt, chat.Response, chat.CreatedAt)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to create chat")
		return nil, err
	}

	chat.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// GetByID retrieves a chat owned by the given user. Absence and
// ownership mismatch both return ErrChatNotFound.
func (r *chatRepository) GetByID(ctx context.Context, chatID, userID int64) (*models.Chat, error) {
	query := `
		SELECT id, user_id, prompt, response, created_at
		FROM chats
		WHERE id = ? AND user_id = ?
	`

	var chat models.Chat
	err := r.db.QueryRowContext(ctx, query, chatID, userID).Scan(
		&chat.ID,
		&chat.UserID,
		&chat.Prompt,
		&chat.Response,
		&chat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChatNotFound
		}
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to get chat")
		return nil, err
	}
	return &chat, nil
}

// ListByUser returns a page of the user's chats, newest first.
func (r *chatRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Chat, error) {
	query := `
		SELECT id, user_id, prompt, response, created_at
		FROM chats
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`
	return r.queryChats(ctx, query, userID, limit, offset)
}

// ListAllByUser returns the user's full history, used by the
// statistics scan.
func (r *chatRepository) ListAllByUser(ctx context.Context, userID int64) ([]models.Chat, error) {
	query := `
		SELECT id, user_id, prompt, response, created_at
		FROM chats
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`
	return r.queryChats(ctx, query, userID)
}

// CountByUser counts the user's chats.
func (r *chatRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chats WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to count chats")
		return 0, err
	}
	return count, nil
}

// Delete removes a chat owned by the given user.
func (r *chatRepository) Delete(ctx context.Context, chatID, userID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM chats WHERE id = ? AND user_id = ?`, chatID, userID)
	if err != nil {
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to delete chat")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrChatNotFound
	}
	return nil
}

func (r *chatRepository) queryChats(ctx context.Context, query string, args ...any) ([]models.Chat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list chats")
		return nil, err
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var chat models.Chat
		if err := rows.Scan(&chat.ID, &chat.UserID, &chat.Prompt, &chat.Response, &chat.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return chats, nil
}
