package models

import (
	"encoding/json"
	"time"
)

// Chat is one stored turn of prompt plus serialized model result,
// owned by exactly one user.
type Chat struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Prompt    string    `json:"prompt" db:"prompt"`
	Response  string    `json:"response" db:"response"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChatRequest is the payload for the chat endpoint.
type ChatRequest struct {
	Prompt      string         `json:"prompt" binding:"required,min=1,max=1000"`
	UserContext map[string]any `json:"user_context,omitempty"`
}

// ChatResult is the outcome of one orchestrated chat turn. Schedule is
// set only when the model produced a parseable schedule reply.
type ChatResult struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	Schedule       *Schedule `json:"schedule,omitempty"`
	ConversationID string    `json:"conversation_id"`
	ModelUsed      string    `json:"model_used"`
	Timestamp      time.Time `json:"timestamp"`
}

// ChatHistoryItem is one history entry with the stored result decoded
// back into JSON for the client.
type ChatHistoryItem struct {
	ID        int64           `json:"id"`
	Prompt    string          `json:"prompt"`
	Response  json.RawMessage `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}

// ChatHistoryResponse is the paginated history payload.
type ChatHistoryResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Chats      []ChatHistoryItem `json:"chats"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
}
