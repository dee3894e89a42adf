package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MADANW/MuhsinAI/internal/llm"
	"github.com/MADANW/MuhsinAI/internal/models"
)

// fakeCompleter returns a canned reply and records what it was sent.
type fakeCompleter struct {
	reply    string
	err      error
	messages []llm.Message
}

func (f *fakeCompleter) Complete(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(completer llm.Completer) *ChatService {
	return NewChatService(completer, "gpt-3.5-turbo", zerolog.Nop())
}

func TestChatPlainText(t *testing.T) {
	fake := &fakeCompleter{reply: "Good morning! How can I help?"}
	svc := newTestService(fake)

	result, err := svc.Chat(context.Background(), "hello there", nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Good morning! How can I help?", result.Message)
	assert.Nil(t, result.Schedule)
	assert.NotEmpty(t, result.ConversationID)
	assert.Equal(t, "gpt-3.5-turbo", result.ModelUsed)

	// Non-scheduling prompts go through unmodified.
	require.Len(t, fake.messages, 2)
	assert.Equal(t, llm.RoleUser, fake.messages[1].Role)
	assert.Equal(t, "hello there", fake.messages[1].Content)
}

func TestChatSchedulingPromptGetsHint(t *testing.T) {
	fake := &fakeCompleter{reply: "Sure, here is a plan."}
	svc := newTestService(fake)

	_, err := svc.Chat(context.Background(), "plan my schedule for tomorrow", nil)
	require.NoError(t, err)

	require.Len(t, fake.messages, 2)
	assert.Contains(t, fake.messages[1].Content, "structured schedule response")
}

func TestChatUserContextInSystemMessage(t *testing.T) {
	fake := &fakeCompleter{reply: "ok"}
	svc := newTestService(fake)

	_, err := svc.Chat(context.Background(), "hello", map[string]any{"user_email": "alice@example.com"})
	require.NoError(t, err)

	require.Len(t, fake.messages, 2)
	assert.Equal(t, llm.RoleSystem, fake.messages[0].Role)
	assert.Contains(t, fake.messages[0].Content, "alice@example.com")
}

func TestChatTransportError(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("connection refused")}
	svc := newTestService(fake)

	result, err := svc.Chat(context.Background(), "plan my day", nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestChatScheduleReply(t *testing.T) {
	fake := &fakeCompleter{reply: `{
		"message": "Here's your morning plan!",
		"schedule_type": "daily",
		"date_range": {"start_date": "2025-03-10", "end_date": "2025-03-10"},
		"events": [{"title": "Standup"}],
		"suggestions": ["Leave a buffer before lunch"]
	}`}
	svc := newTestService(fake)

	result, err := svc.Chat(context.Background(), "plan my morning for today", nil)
	require.NoError(t, err)

	assert.Equal(t, "Here's your morning plan!", result.Message)
	require.NotNil(t, result.Schedule)
	assert.Equal(t, models.ScheduleTypeDaily, result.Schedule.ScheduleType)
	require.Len(t, result.Schedule.Events, 1)

	// Missing event fields are repaired with defaults.
	event := result.Schedule.Events[0]
	assert.Equal(t, "Standup", event.Title)
	assert.Equal(t, models.DefaultStartTime, event.StartTime)
	assert.Equal(t, models.DefaultEndTime, event.EndTime)
	assert.Equal(t, models.DefaultCategory, event.Category)
	assert.Equal(t, models.DefaultPriority, event.Priority)
}

func TestChatScheduleReplyWithoutMessage(t *testing.T) {
	fake := &fakeCompleter{reply: `{"schedule_type": "daily", "events": []}`}
	svc := newTestService(fake)

	result, err := svc.Chat(context.Background(), "plan my day", nil)
	require.NoError(t, err)

	require.NotNil(t, result.Schedule)
	assert.Equal(t, "I've created a schedule for you!", result.Message)
}

func TestChatInvalidJSONFallsBackToText(t *testing.T) {
	fake := &fakeCompleter{reply: `{"schedule_type": "daily", "events": [`}
	svc := newTestService(fake)

	result, err := svc.Chat(context.Background(), "plan my day", nil)
	require.NoError(t, err)

	assert.Nil(t, result.Schedule)
	assert.Equal(t, `{"schedule_type": "daily", "events": [`, result.Message)
}

func TestChatJSONWithoutScheduleKeysStaysText(t *testing.T) {
	fake := &fakeCompleter{reply: `{"answer": "42"}`}
	svc := newTestService(fake)

	result, err := svc.Chat(context.Background(), "plan my day", nil)
	require.NoError(t, err)

	assert.Nil(t, result.Schedule)
	assert.Equal(t, `{"answer": "42"}`, result.Message)
}

func TestChatJSONReplyToNonSchedulingPromptStaysText(t *testing.T) {
	fake := &fakeCompleter{reply: `{"schedule_type": "daily", "events": []}`}
	svc := newTestService(fake)

	result, err := svc.Chat(context.Background(), "what is the capital of France?", nil)
	require.NoError(t, err)

	// Only prompts classified as scheduling are parsed for schedules.
	assert.Nil(t, result.Schedule)
}
