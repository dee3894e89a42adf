package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MADANW/MuhsinAI/internal/llm"
	"github.com/MADANW/MuhsinAI/internal/models"
	"github.com/MADANW/MuhsinAI/internal/schedule"
)

// systemPrompt sets the assistant persona and the JSON contract for
// schedule replies. The model is asked for this exact shape, but the
// normalizer repairs whatever actually comes back.
const systemPrompt = `You are MuhsinAI, an intelligent scheduling assistant. Your role is to help users plan their time effectively.

When a user asks for a schedule, respond with valid JSON in exactly this format:
{
  "message": "A brief, friendly message about the schedule you created",
  "schedule_type": "daily" or "weekly" or "custom",
  "date_range": {
    "start_date": "YYYY-MM-DD",
    "end_date": "YYYY-MM-DD"
  },
  "events": [
    {
      "title": "Event name",
      "description": "Brief description",
      "start_time": "HH:MM",
      "end_time": "HH:MM",
      "date": "YYYY-MM-DD",
      "category": "work" or "personal" or "health" or "education" or "social",
      "priority": "high" or "medium" or "low"
    }
  ],
  "suggestions": ["Optional tips for the user"]
}

For non-scheduling questions, respond conversationally in plain text. Be concise, warm, and practical.`

// schedulingHint is appended to prompts classified as scheduling
// requests to push the model toward the structured format.
const schedulingHint = "\n\n[Note: This appears to be a scheduling request. Please provide a structured schedule response.]"

// ChatService orchestrates one chat turn: classify the prompt, call the
// model once, and repair a schedule reply into a usable result.
type ChatService struct {
	completer llm.Completer
	model     string
	log       zerolog.Logger
}

// NewChatService creates a chat service backed by the given completer.
func NewChatService(completer llm.Completer, model string, log zerolog.Logger) *ChatService {
	return &ChatService{completer: completer, model: model, log: log}
}

// Chat runs one turn for the given prompt. A provider failure is
// returned as-is; a malformed schedule reply is never an error — it
// degrades to a plain-text result.
func (s *ChatService) Chat(ctx context.Context, prompt string, userContext map[string]any) (*models.ChatResult, error) {
	isScheduling := schedule.IsSchedulingRequest(prompt)

	system := systemPrompt
	if len(userContext) > 0 {
		if contextJSON, err := json.Marshal(userContext); err == nil {
			system += fmt.Sprintf("\n\nUser context: %s", contextJSON)
		}
	}

	userPrompt := prompt
	if isScheduling {
		userPrompt += schedulingHint
	}

	reply, err := s.completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: userPrompt},
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Model completion failed")
		return nil, err
	}

	result := &models.ChatResult{
		Success:        true,
		Message:        reply,
		ConversationID: uuid.NewString(),
		ModelUsed:      s.model,
		Timestamp:      time.Now().UTC(),
	}

	if isScheduling && strings.HasPrefix(strings.TrimSpace(reply), "{") {
		s.attachSchedule(result, reply)
	}
	return result, nil
}

// attachSchedule tries to decode the reply as a schedule payload. A
// reply that fails to decode, or decodes to something that isn't a
// schedule, leaves the plain-text result untouched.
func (s *ChatService) attachSchedule(result *models.ChatResult, reply string) {
	var data map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &data); err != nil {
		s.log.Warn().Err(err).Msg("Schedule-looking reply was not valid JSON")
		return
	}

	_, hasType := data["schedule_type"]
	_, hasEvents := data["events"]
	if !hasType || !hasEvents {
		return
	}

	normalized := schedule.Normalize(data)
	result.Schedule = &normalized
	if message, ok := data["message"].(string); ok && message != "" {
		result.Message = message
	} else {
		result.Message = "I've created a schedule for you!"
	}
}
