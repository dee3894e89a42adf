// Package llm wraps the OpenAI chat completions API behind a small
// Completer interface so the chat pipeline can be tested without the
// network.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Message roles used when composing a completion request.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Completion request parameters. Single attempt, no retry or backoff;
// a provider failure propagates to the caller as-is.
const (
	completionTemperature = 0.7
	completionMaxTokens   = 1500
)

// Message is one entry of the conversation sent to the model.
type Message struct {
	Role    string
	Content string
}

// Completer produces a single text completion for an ordered list of
// messages.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Client is the OpenAI-backed Completer.
type Client struct {
	api   openai.Client
	model string
}

// NewClient builds a Client for the given API key and model identifier.
func NewClient(apiKey, model string) *Client {
	return &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

// Model returns the model identifier requests are sent with.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the messages to the chat completions API and returns
// the reply text.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toParams(messages),
		Temperature: openai.Float(completionTemperature),
		MaxTokens:   openai.Int(completionMaxTokens),
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// TestConnection sends a minimal probe request and returns the model's
// reply. Used by the diagnostics endpoint.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("Hello, please respond with just 'OK' to test the connection."),
		},
		MaxTokens: openai.Int(10),
	})
	if err != nil {
		return "", fmt.Errorf("connection test failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("connection test returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func toParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
