package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MADANW/MuhsinAI/internal/models"
	"github.com/MADANW/MuhsinAI/internal/repository"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Chatter runs one orchestrated chat turn.
type Chatter interface {
	Chat(ctx context.Context, prompt string, userContext map[string]any) (*models.ChatResult, error)
}

// ConnectionTester probes the model provider for the diagnostics
// endpoint.
type ConnectionTester interface {
	TestConnection(ctx context.Context) (string, error)
	Model() string
}

// ChatHandler serves the chat endpoint and chat history.
type ChatHandler struct {
	chatSvc Chatter
	tester  ConnectionTester
	chats   repository.ChatRepository
	log     zerolog.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(chatSvc Chatter, tester ConnectionTester, chats repository.ChatRepository, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, tester: tester, chats: chats, log: log}
}

// Create runs one chat turn and persists it. The turn happens in two
// phases: nothing is stored when the model call fails, and a storage
// failure after a successful model call is reported as an error even
// though the model reply was produced.
func (h *ChatHandler) Create(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user := currentUser(c)
	userContext := map[string]any{
		"user_id":    user.ID,
		"user_email": user.Email,
	}
	for k, v := range req.UserContext {
		userContext[k] = v
	}

	result, err := h.chatSvc.Chat(c.Request.Context(), req.Prompt, userContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to get response from AI service"})
		return
	}

	stored, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save chat"})
		return
	}
	if _, err := h.chats.Create(c.Request.Context(), user.ID, req.Prompt, string(stored)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save chat"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// History returns a page of the user's chat history, newest first.
func (h *ChatHandler) History(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(c, "per_page", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	user := currentUser(c)
	ctx := c.Request.Context()

	total, err := h.chats.CountByUser(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load chat history"})
		return
	}

	chats, err := h.chats.ListByUser(ctx, user.ID, perPage, (page-1)*perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load chat history"})
		return
	}

	items := make([]models.ChatHistoryItem, 0, len(chats))
	for _, chat := range chats {
		response := json.RawMessage(chat.Response)
		if !json.Valid(response) {
			// Old or corrupt rows are surfaced as a JSON string rather
			// than dropped.
			response, _ = json.Marshal(chat.Response)
		}
		items = append(items, models.ChatHistoryItem{
			ID:        chat.ID,
			Prompt:    chat.Prompt,
			Response:  response,
			CreatedAt: chat.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, models.ChatHistoryResponse{
		Success:    true,
		Message:    "Chat history retrieved successfully",
		Chats:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	})
}

// Delete removes one of the user's chats.
func (h *ChatHandler) Delete(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid chat id"})
		return
	}

	user := currentUser(c)
	if err := h.chats.Delete(c.Request.Context(), chatID, user.ID); err != nil {
		if errors.Is(err, repository.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Chat deleted successfully",
	})
}

// TestOpenAI probes the model provider and reports the result.
func (h *ChatHandler) TestOpenAI(c *gin.Context) {
	reply, err := h.tester.TestConnection(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Model connection test failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"detail":  "AI service connection failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "AI service connection successful",
		"model":    h.tester.Model(),
		"response": reply,
	})
}

func queryInt(c *gin.Context, key string, def int) int {
	val, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return val
}
