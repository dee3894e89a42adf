package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MADANW/MuhsinAI/internal/models"
	"github.com/MADANW/MuhsinAI/internal/repository"
	"github.com/MADANW/MuhsinAI/internal/service"
)

// UserHandler serves profile, preferences and statistics endpoints.
type UserHandler struct {
	userSvc *service.UserService
	log     zerolog.Logger
}

// NewUserHandler creates a user handler.
func NewUserHandler(userSvc *service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{userSvc: userSvc, log: log}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// UpdateProfile applies a partial profile update.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user := currentUser(c)
	updated, err := h.userSvc.UpdateProfile(c.Request.Context(), user.ID, &update)
	if err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetPreferences returns the user's preferences, creating defaults on
// first access.
func (h *UserHandler) GetPreferences(c *gin.Context) {
	user := currentUser(c)
	record, err := h.userSvc.GetPreferences(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load preferences"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdatePreferences applies a partial preferences update.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var update models.PreferencesUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user := currentUser(c)
	record, err := h.userSvc.UpdatePreferences(c.Request.Context(), user.ID, &update)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWorkHours) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update preferences"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetStats returns the user's statistics snapshot.
func (h *UserHandler) GetStats(c *gin.Context) {
	user := currentUser(c)
	snapshot, err := h.userSvc.Stats(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to compute statistics"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GetActivity summarizes recent activity over an adjustable window,
// default 7 days, capped at a year.
func (h *UserHandler) GetActivity(c *gin.Context) {
	days := queryInt(c, "days", 7)
	if days < 1 || days > 365 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "days must be between 1 and 365"})
		return
	}

	user := currentUser(c)
	activity, err := h.userSvc.Activity(c.Request.Context(), user.ID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to compute activity"})
		return
	}
	c.JSON(http.StatusOK, activity)
}

// GetCompleteProfile returns profile, preferences and stats in one
// payload.
func (h *UserHandler) GetCompleteProfile(c *gin.Context) {
	user := currentUser(c)
	complete, err := h.userSvc.CompleteProfile(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, complete)
}
