package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MADANW/MuhsinAI/internal/database"
)

// HealthHandler serves the root info and health endpoints.
type HealthHandler struct {
	appName    string
	appVersion string
	db         *database.Database
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(appName, appVersion string, db *database.Database) *HealthHandler {
	return &HealthHandler{appName: appName, appVersion: appVersion, db: db}
}

// Root returns basic service information.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    h.appName,
		"version": h.appVersion,
		"status":  "running",
	})
}

// Health reports service and database health.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
