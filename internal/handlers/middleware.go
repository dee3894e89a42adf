package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MADANW/MuhsinAI/internal/auth"
	"github.com/MADANW/MuhsinAI/internal/models"
	"github.com/MADANW/MuhsinAI/internal/ratelimit"
	"github.com/MADANW/MuhsinAI/internal/repository"
)

// Context keys set by AuthMiddleware.
const (
	contextUserKey   = "current_user"
	contextUserIDKey = "current_user_id"
)

// AuthMiddleware validates the Bearer token and loads the account into
// the request context. Any failure produces the same 401 so callers
// learn nothing about which step failed.
func AuthMiddleware(users repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			unauthorized(c)
			return
		}

		userID, err := auth.VerifyToken(token, jwtSecret)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextUserIDKey, user.ID)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"detail": "Could not validate credentials",
	})
}

// currentUser returns the account loaded by AuthMiddleware.
func currentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(contextUserKey).(*models.User)
	return user
}

// RateLimitMiddleware enforces the named scope's budget per client
// address.
func RateLimitMiddleware(limiter *ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := limiter.Allow(c.Request.Context(), scope, clientAddress(c))
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail":      "Rate limit exceeded. Please try again later.",
				"remaining":   remaining,
				"retry_after": "60 seconds",
			})
			return
		}
		c.Next()
	}
}

// clientAddress identifies the caller, honoring proxy headers when
// present.
func clientAddress(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		// First hop is the original client.
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return c.ClientIP()
}

// CORSMiddleware allows the configured browser origins.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origins[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client", clientAddress(c)).
			Msg("Request handled")
	}
}
