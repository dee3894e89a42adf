package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MADANW/MuhsinAI/internal/auth"
	"github.com/MADANW/MuhsinAI/internal/models"
	"github.com/MADANW/MuhsinAI/internal/repository"
	"github.com/MADANW/MuhsinAI/internal/service"
)

// AuthHandler serves registration, login and token lifecycle endpoints.
type AuthHandler struct {
	users     repository.UserRepository
	prefs     repository.PreferencesRepository
	userSvc   *service.UserService
	jwtSecret string
	jwtExpiry time.Duration
	log       zerolog.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(users repository.UserRepository, prefs repository.PreferencesRepository, userSvc *service.UserService, jwtSecret string, jwtExpiry time.Duration, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		prefs:     prefs,
		userSvc:   userSvc,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		log:       log,
	}
}

// Register creates an account, its default preferences, and issues a
// token so the client is signed in immediately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create account"})
		return
	}

	user := &models.User{Email: req.Email, HashedPassword: hashed}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create account"})
		return
	}

	// Preferences are best-effort here; GetPreferences creates them
	// lazily if this fails.
	if _, err := h.prefs.CreateDefaults(c.Request.Context(), user.ID); err != nil {
		h.log.Warn().Err(err).Int64("user_id", user.ID).Msg("Failed to create default preferences")
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue token"})
		return
	}

	h.log.Info().Int64("user_id", user.ID).Msg("Account registered")
	c.JSON(http.StatusCreated, models.AuthResponse{
		User:    user,
		Token:   token,
		Message: "Account created successfully",
	})
}

// Login verifies credentials and issues a token. Wrong email and wrong
// password produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.VerifyPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}

	token, err := h.issueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		User:    user,
		Token:   token,
		Message: "Login successful",
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// Refresh issues a fresh token for the authenticated account.
func (h *AuthHandler) Refresh(c *gin.Context) {
	user := currentUser(c)
	token, err := h.issueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{
		User:    user,
		Token:   token,
		Message: "Token refreshed",
	})
}

// Logout acknowledges the sign-out. Tokens are stateless, so the
// client discards its copy; nothing is revoked server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully. Please discard your access token.",
	})
}

// DeleteAccount removes the authenticated account and all its data.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user := currentUser(c)
	if err := h.userSvc.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account deleted successfully",
	})
}

func (h *AuthHandler) issueToken(userID int64) (models.Token, error) {
	signed, err := auth.GenerateToken(userID, h.jwtSecret, h.jwtExpiry)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("Failed to sign token")
		return models.Token{}, err
	}
	return models.Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(h.jwtExpiry.Seconds()),
	}, nil
}
