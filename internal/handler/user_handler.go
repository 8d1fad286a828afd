package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gr3edydevel0per/N-Layer-API/internal/database/repository"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/service"
	"github.com/gr3edydevel0per/N-Layer-API/internal/middleware"
)

// UserHandler handles HTTP requests for registration, login and API tokens
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// Request DTOs
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid registration request", "error", err)
		respondValidationError(c, err)
		return
	}

	user, err := h.service.Register(req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("⚠️ [Handler] Invalid login request", "error", err)
		respondValidationError(c, err)
		return
	}

	user, token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
		"accessToken": token.Token,
		"expiresIn":   int64(token.ExpiresIn.Seconds()),
	})
}

// GenerateToken handles POST /api/users/generate-token. Requires access
// token auth; the plaintext API token is returned exactly once.
func (h *UserHandler) GenerateToken(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		h.logger.Error("❌ [Handler] User ID not found in context")
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	apiToken, err := h.service.GenerateApiToken(userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"apiToken": apiToken})
}

// GetProfile handles GET /api/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		h.logger.Error("❌ [Handler] User ID not found in context")
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.service.FetchUser(userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"lastLogin": user.LastLogin,
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *UserHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, "User already exists with this email")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrTokenAlreadyIssued):
		respondError(c, http.StatusConflict, "An API token has already been generated for this user")
	case errors.Is(err, repository.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
