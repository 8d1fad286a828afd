package middleware

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gr3edydevel0per/N-Layer-API/internal/auth"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/repository"
)

// Context keys set by the authentication strategies
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUser      = "user"
)

// AuthMiddleware guards routes with one of two strategies: stateless access
// token verification, or an API token digest scan against persisted users.
type AuthMiddleware struct {
	codec    *auth.TokenCodec
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(codec *auth.TokenCodec, userRepo repository.UserRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		codec:    codec,
		userRepo: userRepo,
		logger:   logger,
	}
}

// RequireAccessToken verifies the bearer access token and sets the decoded
// principal in the context. The claims are trusted as-is without reloading
// the user row; a user removed after issuance stays authenticated until the
// token expires.
func (m *AuthMiddleware) RequireAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			m.logger.Warn("⚠️ [Middleware] Missing or malformed Authorization header")
			abortUnauthorized(c, "Access token required")
			return
		}

		claims, err := m.codec.VerifyAccessToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				m.logger.Warn("⚠️ [Middleware] Expired access token")
				abortUnauthorized(c, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken):
				m.logger.Warn("⚠️ [Middleware] Invalid access token")
				abortUnauthorized(c, "Invalid token")
			default:
				m.logger.Error("❌ [Middleware] Token verification failure", "error", err)
				abortInternal(c)
			}
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		m.logger.Debug("✅ [Middleware] Access token validated", "user_id", claims.UserID)

		c.Next()
	}
}

// RequireApiToken resolves the bearer token against the stored API token
// digests and sets the full user record in the context. The scan is linear
// over all token holders; acceptable while that set stays small.
func (m *AuthMiddleware) RequireApiToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			m.logger.Warn("⚠️ [Middleware] Missing or malformed Authorization header")
			abortUnauthorized(c, "API token required")
			return
		}

		users, err := m.userRepo.FindAllWithApiToken()
		if err != nil {
			m.logger.Error("❌ [Middleware] Failed to load API token holders", "error", err)
			abortInternal(c)
			return
		}

		digest := []byte(auth.HashAPIToken(tokenString))
		for i := range users {
			user := &users[i]
			if user.ApiToken == nil {
				continue
			}
			if subtle.ConstantTimeCompare(digest, []byte(*user.ApiToken)) == 1 {
				c.Set(ContextUser, user)
				c.Set(ContextUserID, user.ID)
				m.logger.Debug("✅ [Middleware] API token validated", "user_id", user.ID)
				c.Next()
				return
			}
		}

		m.logger.Warn("⚠️ [Middleware] API token matched no user")
		abortUnauthorized(c, "Invalid token")
	}
}

// extractBearerToken pulls the token out of an "Authorization: Bearer X"
// header. Returns false for a missing or malformed header.
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

func abortInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}
