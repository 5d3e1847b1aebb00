package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobhunt/internal/services"
	"go.uber.org/zap"
)

type userIDKeyType struct{}

var userIDKey userIDKeyType

const ginUserIDKey = "auth.user_id"

// ScopeChecker reports whether the token subject still exists. A subject that
// is gone is services.ErrInvalidScope; any other error is a lookup failure.
type ScopeChecker interface {
	Exists(ctx context.Context, userID uint) error
}

// UserIDFromContext returns the authenticated user id stored by Middleware.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok
}

// UserID returns the authenticated user id of a gin request.
func UserID(c *gin.Context) (uint, bool) {
	if v, ok := c.Get(ginUserIDKey); ok {
		id, ok := v.(uint)
		return id, ok
	}
	return UserIDFromContext(c.Request.Context())
}

func newContext(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Middleware requires a valid bearer token for an existing user.
func (m *TokenManager) Middleware(users ScopeChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			unauthorized(c, "No token provided")
			return
		}

		userID, err := m.Parse(strings.TrimSpace(token))
		if err != nil {
			zap.S().Named("auth").Debugw("rejected token", "error", err)
			unauthorized(c, "Could not validate credentials")
			return
		}
		if err := users.Exists(c.Request.Context(), userID); err != nil {
			if !errors.Is(err, services.ErrInvalidScope) {
				zap.S().Named("auth").Errorw("user lookup failed", "user_id", userID, "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			zap.S().Named("auth").Warnw("token for unknown user", "user_id", userID, "error", err)
			unauthorized(c, "Could not validate credentials")
			return
		}

		c.Set(ginUserIDKey, userID)
		c.Request = c.Request.WithContext(newContext(c.Request.Context(), userID))
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
