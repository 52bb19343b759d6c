package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// userIDKey and roleKey store the authenticated session in the request context.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext returns the session role. Without a verified session it
// returns the empty role, which maps to the restricted profile.
func GetRoleFromContext(c *gin.Context) domain.Role {
	role, _ := c.Request.Context().Value(roleKey).(domain.Role)
	return role
}
