package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// Roles carried in externally issued tokens. The portal does not mint tokens
// itself; it only trusts these claims.
const (
	RoleAdmin    = "ADMIN"
	RoleResident = "RESIDENT"
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// GetRoleFromContext retrieves the caller's role claim from the Gin context.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	if v := c.Request.Context().Value(roleKey); v != nil {
		if role, ok := v.(string); ok {
			return role, true
		}
	}
	return "", false
}
