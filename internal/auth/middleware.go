package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the middleware stores the resolved user id.
const ContextUserKey = "user_id"

// Middleware rejects requests without a valid bearer token and puts the
// resolved user id on the gin context.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		userID, err := m.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// UserID reads the id put there by Middleware.
func UserID(c *gin.Context) int64 {
	return c.MustGet(ContextUserKey).(int64)
}
