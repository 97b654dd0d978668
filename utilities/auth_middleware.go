package utilities

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teamfeedback-backend/internal/model"
)

// CoachAuthMiddleware requires a coach access token. When enabled is false
// every request passes through, which is how local and embedded setups run.
func CoachAuthMiddleware(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if claims.Role != model.RoleCoach {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "coach access required"})
			return
		}

		// Store claims in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
