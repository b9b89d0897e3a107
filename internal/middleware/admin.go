package middleware

import (
	"context"  // Context for the role lookup
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RoleChecker looks up whether a user currently holds the admin role
type RoleChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AdminOnlyMiddleware checks the user's role from the store on each request
func AdminOnlyMiddleware(roles RoleChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, exists := IdentityFrom(c) // Get identity from context
		// Check if identity exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		isAdmin, err := roles.IsAdmin(c.Request.Context(), id.UserID())
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": id.UserID(),
				"error":   err.Error(),
			}).Warn("Admin role lookup failed")
		}
		// Check if user role is admin
		if err != nil || !isAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
