package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// identityKey is the gin context key holding the verified Identity
const identityKey = "taskboard.identity"

// TokenVerifier resolves a bearer token to the user id it was issued for
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Identity is the authenticated caller; only JWTAuthMiddleware creates one
type Identity struct {
	userID string
}

// UserID returns the verified user id
func (i Identity) UserID() string {
	return i.userID
}

// IdentityFrom returns the identity stored by JWTAuthMiddleware
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.userID != ""
}

// JWTAuthMiddleware validates bearer tokens and stores the caller's Identity
func JWTAuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		userID, err := tokens.VerifyToken(tokenStr)                              // Verify signature and expiry
		if err != nil || userID == "" {
			// If verification fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(identityKey, Identity{userID: userID}) // Store identity in context
		c.Next()                                     // Proceed to the next handler
	}
}
