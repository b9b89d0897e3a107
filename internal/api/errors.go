package api

import (
	"errors"                        // Error inspection
	"net/http"                      // HTTP status codes
	"taskboard/internal/domain"     // Failure kinds
	"taskboard/internal/middleware" // Identity lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a service failure to an HTTP status and a client-safe message
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingTitle):
		return http.StatusBadRequest, "Title required"
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, "Password must be at least 6 characters"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "Email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

// respondError writes the mapped status; internal detail only reaches the log
func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err) // Attach for the request logger
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Unhandled service error")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// badRequest rejects a body or query that does not bind
func badRequest(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
}

// currentUserID returns the verified caller, answering 401 when absent
func currentUserID(c *gin.Context) (string, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return id.UserID(), true
}
