package api

import (
	"net/http"                   // HTTP status codes
	"taskboard/internal/domain"  // Importing domain models
	"taskboard/internal/service" // Auth service

	"github.com/gin-gonic/gin" // Gin web framework
)

// SignupRequest is the body of POST /api/auth/signup
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// UpdateProfileRequest carries optional profile fields; absent fields stay untouched
type UpdateProfileRequest struct {
	Name  *string           `json:"name"`  // New display name
	Email *string           `json:"email"` // New email
	Theme map[string]string `json:"theme"` // Theme variables to change
}

// UpdatePasswordRequest is the body of PUT /api/auth/update-password
type UpdatePasswordRequest struct {
	Password string `json:"password"` // New password, length checked by the service
}

// SignupHandler registers a user and returns a token with the public user
func SignupHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		res, err := auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res) // Return token and user
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c) // If binding fails, return bad request
			return
		}
		res, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // Same answer for unknown email and wrong password
			return
		}
		c.JSON(http.StatusOK, res) // Return token and user
	}
}

// MeHandler returns the authenticated user
func MeHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		user, err := auth.Me(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// UpdateProfileHandler applies a partial profile update
func UpdateProfileHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		upd := service.ProfileUpdate{Name: req.Name, Email: req.Email}
		if req.Theme != nil {
			upd.Theme = domain.Theme(req.Theme)
		}
		user, err := auth.UpdateProfile(c.Request.Context(), userID, upd)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user}) // Return the updated user
	}
}

// UpdatePasswordHandler replaces the caller's password
func UpdatePasswordHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req UpdatePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		if err := auth.UpdatePassword(c.Request.Context(), userID, req.Password); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
