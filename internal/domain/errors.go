package domain

import "errors"

// Failure kinds surfaced by the services; the API layer maps each one to a status code
var (
	ErrValidation         = errors.New("validation failed")    // Missing or malformed input
	ErrMissingTitle       = errors.New("title required")       // Task created without a title
	ErrWeakPassword       = errors.New("password too short")   // Password below the minimum length
	ErrDuplicateEmail     = errors.New("email already exists") // Email taken by another user
	ErrInvalidCredentials = errors.New("invalid credentials")  // Login failed, reason withheld
	ErrUnauthorized       = errors.New("unauthorized")         // Missing, invalid or expired token
	ErrForbidden          = errors.New("forbidden")            // Authenticated but not allowed
	ErrNotFound           = errors.New("not found")            // Absent or owned by someone else
)
