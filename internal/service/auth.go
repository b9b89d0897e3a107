package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"taskboard/internal/domain"
	"taskboard/internal/utils"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthResult is returned by signup and login
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// ProfileUpdate carries the optional fields of a profile change; nil means untouched
type ProfileUpdate struct {
	Name  *string
	Email *string
	Theme domain.Theme
}

// AuthService handles registration, login, profile changes and token operations
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	dummyHash  []byte // Compared against when the email is unknown
}

// NewAuthService creates a new AuthService
func NewAuthService(users domain.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("taskboard-dummy-password"), bcryptCost)
	return &AuthService{
		users:      users,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Signup registers a user with the default role and theme and logs them in
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: email is malformed", domain.ErrValidation)
	}
	if len(password) < domain.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleUser,
		Theme:    domain.DefaultTheme(),
	}
	// The unique index still catches a concurrent signup with the same email
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := utils.GenerateJWT(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate jwt: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"type":    "signup",
	}).Info("User registered")
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and returns a fresh token.
// Unknown email and wrong password fail the same way and both pay for a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logrus.WithField("user_id", user.ID).Warn("Login failed")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate jwt: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// VerifyToken checks signature and expiry and returns the user id the token names
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims, err := utils.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return claims.UserID, nil
}

// Me returns the stored user for an authenticated id
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies the fields present in upd and returns the stored result
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		user.Name = name
	}

	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if !emailPattern.MatchString(email) {
			return nil, fmt.Errorf("%w: email is malformed", domain.ErrValidation)
		}
		if email != user.Email {
			existing, err := s.users.GetByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return nil, domain.ErrDuplicateEmail
			}
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("check email: %w", err)
			}
			user.Email = email
		}
	}

	if upd.Theme != nil {
		theme, err := user.Theme.Merge(upd.Theme)
		if err != nil {
			return nil, err
		}
		user.Theme = theme
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces the stored hash; existing tokens stay valid
func (s *AuthService) UpdatePassword(ctx context.Context, userID, password string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ErrWeakPassword
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	logrus.WithField("user_id", userID).Info("Password updated")
	return nil
}
