package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"taskboard/internal/domain"
	"taskboard/internal/utils"
	"time"

	"github.com/sirupsen/logrus"
)

// Page size limits for the admin user listing
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// UserSummary represents the user data returned to admin
type UserSummary struct {
	ID        string    `json:"id"`        // User ID
	Name      string    `json:"name"`      // Display name
	Email     string    `json:"email"`     // Email address
	Role      string    `json:"role"`      // User role
	TaskCount int64     `json:"taskCount"` // Number of tasks owned
	CreatedAt time.Time `json:"createdAt"` // Signup time
}

// UserPage is one page of the admin user listing
type UserPage struct {
	Users      []UserSummary `json:"users"`       // List of users
	Page       int           `json:"page"`        // Current page
	PageSize   int           `json:"page_size"`   // Page size
	Total      int64         `json:"total"`       // Total number of users
	TotalPages int           `json:"total_pages"` // Total pages
	Cached     bool          `json:"cached"`      // Served from cache
}

// AdminService backs the admin-only endpoints and the role management command
type AdminService struct {
	users    domain.UserRepository
	tasks    domain.TaskRepository
	cache    utils.Cache
	cacheTTL time.Duration
}

// NewAdminService creates a new AdminService; a nil cache disables caching
func NewAdminService(users domain.UserRepository, tasks domain.TaskRepository, cache utils.Cache, cacheTTL time.Duration) *AdminService {
	if cache == nil {
		cache = utils.NoopCache{}
	}
	return &AdminService{users: users, tasks: tasks, cache: cache, cacheTTL: cacheTTL}
}

// ListUsers returns a page of users with their task counts.
// Out-of-range page values fall back to the defaults.
func (s *AdminService) ListUsers(ctx context.Context, page, pageSize int) (*UserPage, error) {
	if page < 1 {
		page = 1 // Default page number
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize // Default page size
	}

	// Create a cache key based on pagination parameters
	cacheKey := "admin:users:page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
	var cached UserPage
	if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		cached.Cached = true // Indicate response is from cache
		return &cached, nil
	}

	offset := (page - 1) * pageSize // Calculate offset for pagination
	users, total, err := s.users.List(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, len(users))
	for i, u := range users {
		count, err := s.tasks.CountByOwner(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		summaries[i] = UserSummary{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			TaskCount: count,
			CreatedAt: u.CreatedAt,
		}
	}

	resp := &UserPage{
		Users:      summaries,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (int(total) + pageSize - 1) / pageSize, // Calculate total pages
	}
	_ = s.cache.Set(ctx, cacheKey, resp, s.cacheTTL) // Cache the response for future requests
	return resp, nil
}

// IsAdmin reports whether the stored role of userID is admin
func (s *AdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Role == domain.RoleAdmin, nil
}

// SetRole changes the role of the user registered under email
func (s *AdminService) SetRole(ctx context.Context, email, role string) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: role must be user or admin", domain.ErrValidation)
	}
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    role,
	}).Info("Role changed")
	return user, nil
}
