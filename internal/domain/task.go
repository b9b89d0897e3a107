package domain

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of a task due date
const DateLayout = "2006-01-02"

// MonthLayout selects a calendar month when filtering tasks
const MonthLayout = "2006-01"

// Priority levels a task may carry
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Task Model
type Task struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`                         // Generated UUID
	Title     string    `gorm:"not null" bson:"title" json:"title"`                              // Task title
	Completed bool      `gorm:"not null;default:false" bson:"completed" json:"completed"`        // Completion state
	UserID    string    `gorm:"size:36;not null;index" bson:"user" json:"user"`                  // Owning user, immutable
	DueDate   *string   `gorm:"size:10;index" bson:"dueDate,omitempty" json:"dueDate,omitempty"` // Date only, YYYY-MM-DD
	Priority  *string   `gorm:"size:8" bson:"priority,omitempty" json:"priority,omitempty"`      // High, Medium or Low
	Category  *string   `gorm:"size:64" bson:"category,omitempty" json:"category,omitempty"`     // Free text, e.g. Work
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`                                      // Creation time
}

// TaskFilter narrows a task listing; an empty filter returns every owned task
type TaskFilter struct {
	Date  string // Exact due date, YYYY-MM-DD
	Month string // Due month, YYYY-MM
}

// IsZero reports whether the filter selects everything
func (f TaskFilter) IsZero() bool {
	return f.Date == "" && f.Month == ""
}

// DuePrefix returns the due date prefix the filter matches on
func (f TaskFilter) DuePrefix() string {
	if f.Date != "" {
		return f.Date
	}
	return f.Month
}

// Validate checks the filter values parse as calendar dates
func (f TaskFilter) Validate() error {
	if f.Date != "" && f.Month != "" {
		return fmt.Errorf("%w: date and month are mutually exclusive", ErrValidation)
	}
	if f.Date != "" {
		if err := ValidateDate(f.Date); err != nil {
			return err
		}
	}
	if f.Month != "" {
		if _, err := time.Parse(MonthLayout, f.Month); err != nil {
			return fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
		}
	}
	return nil
}

// ValidateDate checks a due date is a real YYYY-MM-DD calendar date
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: dueDate must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

// ValidPriority reports whether p is one of the known priority levels
func ValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TaskStats summarises a user's task list for the dashboard
type TaskStats struct {
	Total          int64            `json:"total"`
	Completed      int64            `json:"completed"`
	Uncompleted    int64            `json:"uncompleted"`
	CompletionRate int              `json:"completionRate"` // Percent, rounded
	Overdue        int64            `json:"overdue"`
	ByPriority     map[string]int64 `json:"byPriority"`
	ByCategory     map[string]int64 `json:"byCategory"`
}

// TaskRepository defines owner-scoped persistence operations for tasks.
// Every lookup by id also matches the owner so one user can never reach another's task.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	ListByOwner(ctx context.Context, userID string, filter TaskFilter) ([]Task, error)
	GetOwned(ctx context.Context, id, userID string) (*Task, error)
	ToggleCompleted(ctx context.Context, id, userID string) (*Task, error)
	DeleteOwned(ctx context.Context, id, userID string) error
	DeleteAllOwned(ctx context.Context, userID string) (int64, error)
	CountByOwner(ctx context.Context, userID string) (int64, error)
}
