package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"taskboard/internal/domain"
	"taskboard/internal/utils"
	"time"

	"github.com/sirupsen/logrus"
)

// NewTask is a validated-on-create task command
type NewTask struct {
	Title    string
	DueDate  *string
	Priority *string
	Category *string
}

// TaskService performs task operations scoped to one authenticated user
type TaskService struct {
	tasks    domain.TaskRepository
	cache    utils.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewTaskService creates a new TaskService; a nil cache disables caching
func NewTaskService(tasks domain.TaskRepository, cache utils.Cache, cacheTTL time.Duration) *TaskService {
	if cache == nil {
		cache = utils.NoopCache{}
	}
	return &TaskService{tasks: tasks, cache: cache, cacheTTL: cacheTTL, now: time.Now}
}

// Cache keys carry the user's cache version; invalidate bumps it so fills that
// raced a write land under a key nobody reads again.
func versionKey(userID string) string { return "tasks:ver:" + userID }
func tasksKey(userID string, ver int64) string {
	return fmt.Sprintf("tasks:user:%s:v%d", userID, ver)
}
func statsKey(userID string, ver int64, day string) string {
	return fmt.Sprintf("taskstats:user:%s:v%d:%s", userID, ver, day)
}

// cacheVersion reads the user's current cache version; ok is false when the cache is unreachable
func (s *TaskService) cacheVersion(ctx context.Context, userID string) (int64, bool) {
	var ver int64
	if _, err := s.cache.Get(ctx, versionKey(userID), &ver); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Task cache version read failed")
		return 0, false
	}
	return ver, true
}

// List returns the user's tasks; unfiltered listings go through the cache
func (s *TaskService) List(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if !filter.IsZero() {
		return s.tasks.ListByOwner(ctx, userID, filter)
	}

	// Read the version before the store so a concurrent write makes this fill unreachable
	ver, ok := s.cacheVersion(ctx, userID)
	if !ok {
		return s.tasks.ListByOwner(ctx, userID, filter)
	}
	key := tasksKey(userID, ver)

	var cached []domain.Task
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		logrus.WithError(err).Warn("Task cache read failed")
	}

	tasks, err := s.tasks.ListByOwner(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, tasks, s.cacheTTL) // Cache for later listings
	return tasks, nil
}

// Get returns one owned task
func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.tasks.GetOwned(ctx, taskID, userID)
}

// Create stores a new incomplete task owned by userID
func (s *TaskService) Create(ctx context.Context, userID string, in NewTask) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrMissingTitle
	}

	task := &domain.Task{Title: title, UserID: userID}
	if due := optional(in.DueDate); due != nil {
		if err := domain.ValidateDate(*due); err != nil {
			return nil, err
		}
		task.DueDate = due
	}
	if p := optional(in.Priority); p != nil {
		if !domain.ValidPriority(*p) {
			return nil, fmt.Errorf("%w: priority must be High, Medium or Low", domain.ErrValidation)
		}
		task.Priority = p
	}
	task.Category = optional(in.Category)

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"task_id": task.ID,
		"type":    "create_task",
	}).Info("Task created")
	return task, nil
}

// Toggle flips the completed flag of an owned task
func (s *TaskService) Toggle(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.tasks.ToggleCompleted(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"task_id":   taskID,
		"completed": task.Completed,
	}).Debug("Task toggled")
	return task, nil
}

// Delete removes an owned task
func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.tasks.DeleteOwned(ctx, taskID, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"task_id": taskID,
		"type":    "delete_task",
	}).Info("Task deleted")
	return nil
}

// DeleteAll removes every task owned by userID and reports how many went
func (s *TaskService) DeleteAll(ctx context.Context, userID string) (int64, error) {
	n, err := s.tasks.DeleteAllOwned(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, userID)

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"deleted": n,
	}).Info("All tasks deleted")
	return n, nil
}

// Stats computes dashboard figures for the user's tasks
func (s *TaskService) Stats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	today := s.now().Format(domain.DateLayout) // Overdue depends on the day, so it is part of the key
	ver, cacheable := s.cacheVersion(ctx, userID)
	key := statsKey(userID, ver, today)
	if cacheable {
		var cached domain.TaskStats
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	tasks, err := s.tasks.ListByOwner(ctx, userID, domain.TaskFilter{})
	if err != nil {
		return nil, err
	}

	stats := &domain.TaskStats{
		Total: int64(len(tasks)),
		ByPriority: map[string]int64{
			domain.PriorityHigh:   0,
			domain.PriorityMedium: 0,
			domain.PriorityLow:    0,
		},
		ByCategory: map[string]int64{},
	}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		} else if t.DueDate != nil && *t.DueDate < today {
			stats.Overdue++ // Date strings compare in calendar order
		}
		if t.Priority != nil {
			stats.ByPriority[*t.Priority]++
		}
		if t.Category != nil {
			stats.ByCategory[*t.Category]++
		}
	}
	stats.Uncompleted = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) * 100 / float64(stats.Total)))
	}

	if cacheable {
		_ = s.cache.Set(ctx, key, stats, s.cacheTTL)
	}
	return stats, nil
}

// invalidate moves the user to a new cache version after a mutation
func (s *TaskService) invalidate(ctx context.Context, userID string) {
	if _, err := s.cache.Incr(ctx, versionKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Warn("Task cache invalidation failed")
	}
}
// optional trims s and maps blank values to nil
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
