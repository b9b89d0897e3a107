package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"taskboard/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskRepository implements domain.TaskRepository using GORM.
// Every statement filters on both id and user_id.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a GORM-backed TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !filter.IsZero() {
		query = query.Where("due_date LIKE ?", filter.DuePrefix()+"%") // Filter by due date or month
	}
	tasks := []domain.Task{}
	if err := query.Order("created_at asc").Order("id asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) GetOwned(ctx context.Context, id, userID string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query task: %w", err)
	}
	return &task, nil
}

// ToggleCompleted flips the completed flag in the database and returns the updated row
func (r *TaskRepository) ToggleCompleted(ctx context.Context, id, userID string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Task{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("completed", gorm.Expr("NOT completed"))
		if res.Error != nil {
			return res.Error // Return error to rollback
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteAllOwned(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Task{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *TaskRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}
