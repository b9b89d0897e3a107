package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"taskboard/internal/domain"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository implements domain.TaskRepository on the tasks collection
type TaskRepository struct {
	coll *mongo.Collection
}

// owned matches a single task belonging to userID
func owned(id, userID string) bson.M {
	return bson.M{"_id": id, "user": userID}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	query := bson.M{"user": userID}
	if !filter.IsZero() {
		query["dueDate"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(filter.DuePrefix())}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := []domain.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) GetOwned(ctx context.Context, id, userID string) (*domain.Task, error) {
	var task domain.Task
	if err := r.coll.FindOne(ctx, owned(id, userID)).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// ToggleCompleted negates the flag server-side with an aggregation pipeline update
func (r *TaskRepository) ToggleCompleted(ctx context.Context, id, userID string) (*domain.Task, error) {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "completed", Value: bson.D{{Key: "$not", Value: bson.A{"$completed"}}}}}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task domain.Task
	if err := r.coll.FindOneAndUpdate(ctx, owned(id, userID), update, opts).Decode(&task); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	res, err := r.coll.DeleteOne(ctx, owned(id, userID))
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteAllOwned(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("delete tasks: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TaskRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}
