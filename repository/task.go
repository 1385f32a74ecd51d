package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/K9173A/todoapp/models"
	"github.com/K9173A/todoapp/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection tasks are stored in.
const CollectionName = "task"

const defaultTimeout = 5 * time.Second

// TaskRepository is the set of task operations the handlers depend on.
type TaskRepository interface {
	List(ctx context.Context, filter Filter, sort pagination.Sort, offset, limit int) ([]models.Task, error)
	Get(ctx context.Context, id string) (models.Task, error)
	Create(ctx context.Context, fields models.TaskFields) (string, error)
	Replace(ctx context.Context, id string, fields models.TaskFields) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter Filter) (int, error)
}

// Filter narrows List and Count. The zero value matches every task.
type Filter struct {
	Status models.Status
}

func (f Filter) document() bson.M {
	doc := bson.M{}
	if f.Status != 0 {
		doc["status"] = f.Status
	}
	return doc
}

// TaskStore implements TaskRepository on a mongo collection.
type TaskStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithTimeout bounds every store operation.
func WithTimeout(d time.Duration) Option {
	return func(s *TaskStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock replaces the clock used to stamp new tasks.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// NewTaskStore wraps coll.
func NewTaskStore(coll *mongo.Collection, opts ...Option) *TaskStore {
	s := &TaskStore{
		coll:    coll,
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndexes creates the indexes backing the sort orders.
func (s *TaskStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date_added", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
	})
	if err != nil {
		return &models.StoreError{Op: "create indexes", Err: err}
	}
	return nil
}

// List returns at most limit tasks matching filter, ordered by sort, after
// skipping offset of them. Ties are ordered by id in the same direction.
func (s *TaskStore) List(ctx context.Context, filter Filter, sort pagination.Sort, offset, limit int) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: sort.Field, Value: sort.Direction}, {Key: "_id", Value: sort.Direction}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, filter.document(), opts)
	if err != nil {
		return nil, &models.StoreError{Op: "find tasks", Err: err}
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, &models.StoreError{Op: "decode tasks", Err: err}
	}

	return tasks, nil
}

// Get returns the task with the given hex id.
func (s *TaskStore) Get(ctx context.Context, id string) (models.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Task{}, fmt.Errorf("task %q: %w", id, models.ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var task models.Task
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Task{}, fmt.Errorf("task %q: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Task{}, &models.StoreError{Op: "find task", Err: err}
	}

	return task, nil
}

// Create inserts a new task and returns its id.
func (s *TaskStore) Create(ctx context.Context, fields models.TaskFields) (string, error) {
	if err := fields.Validate(); err != nil {
		return "", err
	}

	task := models.Task{
		ID:          primitive.NewObjectID(),
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		Priority:    fields.Priority,
		DateAdded:   s.now().Unix(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, task); err != nil {
		return "", &models.StoreError{Op: "insert task", Err: err}
	}

	return task.ID.Hex(), nil
}

// Replace overwrites the editable fields of the task with the given id. The
// creation date is kept.
func (s *TaskStore) Replace(ctx context.Context, id string, fields models.TaskFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("task %q: %w", id, models.ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       fields.Title,
		"description": fields.Description,
		"status":      fields.Status,
		"priority":    fields.Priority,
	}}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return &models.StoreError{Op: "update task", Err: err}
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task %q: %w", id, models.ErrNotFound)
	}

	return nil
}

// Delete removes exactly the task with the given id.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("task %q: %w", id, models.ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &models.StoreError{Op: "delete task", Err: err}
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("task %q: %w", id, models.ErrNotFound)
	}

	return nil
}

// Count returns the number of tasks matching filter.
func (s *TaskStore) Count(ctx context.Context, filter Filter) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, filter.document())
	if err != nil {
		return 0, &models.StoreError{Op: "count tasks", Err: err}
	}

	return int(n), nil
}
