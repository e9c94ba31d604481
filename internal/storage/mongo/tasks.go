package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Project     bson.RawValue      `bson:"project"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	DueDate     *time.Time         `bson:"dueDate,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *taskDocument) model() *models.Task {
	return &models.Task{
		ID:          d.ID.Hex(),
		ProjectID:   refString(d.Project),
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	oid := primitive.NewObjectID()
	doc := bson.D{
		{Key: "_id", Value: oid},
		{Key: "project", Value: refValue(task.ProjectID)},
		{Key: "title", Value: task.Title},
		{Key: "status", Value: task.Status},
		{Key: "createdAt", Value: task.CreatedAt},
		{Key: "updatedAt", Value: task.UpdatedAt},
	}
	if task.Description != "" {
		doc = append(doc, bson.E{Key: "description", Value: task.Description})
	}
	if task.DueDate != nil {
		doc = append(doc, bson.E{Key: "dueDate", Value: *task.DueDate})
	}

	_, err := s.tasks.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", translateError(err))
	}

	task.ID = oid.Hex()
	return nil
}

func (s *Store) ListTasks(ctx context.Context, projectID, status string) ([]*models.Task, error) {
	filter := bson.D{{Key: "project", Value: refValue(projectID)}}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: status})
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.tasks.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]*models.Task, 0)
	for cursor.Next(ctx) {
		var doc taskDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task: %w", err)
		}
		tasks = append(tasks, doc.model())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over cursor: %w", err)
	}
	return tasks, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	err = s.tasks.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", translateError(err))
	}
	return doc.model(), nil
}

func (s *Store) UpdateTask(
	ctx context.Context,
	id string,
	update models.TaskUpdate,
	updatedAt time.Time,
) (*models.Task, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.D{{Key: "updatedAt", Value: updatedAt}}
	if update.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *update.Title})
	}
	if update.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *update.Description})
	}
	if update.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *update.Status})
	}
	if update.DueDate != nil {
		set = append(set, bson.E{Key: "dueDate", Value: *update.DueDate})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err = s.tasks.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", translateError(err))
	}
	return doc.model(), nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.tasks.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAllTasks(ctx context.Context) (int64, error) {
	return deleteAll(ctx, s.tasks)
}
