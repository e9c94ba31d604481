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

type projectDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	User        bson.RawValue      `bson:"user"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *projectDocument) model() *models.Project {
	return &models.Project{
		ID:          d.ID.Hex(),
		UserID:      refString(d.User),
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func ownedFilter(id, userID string) (bson.D, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "user", Value: refValue(userID)},
	}, nil
}

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	oid := primitive.NewObjectID()
	doc := bson.D{
		{Key: "_id", Value: oid},
		{Key: "user", Value: refValue(project.UserID)},
		{Key: "title", Value: project.Title},
		{Key: "status", Value: project.Status},
		{Key: "createdAt", Value: project.CreatedAt},
		{Key: "updatedAt", Value: project.UpdatedAt},
	}
	if project.Description != "" {
		doc = append(doc, bson.E{Key: "description", Value: project.Description})
	}

	_, err := s.projects.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", translateError(err))
	}

	project.ID = oid.Hex()
	return nil
}

func (s *Store) ListProjectsByUserID(ctx context.Context, userID string) ([]*models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.projects.Find(ctx, bson.D{{Key: "user", Value: refValue(userID)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := make([]*models.Project, 0)
	for cursor.Next(ctx) {
		var doc projectDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode project: %w", err)
		}
		projects = append(projects, doc.model())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over cursor: %w", err)
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	filter, err := ownedFilter(id, userID)
	if err != nil {
		return nil, err
	}

	var doc projectDocument
	err = s.projects.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", translateError(err))
	}
	return doc.model(), nil
}

func (s *Store) UpdateProject(
	ctx context.Context,
	id, userID string,
	update models.ProjectUpdate,
	updatedAt time.Time,
) (*models.Project, error) {
	filter, err := ownedFilter(id, userID)
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

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc projectDocument
	err = s.projects.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", translateError(err))
	}
	return doc.model(), nil
}

func (s *Store) DeleteProject(ctx context.Context, id, userID string) error {
	filter, err := ownedFilter(id, userID)
	if err != nil {
		return err
	}

	res, err := s.projects.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAllProjects(ctx context.Context) (int64, error) {
	return deleteAll(ctx, s.projects)
}
