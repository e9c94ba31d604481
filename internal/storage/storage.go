// Package storage defines the persistence contract shared by the
// mongo, postgres and memory backends.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	// CreateUser assigns user.ID. It returns ErrDuplicate
	// if the email is already taken.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteAllUsers(ctx context.Context) (int64, error)
}

// ProjectRepository lookups that take a userID only match
// projects owned by that user and return ErrNotFound otherwise.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	ListProjectsByUserID(ctx context.Context, userID string) ([]*models.Project, error)
	GetProject(ctx context.Context, id, userID string) (*models.Project, error)
	UpdateProject(ctx context.Context, id, userID string, update models.ProjectUpdate, updatedAt time.Time) (*models.Project, error)
	DeleteProject(ctx context.Context, id, userID string) error
	DeleteAllProjects(ctx context.Context) (int64, error)
}

type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	// ListTasks returns the tasks of a project in creation order.
	// An empty status matches every status.
	ListTasks(ctx context.Context, projectID, status string) ([]*models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, update models.TaskUpdate, updatedAt time.Time) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteAllTasks(ctx context.Context) (int64, error)
}

type Store interface {
	UserRepository
	ProjectRepository
	TaskRepository
}
