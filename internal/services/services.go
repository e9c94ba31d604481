package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

var (
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrProjectNotFound      = errors.New("project not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
)

// UserService matches emails case-insensitively. They are stored
// lowercased with surrounding space removed.
type UserService interface {
	// Register stores a user with an argon2id hash of the given password.
	//
	// It returns ErrUserAlreadyExists if the email is taken.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login verifies the password and issues a signed access token
	// whose subject is the user ID.
	//
	// It returns ErrInvalidCredentials both for an unknown email
	// and for a wrong password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// GetProfile returns the user with the given ID or ErrUserNotFound.
	GetProfile(ctx context.Context, userID string) (*models.User, error)

	// ParseAccessToken returns the user ID carried by the token
	// or ErrInvalidToken.
	ParseAccessToken(token string) (string, error)
}

// ProjectService scopes every operation to the acting user. A project
// owned by someone else is reported exactly like a missing one.
type ProjectService interface {
	CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error)
	GetProjects(ctx context.Context, userID string) ([]*models.Project, error)
	GetProject(ctx context.Context, userID, projectID string) (*models.Project, error)
	UpdateProject(ctx context.Context, params UpdateProjectParams) (*models.Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
}

// TaskService operations ignore ActorID unless the service was
// built with ownership scoping enabled.
type TaskService interface {
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)
	GetTasks(ctx context.Context, params GetTasksParams) ([]*models.Task, error)
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID string) error
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	UserID               string
	AccessToken          string
	AccessTokenExpiresAt time.Time
}

type CreateProjectParams struct {
	UserID      string
	Title       string
	Description string
}

type UpdateProjectParams struct {
	ID     string
	UserID string
	Update models.ProjectUpdate
}

type CreateTaskParams struct {
	ActorID     string
	ProjectID   string
	Title       string
	Description string
	DueDate     *time.Time
}

type GetTasksParams struct {
	ActorID   string
	ProjectID string
	// Status is matched exactly. Empty returns every task.
	Status string
}

type UpdateTaskParams struct {
	ActorID string
	ID      string
	Update  models.TaskUpdate
}
