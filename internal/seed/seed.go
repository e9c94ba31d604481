// Package seed resets the store to a small demo data set.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

const (
	DefaultName     = "Test User"
	DefaultEmail    = "test@example.com"
	DefaultPassword = "Test@123"
)

type Options struct {
	Name     string
	Email    string
	Password string
}

type Result struct {
	User     *models.User
	Projects []*models.Project
	Tasks    []*models.Task
}

type Seeder struct {
	logger zerolog.Logger
	store  storage.Store
	users  services.UserService
}

func New(logger zerolog.Logger, store storage.Store, users services.UserService) *Seeder {
	return &Seeder{
		logger: logger,
		store:  store,
		users:  users,
	}
}

// Run deletes every task, project and user, then inserts one user with two
// projects of three tasks each. The steps are not atomic: a failure leaves
// whatever was written before it.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Email == "" {
		opts.Email = DefaultEmail
	}
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}

	err := s.clear(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Register(ctx, services.RegisterParams{
		Name:     opts.Name,
		Email:    opts.Email,
		Password: opts.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.Info().
		Str("email", user.Email).
		Msg("user created")

	result := &Result{User: user}
	now := models.Now()

	for _, p := range []struct{ title, description string }{
		{"Project Alpha", "First test project"},
		{"Project Beta", "Second test project"},
	} {
		project := &models.Project{
			UserID:      user.ID,
			Title:       p.title,
			Description: p.description,
			Status:      models.ProjectStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = s.store.CreateProject(ctx, project)
		if err != nil {
			return nil, fmt.Errorf("failed to create project %q: %w", p.title, err)
		}
		result.Projects = append(result.Projects, project)
	}
	s.logger.Info().
		Int("count", len(result.Projects)).
		Msg("projects created")

	for _, project := range result.Projects {
		for i, status := range []string{
			models.TaskStatusTodo,
			models.TaskStatusInProgress,
			models.TaskStatusDone,
		} {
			due := now
			task := &models.Task{
				ProjectID:   project.ID,
				Title:       fmt.Sprintf("Task %d", i+1),
				Description: fmt.Sprintf("%s task for %s", ordinals[i], project.Title),
				Status:      status,
				DueDate:     &due,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			err = s.store.CreateTask(ctx, task)
			if err != nil {
				return nil, fmt.Errorf("failed to create task for %q: %w", project.Title, err)
			}
			result.Tasks = append(result.Tasks, task)
		}
	}
	s.logger.Info().
		Int("count", len(result.Tasks)).
		Msg("tasks created")

	return result, nil
}

var ordinals = [...]string{"First", "Second", "Third"}

func (s *Seeder) clear(ctx context.Context) error {
	tasks, err := s.store.DeleteAllTasks(ctx)
	if err != nil {
		return err
	}
	projects, err := s.store.DeleteAllProjects(ctx)
	if err != nil {
		return err
	}
	users, err := s.store.DeleteAllUsers(ctx)
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("tasks", tasks).
		Int64("projects", projects).
		Int64("users", users).
		Msg("old data cleared")
	return nil
}
