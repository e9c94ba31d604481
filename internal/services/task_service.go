package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

type taskServiceImpl struct {
	logger   zerolog.Logger
	tasks    storage.TaskRepository
	projects storage.ProjectRepository
	scoped   bool
}

// NewTaskService builds a TaskService. With scoped set, every operation
// requires the task's project to be owned by the acting user.
func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskRepository,
	projects storage.ProjectRepository,
	scoped bool,
) TaskService {
	return &taskServiceImpl{
		logger:   logger,
		tasks:    tasks,
		projects: projects,
		scoped:   scoped,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if params.Title == "" {
		return nil, ErrTitleRequired
	}

	err := s.checkProjectOwner(ctx, params.ActorID, params.ProjectID, ErrProjectNotFound)
	if err != nil {
		return nil, err
	}

	now := models.Now()
	task := &models.Task{
		ProjectID:   params.ProjectID,
		Title:       params.Title,
		Description: params.Description,
		Status:      models.TaskStatusTodo,
		DueDate:     timestampPtr(params.DueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tasks.CreateTask(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", params.ProjectID).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("project_id", task.ProjectID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasks(ctx context.Context, params GetTasksParams) ([]*models.Task, error) {
	err := s.checkProjectOwner(ctx, params.ActorID, params.ProjectID, ErrProjectNotFound)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListTasks(ctx, params.ProjectID, params.Status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", params.ProjectID).
			Msg("failed to select tasks by project id")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("project_id", params.ProjectID).
		Str("status", params.Status).
		Msg("selected tasks by project id")

	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	update := params.Update
	if update.Title != nil && *update.Title == "" {
		return nil, ErrTitleRequired
	}
	if update.Status != nil && !models.ValidTaskStatus(*update.Status) {
		s.logger.Error().
			Str("status", *update.Status).
			Msg("invalid task status")
		return nil, ErrInvalidTaskStatus
	}

	update.DueDate = timestampPtr(update.DueDate)

	err := s.checkTaskOwner(ctx, params.ActorID, params.ID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.UpdateTask(ctx, params.ID, update, models.Now())
	if err != nil {
		return nil, s.notFoundOr(err, params.ID, "failed to update task")
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, actorID, taskID string) error {
	err := s.checkTaskOwner(ctx, actorID, taskID)
	if err != nil {
		return err
	}

	err = s.tasks.DeleteTask(ctx, taskID)
	if err != nil {
		return s.notFoundOr(err, taskID, "failed to delete task")
	}

	s.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) checkTaskOwner(ctx context.Context, actorID, taskID string) error {
	if !s.scoped {
		return nil
	}

	task, err := s.tasks.GetTask(ctx, taskID)
	if err != nil {
		return s.notFoundOr(err, taskID, "failed to select task")
	}
	return s.checkProjectOwner(ctx, actorID, task.ProjectID, ErrTaskNotFound)
}

// checkProjectOwner returns notFound unless the project exists and
// belongs to actorID. It is a no-op when scoping is disabled.
func (s *taskServiceImpl) checkProjectOwner(ctx context.Context, actorID, projectID string, notFound error) error {
	if !s.scoped {
		return nil
	}

	_, err := s.projects.GetProject(ctx, projectID, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Str("project_id", projectID).
				Str("user_id", actorID).
				Msg("project not owned by caller")
			return notFound
		}

		s.logger.Error().
			Err(err).
			Str("project_id", projectID).
			Msg("failed to select project")
		return err
	}
	return nil
}

func (s *taskServiceImpl) notFoundOr(err error, taskID, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Error().
			Str("task_id", taskID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Error().
		Err(err).
		Str("task_id", taskID).
		Msg(msg)
	return err
}

func timestampPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	ts := models.Timestamp(*t)
	return &ts
}
