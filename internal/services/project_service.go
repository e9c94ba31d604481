package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

type projectServiceImpl struct {
	logger   zerolog.Logger
	projects storage.ProjectRepository
}

func NewProjectService(
	logger zerolog.Logger,
	projects storage.ProjectRepository,
) ProjectService {
	return &projectServiceImpl{
		logger:   logger,
		projects: projects,
	}
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, params CreateProjectParams) (*models.Project, error) {
	if params.Title == "" {
		return nil, ErrTitleRequired
	}

	now := models.Now()
	project := &models.Project{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      models.ProjectStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.projects.CreateProject(ctx, project)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("failed to insert project")
		return nil, err
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("user_id", project.UserID).
		Msg("created project")
	return project, nil
}

func (s *projectServiceImpl) GetProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	projects, err := s.projects.ListProjectsByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select projects by user id")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(projects)).
		Str("user_id", userID).
		Msg("selected projects by user id")

	return projects, nil
}

func (s *projectServiceImpl) GetProject(ctx context.Context, userID, projectID string) (*models.Project, error) {
	project, err := s.projects.GetProject(ctx, projectID, userID)
	if err != nil {
		return nil, s.notFoundOr(err, userID, projectID, "failed to select project")
	}
	return project, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, params UpdateProjectParams) (*models.Project, error) {
	update := params.Update
	if update.Title != nil && *update.Title == "" {
		return nil, ErrTitleRequired
	}
	if update.Status != nil && !models.ValidProjectStatus(*update.Status) {
		s.logger.Error().
			Str("status", *update.Status).
			Msg("invalid project status")
		return nil, ErrInvalidProjectStatus
	}

	project, err := s.projects.UpdateProject(ctx, params.ID, params.UserID, update, models.Now())
	if err != nil {
		return nil, s.notFoundOr(err, params.UserID, params.ID, "failed to update project")
	}

	s.logger.Info().
		Str("project_id", project.ID).
		Str("user_id", project.UserID).
		Msg("updated project")
	return project, nil
}

func (s *projectServiceImpl) DeleteProject(ctx context.Context, userID, projectID string) error {
	err := s.projects.DeleteProject(ctx, projectID, userID)
	if err != nil {
		return s.notFoundOr(err, userID, projectID, "failed to delete project")
	}

	s.logger.Info().
		Str("project_id", projectID).
		Str("user_id", userID).
		Msg("deleted project")
	return nil
}

func (s *projectServiceImpl) notFoundOr(err error, userID, projectID, msg string) error {
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Error().
			Str("project_id", projectID).
			Str("user_id", userID).
			Msg("project not found")
		return ErrProjectNotFound
	}

	s.logger.Error().
		Err(err).
		Str("project_id", projectID).
		Msg(msg)
	return err
}
