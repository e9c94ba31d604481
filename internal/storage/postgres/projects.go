package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	id, err := newID()
	if err != nil {
		return err
	}

	const insertProjectQuery = `
INSERT INTO projects (id,
                      user_id,
                      title,
                      description,
                      status,
                      created_at,
                      updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertProjectQuery,
		id,
		project.UserID,
		project.Title,
		project.Description,
		project.Status,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", translateError(err))
	}

	project.ID = id
	return nil
}

func (s *Store) ListProjectsByUserID(ctx context.Context, userID string) ([]*models.Project, error) {
	const selectProjectsByUserIDQuery = `
SELECT id,
       user_id,
       title,
       description,
       status,
       created_at,
       updated_at
FROM projects
WHERE user_id = $1
ORDER BY created_at, id
`
	rows, err := s.pgPool.Query(ctx, selectProjectsByUserIDQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	const selectProjectQuery = `
SELECT id,
       user_id,
       title,
       description,
       status,
       created_at,
       updated_at
FROM projects
WHERE id = $1 AND user_id = $2
`
	project, err := scanProject(s.pgPool.QueryRow(ctx, selectProjectQuery, id, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to select project: %w", translateError(err))
	}
	return project, nil
}

func (s *Store) UpdateProject(
	ctx context.Context,
	id, userID string,
	update models.ProjectUpdate,
	updatedAt time.Time,
) (*models.Project, error) {
	const updateProjectQuery = `
UPDATE projects
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    status = COALESCE($3, status),
    updated_at = $4
WHERE id = $5 AND user_id = $6
RETURNING id, user_id, title, description, status, created_at, updated_at
`
	project, err := scanProject(s.pgPool.QueryRow(
		ctx,
		updateProjectQuery,
		update.Title,
		update.Description,
		update.Status,
		updatedAt,
		id,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", translateError(err))
	}
	return project, nil
}

func (s *Store) DeleteProject(ctx context.Context, id, userID string) error {
	const deleteProjectQuery = `
DELETE FROM projects
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(ctx, deleteProjectQuery, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAllProjects(ctx context.Context) (int64, error) {
	tag, err := s.pgPool.Exec(ctx, `DELETE FROM projects`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete projects: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	project := new(models.Project)
	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&project.Status,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}
