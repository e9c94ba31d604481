package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	id, err := newID()
	if err != nil {
		return err
	}

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   project_id,
                   title,
                   description,
                   status,
                   due_date,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		id,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", translateError(err))
	}

	task.ID = id
	return nil
}

func (s *Store) ListTasks(ctx context.Context, projectID, status string) ([]*models.Task, error) {
	// $2 = '' disables the status filter.
	const selectTasksByProjectIDQuery = `
SELECT id,
       project_id,
       title,
       description,
       status,
       due_date,
       created_at,
       updated_at
FROM tasks
WHERE project_id = $1 AND ($2 = '' OR status = $2)
ORDER BY created_at, id
`
	rows, err := s.pgPool.Query(ctx, selectTasksByProjectIDQuery, projectID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return tasks, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	const selectTaskQuery = `
SELECT id,
       project_id,
       title,
       description,
       status,
       due_date,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	task, err := scanTask(s.pgPool.QueryRow(ctx, selectTaskQuery, id))
	if err != nil {
		return nil, fmt.Errorf("failed to select task: %w", translateError(err))
	}
	return task, nil
}

func (s *Store) UpdateTask(
	ctx context.Context,
	id string,
	update models.TaskUpdate,
	updatedAt time.Time,
) (*models.Task, error) {
	const updateTaskQuery = `
UPDATE tasks
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    status = COALESCE($3, status),
    due_date = COALESCE($4, due_date),
    updated_at = $5
WHERE id = $6
RETURNING id, project_id, title, description, status, due_date, created_at, updated_at
`
	task, err := scanTask(s.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		update.Title,
		update.Description,
		update.Status,
		update.DueDate,
		updatedAt,
		id,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", translateError(err))
	}
	return task, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pgPool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAllTasks(ctx context.Context) (int64, error) {
	tag, err := s.pgPool.Exec(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	task := new(models.Task)
	err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
