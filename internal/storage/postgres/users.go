package postgres

import (
	"context"
	"fmt"

	"github.com/adanyl0v/go-task-manager/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	id, err := newID()
	if err != nil {
		return err
	}

	const insertUserQuery = `
INSERT INTO users (id,
                   name,
                   email,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertUserQuery,
		id,
		user.Name,
		user.Email,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", translateError(err))
	}

	user.ID = id
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT id,
       name,
       email,
       password,
       created_at,
       updated_at
FROM users
WHERE id = $1
`
	return s.selectUser(ctx, selectUserByIDQuery, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT id,
       name,
       email,
       password,
       created_at,
       updated_at
FROM users
WHERE email = $1
`
	return s.selectUser(ctx, selectUserByEmailQuery, email)
}

func (s *Store) selectUser(ctx context.Context, query string, arg string) (*models.User, error) {
	user := new(models.User)
	err := s.pgPool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", translateError(err))
	}
	return user, nil
}

func (s *Store) DeleteAllUsers(ctx context.Context) (int64, error) {
	tag, err := s.pgPool.Exec(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete users: %w", err)
	}
	return tag.RowsAffected(), nil
}
