// Package memory keeps records in process memory. Contents are lost on exit.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/storage"
)

type Store struct {
	mu sync.RWMutex

	users        map[string]*models.User
	userByEmail  map[string]string
	projects     map[string]*models.Project
	projectOrder []string
	tasks        map[string]*models.Task
	taskOrder    []string
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:       make(map[string]*models.User),
		userByEmail: make(map[string]string),
		projects:    make(map[string]*models.Project),
		tasks:       make(map[string]*models.Task),
	}
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByEmail[user.Email]; ok {
		return storage.ErrDuplicate
	}

	id, err := newID()
	if err != nil {
		return err
	}
	user.ID = id

	stored := *user
	s.users[id] = &stored
	s.userByEmail[user.Email] = id
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	found := *user
	return &found, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.userByEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.GetUserByID(ctx, id)
}

func (s *Store) DeleteAllUsers(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.users))
	s.users = make(map[string]*models.User)
	s.userByEmail = make(map[string]string)
	return n, nil
}

func (s *Store) CreateProject(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return err
	}
	project.ID = id

	stored := *project
	s.projects[id] = &stored
	s.projectOrder = append(s.projectOrder, id)
	return nil
}

func (s *Store) ListProjectsByUserID(_ context.Context, userID string) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]*models.Project, 0)
	for _, id := range s.projectOrder {
		p, ok := s.projects[id]
		if !ok || p.UserID != userID {
			continue
		}
		found := *p
		projects = append(projects, &found)
	}
	return projects, nil
}

func (s *Store) GetProject(_ context.Context, id, userID string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return nil, storage.ErrNotFound
	}
	found := *p
	return &found, nil
}

func (s *Store) UpdateProject(
	_ context.Context,
	id, userID string,
	update models.ProjectUpdate,
	updatedAt time.Time,
) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return nil, storage.ErrNotFound
	}
	update.Apply(p)
	p.UpdatedAt = updatedAt

	updated := *p
	return &updated, nil
}

func (s *Store) DeleteProject(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.projects, id)
	s.projectOrder = removeID(s.projectOrder, id)
	return nil
}

func (s *Store) DeleteAllProjects(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.projects))
	s.projects = make(map[string]*models.Project)
	s.projectOrder = nil
	return n, nil
}

func (s *Store) CreateTask(_ context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := newID()
	if err != nil {
		return err
	}
	task.ID = id

	stored := copyTask(task)
	s.tasks[id] = stored
	s.taskOrder = append(s.taskOrder, id)
	return nil
}

func (s *Store) ListTasks(_ context.Context, projectID, status string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*models.Task, 0)
	for _, id := range s.taskOrder {
		t, ok := s.tasks[id]
		if !ok || t.ProjectID != projectID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		tasks = append(tasks, copyTask(t))
	}
	return tasks, nil
}

func (s *Store) GetTask(_ context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyTask(t), nil
}

func (s *Store) UpdateTask(
	_ context.Context,
	id string,
	update models.TaskUpdate,
	updatedAt time.Time,
) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	update.Apply(t)
	t.UpdatedAt = updatedAt
	return copyTask(t), nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.tasks, id)
	s.taskOrder = removeID(s.taskOrder, id)
	return nil
}

func (s *Store) DeleteAllTasks(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.tasks))
	s.tasks = make(map[string]*models.Task)
	s.taskOrder = nil
	return n, nil
}

func copyTask(t *models.Task) *models.Task {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
