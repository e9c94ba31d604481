package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/seed"
	"github.com/adanyl0v/go-task-manager/internal/services"
	"github.com/adanyl0v/go-task-manager/internal/storage/memory"
)

func newSeeder() (*seed.Seeder, *memory.Store, services.UserService) {
	store := memory.New()
	users := services.NewUserService(zerolog.Nop(), store, "test", []byte("test-signing-key"), time.Hour)
	return seed.New(zerolog.Nop(), store, users), store, users
}

func TestRun_DemoData(t *testing.T) {
	ctx := context.Background()
	seeder, store, users := newSeeder()

	res, err := seeder.Run(ctx, seed.Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.User.Email != seed.DefaultEmail || res.User.Name != seed.DefaultName {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if len(res.Projects) != 2 || len(res.Tasks) != 6 {
		t.Fatalf("got %d projects and %d tasks", len(res.Projects), len(res.Tasks))
	}

	if _, err := users.Login(ctx, services.LoginParams{
		Email:    seed.DefaultEmail,
		Password: seed.DefaultPassword,
	}); err != nil {
		t.Fatalf("seeded user cannot log in: %v", err)
	}

	projects, err := store.ListProjectsByUserID(ctx, res.User.ID)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 2 || projects[0].Title != "Project Alpha" || projects[1].Title != "Project Beta" {
		t.Fatalf("unexpected projects: %+v", projects)
	}

	for _, p := range projects {
		tasks, err := store.ListTasks(ctx, p.ID, "")
		if err != nil {
			t.Fatalf("list tasks: %v", err)
		}
		want := []string{models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone}
		if len(tasks) != len(want) {
			t.Fatalf("project %s: got %d tasks", p.Title, len(tasks))
		}
		for i, task := range tasks {
			if task.Status != want[i] || task.DueDate == nil {
				t.Fatalf("project %s task %d: %+v", p.Title, i, task)
			}
		}
	}
}

func TestRun_ReplacesExistingData(t *testing.T) {
	ctx := context.Background()
	seeder, store, _ := newSeeder()

	stale := &models.Project{UserID: "someone", Title: "stale"}
	if err := store.CreateProject(ctx, stale); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := seeder.Run(ctx, seed.Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := seeder.Run(ctx, seed.Options{Email: "demo@example.com", Password: "demo-pass"})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if _, err := store.GetUserByEmail(ctx, seed.DefaultEmail); err == nil {
		t.Fatalf("first run user survived reseed")
	}
	if list, _ := store.ListProjectsByUserID(ctx, "someone"); len(list) != 0 {
		t.Fatalf("stale project survived reseed")
	}
	if res.User.Email != "demo@example.com" || res.User.Name != seed.DefaultName {
		t.Fatalf("unexpected user: %+v", res.User)
	}
}
