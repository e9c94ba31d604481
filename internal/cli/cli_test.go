package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/cli"
	"github.com/adanyl0v/go-task-manager/internal/client"
	v1 "github.com/adanyl0v/go-task-manager/internal/delivery/http/v1"
	"github.com/adanyl0v/go-task-manager/internal/services"
	"github.com/adanyl0v/go-task-manager/internal/storage/memory"
)

type harness struct {
	t           *testing.T
	apiURL      string
	sessionFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	logger := zerolog.Nop()
	handler := v1.New(
		logger,
		services.NewUserService(logger, store, "test", []byte("test-signing-key"), time.Hour),
		services.NewProjectService(logger, store),
		services.NewTaskService(logger, store, store, false),
	)
	router := gin.New()
	v1.RegisterRoutes(router, handler, v1.RouteOptions{})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &harness{
		t:           t,
		apiURL:      srv.URL,
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
	}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()

	var stdout, stderr bytes.Buffer
	args = append([]string{"--api-url", h.apiURL, "--session-file", h.sessionFile}, args...)
	err := cli.Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()

	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("taskctl %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestCLI_Session(t *testing.T) {
	h := newHarness(t)

	if _, err := h.run("profile"); !errors.Is(err, client.ErrNotAuthenticated) {
		t.Fatalf("profile before login: got %v", err)
	}
	if _, err := h.run("projects", "list"); !errors.Is(err, client.ErrNotAuthenticated) {
		t.Fatalf("projects before login: got %v", err)
	}

	h.mustRun("register", "--name", "A", "--email", "a@x.com", "--password", "pw123456")
	h.mustRun("login", "--email", "a@x.com", "--password", "pw123456")

	out := h.mustRun("profile")
	if !strings.Contains(out, "a@x.com") || !strings.Contains(out, "A") {
		t.Fatalf("profile output: %q", out)
	}

	h.mustRun("logout")
	if _, err := h.run("profile"); !errors.Is(err, client.ErrNotAuthenticated) {
		t.Fatalf("profile after logout: got %v", err)
	}
}

func TestCLI_BadLogin(t *testing.T) {
	h := newHarness(t)
	h.mustRun("register", "--name", "A", "--email", "a@x.com", "--password", "pw123456")

	_, err := h.run("login", "--email", "a@x.com", "--password", "wrong-password")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v want APIError", err)
	}
	if _, err := h.run("profile"); !errors.Is(err, client.ErrNotAuthenticated) {
		t.Fatalf("session stored after failed login: %v", err)
	}
}

func TestCLI_ProjectsAndTasks(t *testing.T) {
	h := newHarness(t)
	h.mustRun("register", "--name", "A", "--email", "a@x.com", "--password", "pw123456")
	h.mustRun("login", "--email", "a@x.com", "--password", "pw123456")

	projectID := strings.TrimSpace(h.mustRun("projects", "create", "--title", "P1"))
	if projectID == "" {
		t.Fatalf("projects create printed no id")
	}

	out := h.mustRun("projects", "list")
	if !strings.Contains(out, projectID) || !strings.Contains(out, "active") {
		t.Fatalf("projects list: %q", out)
	}

	taskID := strings.TrimSpace(h.mustRun("tasks", "create", projectID, "--title", "T1", "--due", "2025-01-31"))
	if taskID == "" {
		t.Fatalf("tasks create printed no id")
	}

	out = h.mustRun("tasks", "list", projectID)
	if !strings.Contains(out, "T1") || !strings.Contains(out, "2025-01-31") {
		t.Fatalf("tasks list: %q", out)
	}

	h.mustRun("tasks", "update", taskID, "--status", "done")
	out = h.mustRun("tasks", "list", projectID, "--status", "todo")
	if strings.Contains(out, taskID) {
		t.Fatalf("done task listed under todo: %q", out)
	}
	out = h.mustRun("tasks", "list", projectID, "--status", "done")
	if !strings.Contains(out, taskID) {
		t.Fatalf("done task missing: %q", out)
	}

	if _, err := h.run("tasks", "create", projectID, "--title", "T2", "--due", "soon"); err == nil {
		t.Fatalf("expected error for bad --due")
	}

	out = h.mustRun("tasks", "delete", taskID)
	if strings.TrimSpace(out) != "Task deleted" {
		t.Fatalf("tasks delete: %q", out)
	}

	h.mustRun("projects", "update", projectID, "--status", "completed")
	out = h.mustRun("projects", "list")
	if !strings.Contains(out, "completed") {
		t.Fatalf("projects list after update: %q", out)
	}

	out = h.mustRun("projects", "delete", projectID)
	if strings.TrimSpace(out) != "Project deleted" {
		t.Fatalf("projects delete: %q", out)
	}

	_, err := h.run("projects", "delete", projectID)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Project not found" {
		t.Fatalf("second delete: got %v", err)
	}
}
