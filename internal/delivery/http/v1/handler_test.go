package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	v1 "github.com/adanyl0v/go-task-manager/internal/delivery/http/v1"
	"github.com/adanyl0v/go-task-manager/internal/services"
	"github.com/adanyl0v/go-task-manager/internal/storage/memory"
)

func newRouter(t *testing.T, scoped bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	logger := zerolog.Nop()
	handler := v1.New(
		logger,
		services.NewUserService(logger, store, "test", []byte("test-signing-key"), time.Hour),
		services.NewProjectService(logger, store),
		services.NewTaskService(logger, store, store, scoped),
	)

	router := gin.New()
	v1.RegisterRoutes(router, handler, v1.RouteOptions{TasksRequireAuth: scoped})
	return router
}

type response struct {
	code int
	body []byte
}

func (r response) object(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(r.body, &m); err != nil {
		t.Fatalf("decode object %s: %v", r.body, err)
	}
	return m
}

func (r response) list(t *testing.T) []map[string]any {
	t.Helper()
	var l []map[string]any
	if err := json.Unmarshal(r.body, &l); err != nil {
		t.Fatalf("decode list %s: %v", r.body, err)
	}
	return l
}

func do(t *testing.T, router http.Handler, method, path, token string, body any) response {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return response{code: rec.Code, body: rec.Body.Bytes()}
}

func expectStatus(t *testing.T, r response, code int) {
	t.Helper()
	if r.code != code {
		t.Fatalf("status: got %d want %d, body %s", r.code, code, r.body)
	}
}

func expectError(t *testing.T, r response, code int, message string) {
	t.Helper()
	expectStatus(t, r, code)
	if got := r.object(t)["error"]; got != message {
		t.Fatalf("error: got %v want %q", got, message)
	}
}

// signUp registers and logs in a user and returns the bearer token.
func signUp(t *testing.T, router http.Handler, email string) string {
	t.Helper()

	r := do(t, router, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "User " + email,
		"email":    email,
		"password": "pw123456",
	})
	expectStatus(t, r, http.StatusCreated)

	r = do(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    email,
		"password": "pw123456",
	})
	expectStatus(t, r, http.StatusOK)

	token, _ := r.object(t)["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %s", r.body)
	}
	return token
}

func TestHealth(t *testing.T) {
	router := newRouter(t, false)
	r := do(t, router, http.MethodGet, "/healthz", "", nil)
	expectStatus(t, r, http.StatusOK)
}
