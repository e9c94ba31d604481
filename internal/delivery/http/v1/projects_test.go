package v1_test

import (
	"net/http"
	"testing"
)

func TestProjectsRequireAuth(t *testing.T) {
	router := newRouter(t, false)

	r := do(t, router, http.MethodGet, "/api/projects", "", nil)
	expectError(t, r, http.StatusUnauthorized, "not authorized")

	r = do(t, router, http.MethodPost, "/api/projects", "", map[string]string{"title": "P"})
	expectStatus(t, r, http.StatusUnauthorized)
}

func TestProjectLifecycle(t *testing.T) {
	router := newRouter(t, false)
	token := signUp(t, router, "a@x.com")

	r := do(t, router, http.MethodGet, "/api/projects", token, nil)
	expectStatus(t, r, http.StatusOK)
	if string(r.body) != "[]" {
		t.Fatalf("empty list: got %s want []", r.body)
	}

	r = do(t, router, http.MethodPost, "/api/projects", token, map[string]string{
		"title":       "P1",
		"description": "first",
	})
	expectStatus(t, r, http.StatusCreated)
	project := r.object(t)
	id, _ := project["_id"].(string)
	if id == "" || project["status"] != "active" || project["title"] != "P1" {
		t.Fatalf("unexpected project: %v", project)
	}

	r = do(t, router, http.MethodPut, "/api/projects/"+id, token, map[string]string{"status": "completed"})
	expectStatus(t, r, http.StatusOK)
	updated := r.object(t)
	if updated["status"] != "completed" || updated["title"] != "P1" || updated["description"] != "first" {
		t.Fatalf("unexpected update: %v", updated)
	}

	r = do(t, router, http.MethodGet, "/api/projects", token, nil)
	expectStatus(t, r, http.StatusOK)
	if list := r.list(t); len(list) != 1 || list[0]["_id"] != id {
		t.Fatalf("unexpected list: %s", r.body)
	}

	r = do(t, router, http.MethodDelete, "/api/projects/"+id, token, nil)
	expectStatus(t, r, http.StatusOK)
	if msg := r.object(t)["message"]; msg != "Project deleted" {
		t.Fatalf("delete message: %v", msg)
	}

	r = do(t, router, http.MethodDelete, "/api/projects/"+id, token, nil)
	expectError(t, r, http.StatusNotFound, "Project not found")
}

func TestProjectOwnership(t *testing.T) {
	router := newRouter(t, false)
	owner := signUp(t, router, "a@x.com")
	other := signUp(t, router, "b@x.com")

	r := do(t, router, http.MethodPost, "/api/projects", owner, map[string]string{"title": "P1"})
	expectStatus(t, r, http.StatusCreated)
	id, _ := r.object(t)["_id"].(string)

	foreign := do(t, router, http.MethodPut, "/api/projects/"+id, other, map[string]string{"title": "mine"})
	missing := do(t, router, http.MethodPut, "/api/projects/does-not-exist", other, map[string]string{"title": "mine"})
	expectError(t, foreign, http.StatusNotFound, "Project not found")
	expectError(t, missing, http.StatusNotFound, "Project not found")

	r = do(t, router, http.MethodDelete, "/api/projects/"+id, other, nil)
	expectError(t, r, http.StatusNotFound, "Project not found")

	r = do(t, router, http.MethodGet, "/api/projects", other, nil)
	expectStatus(t, r, http.StatusOK)
	if string(r.body) != "[]" {
		t.Fatalf("other user sees foreign projects: %s", r.body)
	}

	r = do(t, router, http.MethodGet, "/api/projects", owner, nil)
	if list := r.list(t); len(list) != 1 || list[0]["title"] != "P1" {
		t.Fatalf("owner project changed: %s", r.body)
	}
}

func TestUpdateProjectRejectsUnknownFields(t *testing.T) {
	router := newRouter(t, false)
	owner := signUp(t, router, "a@x.com")
	other := signUp(t, router, "b@x.com")

	r := do(t, router, http.MethodPost, "/api/projects", owner, map[string]string{"title": "P1"})
	id, _ := r.object(t)["_id"].(string)

	r = do(t, router, http.MethodGet, "/api/users/profile", other, nil)
	otherID, _ := r.object(t)["_id"].(string)

	r = do(t, router, http.MethodPut, "/api/projects/"+id, owner, map[string]string{"user": otherID})
	expectStatus(t, r, http.StatusInternalServerError)

	r = do(t, router, http.MethodGet, "/api/projects", other, nil)
	if string(r.body) != "[]" {
		t.Fatalf("ownership reassigned: %s", r.body)
	}
}

func TestCreateProjectRequiresTitle(t *testing.T) {
	router := newRouter(t, false)
	token := signUp(t, router, "a@x.com")

	r := do(t, router, http.MethodPost, "/api/projects", token, map[string]string{"description": "no title"})
	expectStatus(t, r, http.StatusInternalServerError)
}

func TestCreateProjectRejectsTrailingData(t *testing.T) {
	router := newRouter(t, false)
	token := signUp(t, router, "a@x.com")

	for name, body := range map[string]string{
		"garbage":      `{"title":"P1"} trailing`,
		"second value": `{"title":"P1"}{"title":"P2"}`,
	} {
		r := do(t, router, http.MethodPost, "/api/projects", token, body)
		if r.code != http.StatusInternalServerError {
			t.Errorf("%s: got %d want 500, body %s", name, r.code, r.body)
		}
	}

	r := do(t, router, http.MethodPost, "/api/projects", token, "{\"title\":\"P1\"}\n")
	expectStatus(t, r, http.StatusCreated)

	r = do(t, router, http.MethodGet, "/api/projects", token, nil)
	if list := r.list(t); len(list) != 1 {
		t.Fatalf("rejected bodies created projects: %s", r.body)
	}
}
