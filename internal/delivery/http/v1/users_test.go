package v1_test

import (
	"net/http"
	"testing"
)

func TestRegisterLoginProfile(t *testing.T) {
	router := newRouter(t, false)

	r := do(t, router, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "pw123456",
	})
	expectStatus(t, r, http.StatusCreated)
	user := r.object(t)
	if user["_id"] == "" || user["email"] != "a@x.com" || user["name"] != "A" {
		t.Fatalf("unexpected user: %v", user)
	}
	if _, ok := user["password"]; ok {
		t.Fatalf("password exposed: %v", user)
	}

	r = do(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "pw123456",
	})
	expectStatus(t, r, http.StatusOK)
	token, _ := r.object(t)["token"].(string)
	if token == "" {
		t.Fatalf("no token: %s", r.body)
	}

	r = do(t, router, http.MethodGet, "/api/users/profile", token, nil)
	expectStatus(t, r, http.StatusOK)
	profile := r.object(t)
	if profile["_id"] != user["_id"] || profile["name"] != "A" || profile["email"] != "a@x.com" {
		t.Fatalf("unexpected profile: %v", profile)
	}
	if _, ok := profile["password"]; ok {
		t.Fatalf("password exposed: %v", profile)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router := newRouter(t, false)
	signUp(t, router, "a@x.com")

	r := do(t, router, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "B",
		"email":    "a@x.com",
		"password": "pw123456",
	})
	expectError(t, r, http.StatusInternalServerError, "user already exists")
}

func TestLoginFailures(t *testing.T) {
	router := newRouter(t, false)
	signUp(t, router, "a@x.com")

	wrong := do(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrong-password",
	})
	unknown := do(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "pw123456",
	})
	expectStatus(t, wrong, http.StatusUnauthorized)
	expectStatus(t, unknown, http.StatusUnauthorized)
	if string(wrong.body) != string(unknown.body) {
		t.Fatalf("login failures differ: %s vs %s", wrong.body, unknown.body)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	router := newRouter(t, false)

	for name, token := range map[string]string{
		"missing": "",
		"garbage": "not-a-token",
	} {
		r := do(t, router, http.MethodGet, "/api/users/profile", token, nil)
		if r.code != http.StatusUnauthorized {
			t.Errorf("%s token: got %d want 401", name, r.code)
		}
	}
}

func TestRegisterRejectsBadBody(t *testing.T) {
	router := newRouter(t, false)

	for name, body := range map[string]any{
		"malformed":     "{",
		"missing email": map[string]string{"name": "A", "password": "pw123456"},
		"unknown field": map[string]string{"name": "A", "email": "a@x.com", "password": "pw123456", "role": "admin"},
	} {
		r := do(t, router, http.MethodPost, "/api/users/register", "", body)
		if r.code != http.StatusInternalServerError {
			t.Errorf("%s: got %d want 500, body %s", name, r.code, r.body)
		}
	}
}

func TestEmailIsCaseInsensitive(t *testing.T) {
	router := newRouter(t, false)
	signUp(t, router, "a@x.com")

	r := do(t, router, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "B",
		"email":    "A@X.com",
		"password": "pw123456",
	})
	expectError(t, r, http.StatusInternalServerError, "user already exists")

	r = do(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"email":    "A@X.COM",
		"password": "pw123456",
	})
	expectStatus(t, r, http.StatusOK)
}
