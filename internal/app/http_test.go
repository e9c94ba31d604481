package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newFrontendRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	globalLogger = zerolog.Nop()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "secret.txt"), "top secret")

	dir := filepath.Join(root, "site")
	writeFile(t, filepath.Join(dir, "index.html"), "<html>index</html>")
	writeFile(t, filepath.Join(dir, "favicon.ico"), "icon-bytes")
	writeFile(t, filepath.Join(dir, "assets", "app.js"), "console.log(1)")

	router := gin.New()
	router.GET("/api/projects", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
	serveFrontend(router, dir)
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServeFrontend_IndexFallback(t *testing.T) {
	router := newFrontendRouter(t)

	for _, path := range []string{"/", "/projects/42", "/login"} {
		rec := get(router, path)
		if rec.Code != http.StatusOK || rec.Body.String() != "<html>index</html>" {
			t.Errorf("%s: got %d %q want index", path, rec.Code, rec.Body.String())
		}
	}
}

func TestServeFrontend_ExistingFiles(t *testing.T) {
	router := newFrontendRouter(t)

	for path, want := range map[string]string{
		"/favicon.ico":   "icon-bytes",
		"/assets/app.js": "console.log(1)",
	} {
		rec := get(router, path)
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Errorf("%s: got %d %q want %q", path, rec.Code, rec.Body.String(), want)
		}
	}
}

func TestServeFrontend_UnknownAPIPath(t *testing.T) {
	router := newFrontendRouter(t)

	rec := get(router, "/api/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	if body["error"] != "Not found" {
		t.Fatalf("error: got %q want %q", body["error"], "Not found")
	}

	rec = get(router, "/api/projects")
	if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
		t.Fatalf("registered API route shadowed: %d %q", rec.Code, rec.Body.String())
	}
}

func TestServeFrontend_StaysInsideDir(t *testing.T) {
	router := newFrontendRouter(t)

	for _, path := range []string{"/../secret.txt", "/assets/../../secret.txt"} {
		rec := get(router, path)
		if strings.Contains(rec.Body.String(), "top secret") {
			t.Errorf("%s: served a file outside the frontend dir", path)
		}
	}
}
