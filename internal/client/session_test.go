package client_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adanyl0v/go-task-manager/internal/client"
)

func TestSession_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	session, err := client.LoadSession(path)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if session.Authenticated() {
		t.Fatalf("missing file should be signed out")
	}

	session.SignIn("token-1")
	if err := session.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o600 {
		t.Fatalf("mode: got %v want 0600", info.Mode().Perm())
	}

	loaded, err := client.LoadSession(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Token != "token-1" {
		t.Fatalf("token: got %q", loaded.Token)
	}

	loaded.SignOut()
	if err := loaded.Save(path); err != nil {
		t.Fatalf("save signed out: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("signed-out save should remove the file: %v", err)
	}
}

func TestSession_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := client.LoadSession(path); err == nil {
		t.Fatalf("expected error for corrupt session")
	}
}
