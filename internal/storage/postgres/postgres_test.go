package postgres

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adanyl0v/go-task-manager/internal/storage"
)

// fakeRow hands values to Scan in column order, the way a result row would.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r.values))
	}
	for i, v := range r.values {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		value := reflect.ValueOf(v)
		if target.Kind() == reflect.Pointer {
			ptr := reflect.New(target.Type().Elem())
			ptr.Elem().Set(value)
			value = ptr
		}
		if !value.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan: column %d is %s, destination is %s", i, value.Type(), target.Type())
		}
		target.Set(value)
	}
	return nil
}

var _ pgx.Row = fakeRow{}

func TestScanProject(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	project, err := scanProject(fakeRow{values: []any{
		"p1", "u1", "Title", "Desc", "completed", created, updated,
	}})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if project.ID != "p1" || project.UserID != "u1" || project.Title != "Title" ||
		project.Description != "Desc" || project.Status != "completed" ||
		!project.CreatedAt.Equal(created) || !project.UpdatedAt.Equal(updated) {
		t.Fatalf("unexpected project: %+v", project)
	}
}

func TestScanTask(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := created.Add(48 * time.Hour)

	task, err := scanTask(fakeRow{values: []any{
		"t1", "p1", "Title", "", "in-progress", due, created, created,
	}})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if task.ID != "t1" || task.ProjectID != "p1" || task.Status != "in-progress" {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Fatalf("due date: got %v want %v", task.DueDate, due)
	}

	task, err = scanTask(fakeRow{values: []any{
		"t2", "p1", "Title", "", "todo", nil, created, created,
	}})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if task.DueDate != nil {
		t.Fatalf("NULL due date scanned as %v", task.DueDate)
	}
}

func TestScan_PropagatesRowError(t *testing.T) {
	if _, err := scanProject(fakeRow{err: pgx.ErrNoRows}); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("project: got %v", err)
	}
	if _, err := scanTask(fakeRow{err: pgx.ErrNoRows}); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("task: got %v", err)
	}
}

func TestTranslateError(t *testing.T) {
	if err := translateError(fmt.Errorf("select: %w", pgx.ErrNoRows)); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("no rows: got %v want ErrNotFound", err)
	}

	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	if err := translateError(fmt.Errorf("insert: %w", unique)); !errors.Is(err, storage.ErrDuplicate) {
		t.Errorf("unique violation: got %v want ErrDuplicate", err)
	}

	other := &pgconn.PgError{Code: pgerrcode.UndefinedTable}
	if err := translateError(other); !errors.Is(err, other) {
		t.Errorf("other pg error: got %v want it unchanged", err)
	}
}

func TestSchema_ReferencesWithoutForeignKeys(t *testing.T) {
	for _, stmt := range schema {
		if strings.Contains(strings.ToUpper(stmt), "REFERENCES") {
			t.Fatalf("schema declares a foreign key: %s", stmt)
		}
	}
}
