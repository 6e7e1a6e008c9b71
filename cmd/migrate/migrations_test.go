package main

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"bookshelf/db/migrations"

	"github.com/pressly/goose/v3"
)

func TestCollectMigrations_ParsesMigrationsDir(t *testing.T) {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file lives in cmd/migrate/, so repo root is ../..
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))
	dir := filepath.Join(repoRoot, "db", "migrations")

	goose.SetBaseFS(nil)
	if _, err := goose.CollectMigrations(dir, 0, goose.MaxVersion); err != nil {
		t.Fatalf("expected migrations to parse, got error: %v", err)
	}
}

func TestCollectMigrations_Embedded(t *testing.T) {
	goose.SetBaseFS(migrations.FS)
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	ms, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		t.Fatalf("expected embedded migrations to parse, got error: %v", err)
	}
	if len(ms) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
}

func TestEmbeddedMigrations_HaveUpAndDown(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		t.Fatalf("glob embedded migrations: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no SQL files embedded")
	}

	for _, name := range names {
		b, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		sql := string(b)
		up := strings.Index(sql, "-- +goose Up")
		down := strings.Index(sql, "-- +goose Down")
		if up < 0 || down < 0 {
			t.Fatalf("%s must carry both goose Up and Down sections", name)
		}
		if down < up {
			t.Fatalf("%s: Down section precedes Up", name)
		}
		if !strings.Contains(sql[down:], "DROP TABLE") {
			t.Fatalf("%s: Down section does not drop what Up creates", name)
		}
	}
}
