// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vennunen/To-Do-list-app/internal/task"
)

// setupEnv isolates a test from real config files and points the
// tasks file and event log into temp directories.
func setupEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })

	t.Setenv("HOME", t.TempDir())
	t.Setenv("TODO_FILE", filepath.Join(dir, "tasks.txt"))
	t.Setenv("TODO_LOG_DIR", filepath.Join(dir, "logs"))
	t.Setenv("TODO_SORT", "added")
	t.Setenv("TODO_SCHEMA", "")
	t.Setenv("TODO_LOG_EVENTS", "false")

	return dir
}

func TestRun(t *testing.T) {
	t.Run("shows help with --help flag", func(t *testing.T) {
		setupEnv(t)
		if err := Run(context.Background(), []string{"--help"}); err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		setupEnv(t)
		if err := Run(context.Background(), []string{"--version"}); err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		setupEnv(t)
		err := Run(context.Background(), []string{"definitely-not-a-command"})
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("ls works on a missing tasks file", func(t *testing.T) {
		setupEnv(t)
		if err := Run(context.Background(), []string{"ls"}); err != nil {
			t.Errorf("ls on empty store failed: %v", err)
		}
	})
}

func TestAddDoneRm(t *testing.T) {
	dir := setupEnv(t)
	ctx := context.Background()
	tasksPath := filepath.Join(dir, "tasks.txt")

	if err := Run(ctx, []string{"add", "-due", "01.05.2024", "Buy milk"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Run(ctx, []string{"add", "-due", "03.05.2024", "-category", "home", "Pay rent"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	store, err := task.Load(tasksPath)
	if err != nil {
		t.Fatalf("loading tasks file: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("store has %d active tasks, want 2", store.Len())
	}
	if got, ok := store.Get("Pay rent"); !ok || got.Category != "home" {
		t.Errorf("Pay rent = %+v, ok = %v", got, ok)
	}

	if err := Run(ctx, []string{"done", "Buy milk"}); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	store, err = task.Load(tasksPath)
	if err != nil {
		t.Fatalf("loading tasks file: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d active tasks after done, want 1", store.Len())
	}
	if completed := store.Completed(); len(completed) != 1 || completed[0].Title != "Buy milk" {
		t.Errorf("Completed() = %+v, want [Buy milk]", completed)
	}

	if err := Run(ctx, []string{"rm", "Pay rent"}); err != nil {
		t.Fatalf("rm failed: %v", err)
	}
	store, err = task.Load(tasksPath)
	if err != nil {
		t.Fatalf("loading tasks file: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d active tasks after rm, want 0", store.Len())
	}
}

func TestDoneUnknownTitleExitsClean(t *testing.T) {
	setupEnv(t)
	// Lookup misses are no-ops in the store; the command reports and
	// exits zero.
	if err := Run(context.Background(), []string{"done", "no such task"}); err != nil {
		t.Errorf("done on unknown title = %v, want nil", err)
	}
	if err := Run(context.Background(), []string{"rm", "no such task"}); err != nil {
		t.Errorf("rm on unknown title = %v, want nil", err)
	}
}

func TestDoctorCommand(t *testing.T) {
	t.Run("clean file passes", func(t *testing.T) {
		dir := setupEnv(t)
		content := "Buy milk;01.05.2024;0\nDONE:Walk dog;29.04.2024;1;home\n"
		if err := os.WriteFile(filepath.Join(dir, "tasks.txt"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Run(context.Background(), []string{"doctor"}); err != nil {
			t.Errorf("doctor failed on a clean file: %v", err)
		}
	})

	t.Run("broken file fails", func(t *testing.T) {
		dir := setupEnv(t)
		if err := os.WriteFile(filepath.Join(dir, "tasks.txt"), []byte("broken\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := Run(context.Background(), []string{"doctor"}); err == nil {
			t.Error("doctor = nil error on a broken file, want failure")
		}
	})
}

func TestInitCommandCreatesFiles(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("TODO_FILE", "tasks.txt") // init writes into the working directory

	if err := Run(context.Background(), []string{"init"}); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for _, name := range []string{"todo.toml", "tasks.txt"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	// A second init leaves existing files alone.
	if err := Run(context.Background(), []string{"init"}); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
}

func TestEventLogWritten(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("TODO_LOG_EVENTS", "true")

	if err := Run(context.Background(), []string{"add", "-due", "01.05.2024", "Buy milk"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("reading log dir: %v", err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".jsonl") {
		t.Errorf("log dir entries = %v, want one .jsonl file", entries)
	}
}
