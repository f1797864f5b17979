package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEventLog(t *testing.T) {
	dir := t.TempDir()

	log, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer log.Close()

	if err := log.Event("add", map[string]any{"title": "Buy milk", "deadline": "01.05.2024"}); err != nil {
		t.Fatalf("Event failed: %v", err)
	}
	if err := log.Event("complete", map[string]any{"title": "Buy milk"}); err != nil {
		t.Fatalf("Event failed: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(log.Path)
	if err != nil {
		t.Fatalf("reading events file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if first["op"] != "add" || first["title"] != "Buy milk" {
		t.Errorf("first event = %v", first)
	}
	if _, err := time.Parse(time.RFC3339, first["ts"].(string)); err != nil {
		t.Errorf("ts is not RFC3339: %v", err)
	}
}

func TestEventLogAppends(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 2; i++ {
		log, err := Open(dir)
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if err := log.Event("add", nil); err != nil {
			t.Fatalf("Event failed: %v", err)
		}
		log.Close()
	}

	latest, err := FindLatestLog(dir)
	if err != nil {
		t.Fatalf("FindLatestLog failed: %v", err)
	}
	data, err := os.ReadFile(latest)
	if err != nil {
		t.Fatalf("reading events file: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("got %d events after two sessions, want 2", got)
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		latest, err := FindLatestLog(filepath.Join(t.TempDir(), "absent"))
		if err != nil {
			t.Fatalf("FindLatestLog failed: %v", err)
		}
		if latest != "" {
			t.Errorf("latest = %q, want empty", latest)
		}
	})

	t.Run("picks newest jsonl", func(t *testing.T) {
		dir := t.TempDir()
		old := filepath.Join(dir, "events-202401.jsonl")
		newer := filepath.Join(dir, "events-202402.jsonl")
		if err := os.WriteFile(old, []byte("{}\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(newer, []byte("{}\n"), 0644); err != nil {
			t.Fatal(err)
		}
		past := time.Now().Add(-time.Hour)
		if err := os.Chtimes(old, past, past); err != nil {
			t.Fatal(err)
		}

		latest, err := FindLatestLog(dir)
		if err != nil {
			t.Fatalf("FindLatestLog failed: %v", err)
		}
		if latest != newer {
			t.Errorf("latest = %q, want %q", latest, newer)
		}
	})
}

func TestTail(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events-202401.jsonl")
	var content strings.Builder
	for i := 0; i < 5; i++ {
		content.WriteString(`{"op":"add"}` + "\n")
	}
	if err := os.WriteFile(path, []byte(content.String()), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Tail(&buf, path, 0, false); err != nil {
		t.Fatalf("Tail failed: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 5 {
		t.Errorf("tailed %d lines, want 5", got)
	}
}
