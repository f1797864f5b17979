// Package logging appends JSONL event records and tails them back.
//
// Every store mutation made through the CLI or the TUI is appended to
// a monthly events file (events-YYYYMM.jsonl) under the configured log
// directory. The tail command reads the latest file back.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EventLog appends mutation events to a JSONL file.
type EventLog struct {
	Dir  string
	Path string
	file *os.File
}

// Open creates the log directory if needed and opens this month's
// events file for appending.
func Open(baseDir string) (*EventLog, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("log base dir is empty")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(baseDir, fmt.Sprintf("events-%s.jsonl", time.Now().UTC().Format("200601")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}

	return &EventLog{
		Dir:  baseDir,
		Path: path,
		file: file,
	}, nil
}

// Event appends one record. op names the mutation (add, complete,
// delete, ...); fields carry its details.
func (l *EventLog) Event(op string, fields map[string]any) error {
	record := map[string]any{
		"ts": time.Now().UTC().Format(time.RFC3339),
		"op": op,
	}
	for k, v := range fields {
		record[k] = v
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	data = append(data, '\n')

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// Close closes the events file.
func (l *EventLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FindLatestLog finds the most recently written JSONL events file in a
// directory. It returns "" when the directory has none.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(logDir, entry.Name())
		}
	}

	return latest, nil
}
