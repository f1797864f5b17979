package task

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
)

// Load reads a store from the tasks file at path. A missing file is
// not an error: it yields an empty store. "DONE:" lines land in the
// completed sequence without touching the title index or the category
// set; all other lines go through the normal Add path.
func Load(path string) (*Store, error) {
	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("lock tasks file: %w", err)
	}
	defer fl.Unlock()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	s := NewStore()
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, done, err := DecodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("parse tasks file: %w", err)
		}
		if done {
			s.addCompleted(t)
			continue
		}
		added := s.Add(t.Title, t.Deadline, t.Category)
		added.Completed = t.Completed
	}
	return s, nil
}

// Save rewrites the tasks file at path in full: active tasks first,
// then completed tasks with the "DONE:" marker, each sequence in its
// stored order. On failure the in-memory store is untouched and
// remains valid.
func (s *Store) Save(path string) error {
	fl := flock.New(path + ".lock")
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("lock tasks file: %w", err)
	}
	defer fl.Unlock()

	var b strings.Builder
	for _, id := range s.active {
		b.WriteString(s.arena[id].EncodeLine())
		b.WriteString("\n")
	}
	for _, id := range s.completed {
		b.WriteString(doneMarker)
		b.WriteString(s.arena[id].EncodeLine())
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}
