package task

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Store holds all task records in an arena keyed by generated ID. The
// active and completed sequences are ordered lists of arena keys, the
// title index maps titles to the arena key of the newest active task
// with that title, and categories remembers every non-empty category
// ever added (it never shrinks, even when the last task of a category
// goes away).
//
// Store is not safe for concurrent use.
type Store struct {
	arena      map[string]*Task
	active     []string
	completed  []string
	byTitle    map[string]string
	categories map[string]struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		arena:      make(map[string]*Task),
		byTitle:    make(map[string]string),
		categories: make(map[string]struct{}),
	}
}

// Add creates an active task and returns it. Duplicate titles are not
// rejected: the new task takes over the title index slot while the
// older task remains in the active sequence, unreachable by title
// lookup until the newer one is completed or deleted.
func (s *Store) Add(title, deadline, category string) *Task {
	t := &Task{
		ID:       uuid.NewString(),
		Title:    title,
		Deadline: deadline,
		Category: category,
	}
	s.arena[t.ID] = t
	s.active = append(s.active, t.ID)
	s.byTitle[title] = t.ID
	if category != "" {
		s.categories[category] = struct{}{}
	}
	return t
}

// addCompleted appends a task straight to the completed sequence,
// bypassing the title index and the category set. Load uses it for
// "DONE:" lines.
func (s *Store) addCompleted(t Task) {
	t.ID = uuid.NewString()
	s.arena[t.ID] = &t
	s.completed = append(s.completed, t.ID)
}

// Get returns the active task registered under title. It is the
// existence check for callers that need to distinguish a hit from the
// silent no-op of MarkCompleted and Delete.
func (s *Store) Get(title string) (*Task, bool) {
	id, ok := s.byTitle[title]
	if !ok {
		return nil, false
	}
	return s.arena[id], true
}

// MarkCompleted transitions the active task with the given title to
// the completed sequence. Unknown titles are silently ignored. A
// completed task leaves the active sequence and the title index and is
// immutable afterwards; there is no un-completing.
func (s *Store) MarkCompleted(title string) {
	id, ok := s.byTitle[title]
	if !ok {
		return
	}
	s.arena[id].Completed = true
	s.completed = append(s.completed, id)
	s.active = removeID(s.active, id)
	delete(s.byTitle, title)
}

// Delete removes the active task with the given title. Unknown titles
// are silently ignored. Completed tasks cannot be deleted: completion
// already removed their title index entry.
func (s *Store) Delete(title string) {
	id, ok := s.byTitle[title]
	if !ok {
		return
	}
	s.active = removeID(s.active, id)
	delete(s.arena, id)
	delete(s.byTitle, title)
}

// List returns the active tasks in insertion order, or ascending by
// deadline key when sortByDeadline is set. Sorting works on a copy and
// never reorders the stored sequence. A malformed deadline aborts the
// sort with an error rather than misordering the result.
func (s *Store) List(sortByDeadline bool) ([]Task, error) {
	out := s.tasksFor(s.active)
	if !sortByDeadline {
		return out, nil
	}

	keys := make([]int, len(out))
	for i, t := range out {
		key, err := DeadlineKey(t.Deadline)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return out, nil
}

// Completed returns the completed tasks in the order they transitioned.
func (s *Store) Completed() []Task {
	return s.tasksFor(s.completed)
}

// Search returns the active tasks whose title contains substr as a
// literal, case-sensitive substring.
func (s *Store) Search(substr string) []Task {
	var out []Task
	for _, id := range s.active {
		if strings.Contains(s.arena[id].Title, substr) {
			out = append(out, *s.arena[id])
		}
	}
	return out
}

// FilterByCategory returns the active tasks whose category equals
// category exactly, in insertion order. The empty string matches only
// uncategorized tasks.
func (s *Store) FilterByCategory(category string) []Task {
	var out []Task
	for _, id := range s.active {
		if s.arena[id].Category == category {
			out = append(out, *s.arena[id])
		}
	}
	return out
}

// Categories returns every category ever added, sorted.
func (s *Store) Categories() []string {
	out := make([]string, 0, len(s.categories))
	for c := range s.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of active tasks.
func (s *Store) Len() int {
	return len(s.active)
}

func (s *Store) tasksFor(ids []string) []Task {
	out := make([]Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.arena[id])
	}
	return out
}

// removeID drops every occurrence of id, preserving order.
func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
