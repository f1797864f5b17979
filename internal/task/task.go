package task

import (
	"fmt"
	"strings"
)

// doneMarker prefixes persisted lines of completed tasks.
const doneMarker = "DONE:"

// fieldSep separates fields within a persisted line. Field values are
// not escaped; see the package documentation.
const fieldSep = ";"

// Task is a single task record. Category is optional; the empty string
// means uncategorized. ID is a generated identifier used as the arena
// key inside Store — titles cannot serve because they are not unique
// (see Store.Add).
type Task struct {
	ID        string
	Title     string
	Deadline  string
	Category  string
	Completed bool
}

// EncodeLine renders the task in its persisted form, without the
// "DONE:" marker. Save prepends the marker for tasks in the completed
// sequence.
func (t *Task) EncodeLine() string {
	flag := "0"
	if t.Completed {
		flag = "1"
	}
	if t.Category == "" {
		return t.Title + fieldSep + t.Deadline + fieldSep + flag
	}
	return t.Title + fieldSep + t.Deadline + fieldSep + flag + fieldSep + t.Category
}

// DecodeLine parses one persisted line. The returned bool reports
// whether the line carried the "DONE:" marker; the completed field of
// the task is taken from the flag field alone. Lines with fewer than
// three fields are malformed. Fields past the category are dropped.
func DecodeLine(line string) (Task, bool, error) {
	done := strings.HasPrefix(line, doneMarker)
	if done {
		line = line[len(doneMarker):]
	}

	parts := strings.Split(line, fieldSep)
	if len(parts) < 3 {
		return Task{}, false, fmt.Errorf("malformed task line %q: want title;deadline;flag", line)
	}

	t := Task{
		Title:     parts[0],
		Deadline:  parts[1],
		Completed: parts[2] == "1",
	}
	if len(parts) >= 4 {
		t.Category = parts[3]
	}
	return t, done, nil
}
