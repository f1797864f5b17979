package config

// Default values.
const (
	DefaultTasksFile = "tasks.txt"
	DefaultLogDir    = "~/.todo"
	DefaultSortOrder = SortAdded
	DefaultLogEvents = true
)

// Sort orders for task listings.
const (
	SortAdded    = "added"
	SortDeadline = "deadline"
)

// Config holds the full configuration for the task tracker.
type Config struct {
	// Paths
	TasksFile  string `toml:"tasks_file"`
	LogDir     string `toml:"log_dir"`
	SchemaFile string `toml:"schema_file"` // optional doctor schema override

	// Listing
	DefaultSort string `toml:"default_sort"` // "added" or "deadline"

	// Event log
	LogEvents bool `toml:"log_events"`
}

// ValidSortOrder reports whether s names a known sort order.
func ValidSortOrder(s string) bool {
	return s == SortAdded || s == SortDeadline
}

func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.LogDir = DefaultLogDir
	cfg.DefaultSort = DefaultSortOrder
	cfg.LogEvents = DefaultLogEvents
}
