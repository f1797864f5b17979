package config

// ExampleConfig is the starter todo.toml written by the init command.
const ExampleConfig = `# todo configuration
# Values here override the user config (~/.todo/todo.toml) and are
# themselves overridden by TODO_* environment variables and CLI flags.

# Path to the tasks file.
tasks_file = "tasks.txt"

# Directory for the JSONL event log.
log_dir = "~/.todo"

# Default listing order: "added" (insertion order) or "deadline".
default_sort = "added"

# Append every mutation to the event log.
log_events = true

# Optional JSON Schema used by "todo doctor" instead of the built-in
# record schema.
#schema_file = "tasks.schema.json"
`
