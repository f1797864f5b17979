package config

import "flag"

// parseFlags registers the global flags on fs, parses args, and writes
// any flag the user actually set into cfg.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	tasksFile := fs.String("file", cfg.TasksFile, "Tasks file path")
	logDir := fs.String("log-dir", cfg.LogDir, "Event log directory")
	schemaFile := fs.String("schema", cfg.SchemaFile, "JSON Schema for doctor validation")
	defaultSort := fs.String("sort", cfg.DefaultSort, "Default listing order (added|deadline)")
	logEvents := fs.Bool("log-events", cfg.LogEvents, "Append mutations to the event log")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.TasksFile = *tasksFile
		case "log-dir":
			cfg.LogDir = *logDir
		case "schema":
			cfg.SchemaFile = *schemaFile
		case "sort":
			cfg.DefaultSort = *defaultSort
		case "log-events":
			cfg.LogEvents = *logEvents
		}
	})

	return nil
}
