// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vennunen/To-Do-list-app/internal/config"
	"github.com/vennunen/To-Do-list-app/internal/logging"
	"github.com/vennunen/To-Do-list-app/internal/task"
	"github.com/vennunen/To-Do-list-app/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand. With no arguments the interactive
	// interface runs, matching the menu loop a bare invocation used
	// to open.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return addCommand(cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(cfg, remainingArgs)
	case "done":
		return doneCommand(cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, remainingArgs)
	case "search":
		return searchCommand(cfg, remainingArgs)
	case "categories":
		return categoriesCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(cfg, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "version", "--version":
		return versionCommand()
	case "help", "--help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openEvents opens the event log when enabled; a nil log disables
// event recording.
func openEvents(cfg *config.Config) (*logging.EventLog, error) {
	if !cfg.LogEvents {
		return nil, nil
	}
	events, err := logging.Open(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return events, nil
}

// tuiCommand launches the interactive interface.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	events, err := openEvents(cfg)
	if err != nil {
		return err
	}
	defer events.Close()

	return ui.RunTUI(ctx, cfg, events)
}

// doctorCommand checks the config, tasks file, and event log setup.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	tasksPath := cfg.TasksFile
	if len(remaining) == 1 {
		tasksPath = remaining[0]
	}

	fmt.Println("Todo Doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	fmt.Printf("Tasks file: %s\n", tasksPath)
	result := task.ValidateFile(tasksPath, task.ValidationOptions{SchemaPath: cfg.SchemaFile})
	if result.Valid {
		if result.UsedSchema {
			fmt.Println("  ✅ OK (schema validated)")
		} else {
			fmt.Println("  ✅ OK (minimal checks)")
		}
	} else {
		allOK = false
		fmt.Printf("  ❌ %d problem(s) found\n", len(result.Errors))
		for _, err := range result.Errors {
			fmt.Printf("     - %v\n", err)
		}
	}
	for _, warning := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", warning)
	}
	fmt.Println()

	fmt.Printf("Event log dir: %s\n", cfg.LogDir)
	if !cfg.LogEvents {
		fmt.Println("  ✅ disabled (log_events = false)")
	} else if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	if *verbose {
		fmt.Println("Config:")
		fmt.Printf("  tasks_file:   %s\n", cfg.TasksFile)
		fmt.Printf("  log_dir:      %s\n", cfg.LogDir)
		fmt.Printf("  schema_file:  %s\n", cfg.SchemaFile)
		fmt.Printf("  default_sort: %s\n", cfg.DefaultSort)
		fmt.Printf("  log_events:   %v\n", cfg.LogEvents)
		fmt.Println()
	}

	if allOK {
		fmt.Println("All checks passed.")
		return nil
	}
	return fmt.Errorf("doctor found problems")
}

// tailCommand shows the latest event log file.
func tailCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No event log files found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.Tail(os.Stdout, logPath, *n, *follow)
}

// initCommand writes a starter config file and an empty tasks file.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo init", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if _, err := os.Stat("todo.toml"); os.IsNotExist(err) {
		if err := os.WriteFile("todo.toml", []byte(config.ExampleConfig), 0644); err != nil {
			return fmt.Errorf("writing todo.toml: %w", err)
		}
		fmt.Println("Created todo.toml")
	} else {
		fmt.Println("todo.toml already exists, leaving it untouched")
	}

	if _, err := os.Stat(cfg.TasksFile); os.IsNotExist(err) {
		store := task.NewStore()
		if err := store.Save(cfg.TasksFile); err != nil {
			return fmt.Errorf("writing tasks file: %w", err)
		}
		fmt.Printf("Created %s\n", cfg.TasksFile)
	} else {
		fmt.Printf("%s already exists, leaving it untouched\n", cfg.TasksFile)
	}

	return nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("todo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todo - A single-user task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui               Interactive interface (default command)")
	fmt.Fprintln(w, "  add <title>       Add a task (-due DD.MM.YYYY, -category name)")
	fmt.Fprintln(w, "  ls                List active tasks (-deadline, -done, -category name)")
	fmt.Fprintln(w, "  done <title>      Mark a task completed")
	fmt.Fprintln(w, "  rm <title>        Delete a task")
	fmt.Fprintln(w, "  search <substr>   Search active tasks by title substring")
	fmt.Fprintln(w, "  categories        List known categories")
	fmt.Fprintln(w, "  doctor [file]     Check config and tasks file validity")
	fmt.Fprintln(w, "  tail              Tail the latest event log file")
	fmt.Fprintln(w, "  init              Write a starter todo.toml and tasks file")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
