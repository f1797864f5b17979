package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/vennunen/To-Do-list-app/internal/config"
	"github.com/vennunen/To-Do-list-app/internal/task"
)

// addCommand creates a task and saves the store.
func addCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo add", flag.ContinueOnError)
	due := fs.String("due", "", "Deadline (DD.MM.YYYY)")
	category := fs.String("category", "", "Category (empty for none)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.Join(fs.Args(), " ")
	if title == "" {
		return fmt.Errorf("add: title must not be empty")
	}

	store, err := task.Load(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	store.Add(title, *due, *category)
	if err := store.Save(cfg.TasksFile); err != nil {
		return fmt.Errorf("saving tasks file: %w", err)
	}
	if err := logEvent(cfg, "add", map[string]any{"title": title, "deadline": *due, "category": *category}); err != nil {
		return err
	}

	fmt.Printf("Added %q\n", title)
	return nil
}

// lsCommand lists active tasks, or completed tasks with -done.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo ls", flag.ContinueOnError)
	byDeadline := fs.Bool("deadline", cfg.DefaultSort == config.SortDeadline, "Sort by deadline")
	showDone := fs.Bool("done", false, "Show completed tasks instead")
	category := fs.String("category", "", "Only tasks of this category")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, err := task.Load(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	var tasks []task.Task
	switch {
	case *showDone:
		tasks = store.Completed()
	case *category != "":
		tasks = store.FilterByCategory(*category)
	default:
		tasks, err = store.List(*byDeadline)
		if err != nil {
			return fmt.Errorf("sorting by deadline: %w", err)
		}
	}

	printTaskList(tasks)
	return nil
}

// doneCommand marks a task completed by title.
func doneCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo done", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.Join(fs.Args(), " ")
	if title == "" {
		return fmt.Errorf("done: title must not be empty")
	}

	store, err := task.Load(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	// The store silently ignores unknown titles; check first so the
	// user gets feedback either way.
	if _, ok := store.Get(title); !ok {
		fmt.Printf("No active task titled %q\n", title)
		return nil
	}

	store.MarkCompleted(title)
	if err := store.Save(cfg.TasksFile); err != nil {
		return fmt.Errorf("saving tasks file: %w", err)
	}
	if err := logEvent(cfg, "complete", map[string]any{"title": title}); err != nil {
		return err
	}

	fmt.Printf("Completed %q\n", title)
	return nil
}

// rmCommand deletes a task by title.
func rmCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo rm", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.Join(fs.Args(), " ")
	if title == "" {
		return fmt.Errorf("rm: title must not be empty")
	}

	store, err := task.Load(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	if _, ok := store.Get(title); !ok {
		fmt.Printf("No active task titled %q\n", title)
		return nil
	}

	store.Delete(title)
	if err := store.Save(cfg.TasksFile); err != nil {
		return fmt.Errorf("saving tasks file: %w", err)
	}
	if err := logEvent(cfg, "delete", map[string]any{"title": title}); err != nil {
		return err
	}

	fmt.Printf("Deleted %q\n", title)
	return nil
}

// searchCommand lists active tasks whose title contains a substring.
func searchCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo search", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := strings.Join(fs.Args(), " ")
	if query == "" {
		return fmt.Errorf("search: query must not be empty")
	}

	store, err := task.Load(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	printTaskList(store.Search(query))
	return nil
}

// categoriesCommand lists every known category.
func categoriesCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo categories", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	store, err := task.Load(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	categories := store.Categories()
	if len(categories) == 0 {
		fmt.Println("No categories yet.")
		return nil
	}
	fmt.Println("Available categories:")
	for _, c := range categories {
		fmt.Printf(" - %s\n", c)
	}
	return nil
}

// logEvent appends one mutation record when event logging is enabled.
func logEvent(cfg *config.Config, op string, fields map[string]any) error {
	events, err := openEvents(cfg)
	if err != nil {
		return err
	}
	if events == nil {
		return nil
	}
	defer events.Close()
	return events.Event(op, fields)
}

func printTaskList(tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	for _, t := range tasks {
		marker := "[ ]"
		if t.Completed {
			marker = "[X]"
		}
		line := fmt.Sprintf("%s %-20s | Due: %-12s", marker, t.Title, t.Deadline)
		if t.Category != "" {
			line += " | Category: " + t.Category
		}
		fmt.Println(line)
	}
}
