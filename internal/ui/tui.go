// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vennunen/To-Do-list-app/internal/config"
	"github.com/vennunen/To-Do-list-app/internal/logging"
	"github.com/vennunen/To-Do-list-app/internal/task"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Italic(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// mode is the current input mode of the TUI.
type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeSearch
)

// RunTUI starts the interactive interface over the tasks file. Every
// mutation is saved back immediately and, when events is non-nil,
// appended to the event log.
func RunTUI(ctx context.Context, cfg *config.Config, events *logging.EventLog) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	store, err := task.Load(cfg.TasksFile)
	if err != nil {
		return fmt.Errorf("loading tasks file: %w", err)
	}

	model := newTUIModel(cfg, store, events)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

type tuiModel struct {
	cfg    *config.Config
	store  *task.Store
	events *logging.EventLog

	mode           mode
	cursor         int
	sortByDeadline bool
	categoryIdx    int // index into store.Categories(); -1 means no filter
	showCompleted  bool
	query          string

	addInputs   []textinput.Model
	addFocus    int
	searchInput textinput.Model

	status string
}

func newTUIModel(cfg *config.Config, store *task.Store, events *logging.EventLog) *tuiModel {
	inputs := make([]textinput.Model, 3)
	for i, placeholder := range []string{"Title", "Due (DD.MM.YYYY)", "Category (optional)"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 120
		inputs[i] = in
	}

	search := textinput.New()
	search.Placeholder = "title substring"
	search.CharLimit = 120

	return &tuiModel{
		cfg:            cfg,
		store:          store,
		events:         events,
		sortByDeadline: cfg.DefaultSort == config.SortDeadline,
		categoryIdx:    -1,
		addInputs:      inputs,
		searchInput:    search,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(keyMsg)
	case modeSearch:
		return m.updateSearch(keyMsg)
	default:
		return m.updateBrowse(keyMsg)
	}
}

func (m *tuiModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case "a":
		m.mode = modeAdd
		m.addFocus = 0
		for i := range m.addInputs {
			m.addInputs[i].SetValue("")
			m.addInputs[i].Blur()
		}
		m.addInputs[0].Focus()
		m.status = ""
	case "/":
		m.mode = modeSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
		m.status = ""
	case "d":
		m.completeSelected()
	case "x":
		m.deleteSelected()
	case "s":
		m.sortByDeadline = !m.sortByDeadline
		m.cursor = 0
	case "c":
		m.cycleCategory()
	case "v":
		m.showCompleted = !m.showCompleted
		m.cursor = 0
	case "esc":
		m.query = ""
		m.categoryIdx = -1
		m.cursor = 0
		m.status = ""
	}
	return m, nil
}

func (m *tuiModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "enter":
		if m.addFocus < len(m.addInputs)-1 {
			m.addInputs[m.addFocus].Blur()
			m.addFocus++
			m.addInputs[m.addFocus].Focus()
			return m, nil
		}
		m.submitAdd()
		return m, nil
	case "tab", "down":
		m.addInputs[m.addFocus].Blur()
		m.addFocus = (m.addFocus + 1) % len(m.addInputs)
		m.addInputs[m.addFocus].Focus()
		return m, nil
	case "shift+tab", "up":
		m.addInputs[m.addFocus].Blur()
		m.addFocus = (m.addFocus + len(m.addInputs) - 1) % len(m.addInputs)
		m.addInputs[m.addFocus].Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.addInputs[m.addFocus], cmd = m.addInputs[m.addFocus].Update(msg)
	return m, cmd
}

func (m *tuiModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.query = ""
		m.cursor = 0
		return m, nil
	case "enter":
		m.mode = modeBrowse
		m.query = m.searchInput.Value()
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	return m, cmd
}

func (m *tuiModel) submitAdd() {
	title := strings.TrimSpace(m.addInputs[0].Value())
	deadline := strings.TrimSpace(m.addInputs[1].Value())
	category := strings.TrimSpace(m.addInputs[2].Value())
	if title == "" {
		m.status = "title must not be empty"
		return
	}

	m.store.Add(title, deadline, category)
	m.persist("add", map[string]any{"title": title, "deadline": deadline, "category": category})
	m.mode = modeBrowse
	if m.status == "" {
		m.status = fmt.Sprintf("added %q", title)
	}
}

func (m *tuiModel) completeSelected() {
	t, ok := m.selected()
	if !ok || m.showCompleted {
		return
	}
	m.store.MarkCompleted(t.Title)
	m.persist("complete", map[string]any{"title": t.Title})
	if m.cursor > 0 {
		m.cursor--
	}
	if m.status == "" {
		m.status = fmt.Sprintf("completed %q", t.Title)
	}
}

func (m *tuiModel) deleteSelected() {
	t, ok := m.selected()
	if !ok || m.showCompleted {
		return
	}
	m.store.Delete(t.Title)
	m.persist("delete", map[string]any{"title": t.Title})
	if m.cursor > 0 {
		m.cursor--
	}
	if m.status == "" {
		m.status = fmt.Sprintf("deleted %q", t.Title)
	}
}

// persist saves the store and records the event. Save failures are
// shown in the status line; the in-memory store stays valid.
func (m *tuiModel) persist(op string, fields map[string]any) {
	m.status = ""
	if err := m.store.Save(m.cfg.TasksFile); err != nil {
		m.status = errorStyle.Render(fmt.Sprintf("save failed: %v", err))
		return
	}
	if m.events != nil {
		if err := m.events.Event(op, fields); err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("event log: %v", err))
		}
	}
}

func (m *tuiModel) cycleCategory() {
	categories := m.store.Categories()
	if len(categories) == 0 {
		m.status = "no categories yet"
		return
	}
	m.categoryIdx++
	if m.categoryIdx >= len(categories) {
		m.categoryIdx = -1
	}
	m.cursor = 0
}

// visible returns the task list currently on screen: completed history
// or the active list with sort, category filter, and search applied.
func (m *tuiModel) visible() []task.Task {
	if m.showCompleted {
		return m.store.Completed()
	}

	tasks, err := m.store.List(m.sortByDeadline)
	if err != nil {
		// A malformed deadline aborts the sort; fall back to
		// insertion order and say so.
		m.status = errorStyle.Render(err.Error())
		tasks, _ = m.store.List(false)
	}

	if m.categoryIdx >= 0 {
		categories := m.store.Categories()
		if m.categoryIdx < len(categories) {
			want := categories[m.categoryIdx]
			filtered := tasks[:0:0]
			for _, t := range tasks {
				if t.Category == want {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
	}

	if m.query != "" {
		filtered := tasks[:0:0]
		for _, t := range tasks {
			if strings.Contains(t.Title, m.query) {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	return tasks
}

func (m *tuiModel) selected() (task.Task, bool) {
	tasks := m.visible()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *tuiModel) View() string {
	var b strings.Builder

	header := "To-Do List"
	if m.showCompleted {
		header = "Completed Tasks"
	}
	b.WriteString(titleStyle.Render(header) + "\n\n")

	if m.mode == modeAdd {
		b.WriteString("New task\n\n")
		for i := range m.addInputs {
			b.WriteString("  " + m.addInputs[i].View() + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter next/confirm | tab switch field | esc cancel") + "\n")
		return b.String()
	}

	if m.mode == modeSearch {
		b.WriteString("Search: " + m.searchInput.View() + "\n\n")
	} else {
		writeFilters(&b, m)
	}

	tasks := m.visible()
	if len(tasks) == 0 {
		b.WriteString("  (no tasks)\n")
	}
	for i, t := range tasks {
		line := formatTask(&t)
		switch {
		case i == m.cursor && m.mode == modeBrowse:
			line = selectedStyle.Render(line)
		case t.Completed:
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}
	if m.mode == modeSearch {
		b.WriteString(helpStyle.Render("enter confirm | esc clear") + "\n")
	} else {
		b.WriteString(helpStyle.Render("a add | d done | x delete | s sort | c category | / search | v completed | q quit") + "\n")
	}
	return b.String()
}

func writeFilters(b *strings.Builder, m *tuiModel) {
	var parts []string
	if m.sortByDeadline {
		parts = append(parts, "sorted by deadline")
	}
	if m.categoryIdx >= 0 {
		categories := m.store.Categories()
		if m.categoryIdx < len(categories) {
			parts = append(parts, "category: "+categories[m.categoryIdx])
		}
	}
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.query))
	}
	if len(parts) > 0 {
		b.WriteString(helpStyle.Render(strings.Join(parts, " | ")+" (esc to clear)") + "\n\n")
	}
}

func formatTask(t *task.Task) string {
	marker := "[ ]"
	if t.Completed {
		marker = "[X]"
	}
	line := fmt.Sprintf("  %s %-20s | Due: %-12s", marker, t.Title, t.Deadline)
	if t.Category != "" {
		line += " | " + t.Category
	}
	return line
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
