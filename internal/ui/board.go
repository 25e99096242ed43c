package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdesk.com/taskdesk/internal/constants"
	"taskdesk.com/taskdesk/internal/services"
	model "taskdesk.com/taskdesk/pkg/models"
)

type boardMode int

const (
	modeBrowse boardMode = iota
	modeSearch
	modeConfirmDelete
)

// actionDoneMsg arrives when a service call started by the board returns.
type actionDoneMsg struct {
	err error
}

// Board is the interactive task list. Every action goes through the
// TaskService; the board only tracks the cursor and the input mode.
type Board struct {
	ctx    context.Context
	tasks  *services.TaskService
	status *StatusLine
	now    func() time.Time

	cursor  int
	mode    boardMode
	query   string
	pending model.ID
	working bool
	lastErr error
}

func NewBoard(ctx context.Context, tasks *services.TaskService, status *StatusLine) *Board {
	return &Board{
		ctx:    ctx,
		tasks:  tasks,
		status: status,
		now:    time.Now,
	}
}

// RunBoard runs the board full screen until the user quits.
func RunBoard(ctx context.Context, board *Board) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("board requires a TTY")
	}

	program := tea.NewProgram(board, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (b *Board) Init() tea.Cmd {
	return b.run(func(ctx context.Context) error {
		if err := b.tasks.Load(ctx); err != nil {
			return err
		}
		_ = b.tasks.LoadCategories(ctx)
		return nil
	})
}

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		b.working = false
		b.lastErr = msg.err
		b.clampCursor()
		return b, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return b, tea.Quit
		}
		switch b.mode {
		case modeSearch:
			return b.updateSearch(msg)
		case modeConfirmDelete:
			return b.updateConfirm(msg)
		default:
			return b.updateBrowse(msg)
		}
	}
	return b, nil
}

func (b *Board) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if b.working && !navigationKeys[key] {
		return b, nil
	}

	switch key {
	case "q":
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.tasks.Tasks())-1 {
			b.cursor++
		}
	case "c":
		task, ok := b.selected()
		if !ok || task.IsCompleted() || b.tasks.Busy(task.ID) {
			return b, nil
		}
		return b, b.run(func(ctx context.Context) error {
			return b.tasks.MarkComplete(ctx, task.ID)
		})
	case "d":
		if task, ok := b.selected(); ok && !b.tasks.Busy(task.ID) {
			b.pending = task.ID
			b.mode = modeConfirmDelete
		}
	case "/":
		b.query = b.tasks.Criteria().Query
		b.mode = modeSearch
	case "s":
		b.tasks.Criteria().Status = nextStatus(b.tasks.Criteria().Status)
		return b, b.search()
	case "p":
		b.tasks.Criteria().Priority = nextPriority(b.tasks.Criteria().Priority)
		return b, b.search()
	case "r":
		// Criteria is only touched on the event loop; the command just reloads.
		b.cursor = 0
		b.tasks.Criteria().Reset()
		return b, b.run(b.tasks.Load)
	}
	return b, nil
}

// navigationKeys stay live while an action is running.
var navigationKeys = map[string]bool{"q": true, "up": true, "down": true, "j": true, "k": true}

func (b *Board) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		b.mode = modeBrowse
		b.tasks.Criteria().Query = b.query
		return b, b.search()
	case tea.KeyEsc:
		b.mode = modeBrowse
	case tea.KeyBackspace:
		if r := []rune(b.query); len(r) > 0 {
			b.query = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		b.query += string(msg.Runes)
	}
	return b, nil
}

func (b *Board) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := b.pending
	b.pending = ""
	b.mode = modeBrowse

	if msg.String() != "y" {
		return b, nil
	}
	return b, b.run(func(ctx context.Context) error {
		return b.tasks.Delete(ctx, id, func(string) bool { return true })
	})
}

func (b *Board) search() tea.Cmd {
	b.cursor = 0
	return b.run(b.tasks.Search)
}

func (b *Board) run(action func(ctx context.Context) error) tea.Cmd {
	b.working = true
	return func() tea.Msg {
		return actionDoneMsg{err: action(b.ctx)}
	}
}

func (b *Board) selected() (model.Task, bool) {
	tasks := b.tasks.Tasks()
	if b.cursor < 0 || b.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[b.cursor], true
}

func (b *Board) clampCursor() {
	n := len(b.tasks.Tasks())
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

func (b *Board) View() string {
	var s strings.Builder
	now := b.now()

	s.WriteString(titleStyle.Render("Tasks") + "\n")
	s.WriteString(b.filterLine() + "\n\n")

	tasks := b.tasks.Tasks()
	if len(tasks) == 0 {
		s.WriteString(mutedStyle.Render("No tasks found.") + "\n")
	}
	for i, t := range tasks {
		line := TaskLine(t, now)
		if i == b.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		s.WriteString(line + "\n")
	}
	s.WriteString("\n")

	switch b.mode {
	case modeSearch:
		s.WriteString("Search: " + b.query + "█\n")
	case modeConfirmDelete:
		s.WriteString(errorStyle.Render(services.DeletePrompt+" (y/n)") + "\n")
	default:
		if b.working {
			s.WriteString(mutedStyle.Render("Working...") + "\n")
		} else if line := b.status.View(); line != "" {
			s.WriteString(line + "\n")
		}
	}

	s.WriteString(mutedStyle.Render("j/k move  c complete  d delete  / search  s status  p priority  r reset  q quit"))
	return s.String()
}

func (b *Board) filterLine() string {
	c := b.tasks.Criteria()
	if c.IsZero() {
		return mutedStyle.Render("No filters")
	}

	var parts []string
	if q := strings.TrimSpace(c.Query); q != "" {
		parts = append(parts, fmt.Sprintf("query=%q", q))
	}
	if c.Status != "" {
		parts = append(parts, "status="+string(c.Status))
	}
	if c.Priority != "" {
		parts = append(parts, "priority="+string(c.Priority))
	}
	if c.Category != "" {
		parts = append(parts, "category="+c.Category)
	}
	return "Filters: " + strings.Join(parts, " ")
}

// Err returns the error of the last finished action, if any.
func (b *Board) Err() error {
	if errors.Is(b.lastErr, services.ErrCancelled) {
		return nil
	}
	return b.lastErr
}

// nextStatus cycles through no filter and each status in order.
func nextStatus(s constants.TaskStatus) constants.TaskStatus {
	all := constants.Statuses()
	for i, v := range all {
		if v == s {
			if i == len(all)-1 {
				return ""
			}
			return all[i+1]
		}
	}
	return all[0]
}

func nextPriority(p constants.TaskPriority) constants.TaskPriority {
	all := constants.Priorities()
	for i, v := range all {
		if v == p {
			if i == len(all)-1 {
				return ""
			}
			return all[i+1]
		}
	}
	return all[0]
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
