// Package ui provides the optional terminal board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskman/internal/logging"
	"github.com/nibzard/taskman/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	render todo.RenderOptions
	logger *log.Logger
	output *os.File
}

// WithRenderOptions sets the task line options.
func WithRenderOptions(opts todo.RenderOptions) TUIOption {
	return func(c *tuiConfig) {
		c.render = opts
	}
}

// WithLogger sets the logger for board events.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// RunTUI starts the board over mgr. It fails when stdout is not a terminal.
func RunTUI(ctx context.Context, mgr *todo.Manager, opts ...TUIOption) error {
	c := &tuiConfig{
		render: todo.DefaultRenderOptions(),
		logger: logging.Discard(),
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.output) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(mgr, c)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

type filterMode int

const (
	filterAll filterMode = iota
	filterPending
	filterOverdue
)

func (f filterMode) String() string {
	switch f {
	case filterPending:
		return "pending"
	case filterOverdue:
		return "overdue"
	default:
		return "all"
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type tuiModel struct {
	mgr          *todo.Manager
	render       todo.RenderOptions
	logger       *log.Logger
	filter       filterMode
	cursor       int
	showHelp     bool
	adding       bool
	input        string
	message      string
	now          time.Time
	tickInterval time.Duration
}

type tickMsg time.Time

func newTUIModel(mgr *todo.Manager, c *tuiConfig) *tuiModel {
	return &tuiModel{
		mgr:          mgr,
		render:       c.render,
		logger:       c.logger,
		now:          mgr.Now(),
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBoard(msg)
	case tickMsg:
		m.now = m.mgr.Now()
		m.clampCursor()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		m.completeSelected()
	case "a":
		m.adding = true
		m.input = ""
		m.message = ""
	case "0":
		m.setFilter(filterAll)
	case "1":
		m.setFilter(filterPending)
	case "2":
		m.setFilter(filterOverdue)
	}
	return m, nil
}

func (m *tuiModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.adding = false
		m.input = ""
	case tea.KeyEnter:
		m.addTask()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *tuiModel) addTask() {
	title := strings.TrimSpace(m.input)
	m.adding = false
	m.input = ""
	if title == "" {
		m.message = "Title is empty, nothing added."
		return
	}
	task := m.mgr.AddTask(title, nil)
	m.logger.Info("task added", "id", task.ID(), "title", task.Title(), "source", "tui")
	m.message = fmt.Sprintf("Added %q.", title)
}

func (m *tuiModel) completeSelected() {
	tasks := m.visible()
	if len(tasks) == 0 {
		return
	}
	task := tasks[m.cursor]
	if task.Completed() {
		m.message = fmt.Sprintf("%q is already completed.", task.Title())
		return
	}
	task.MarkComplete()
	m.logger.Info("task completed", "id", task.ID(), "title", task.Title(), "source", "tui")
	m.message = fmt.Sprintf("Completed %q.", task.Title())
	m.clampCursor()
}

func (m *tuiModel) setFilter(f filterMode) {
	m.filter = f
	m.cursor = 0
}

// visible returns the tasks shown under the current filter.
func (m *tuiModel) visible() []*todo.Task {
	switch m.filter {
	case filterPending:
		return m.mgr.PendingTasks()
	case filterOverdue:
		return m.mgr.OverdueTasks()
	default:
		return m.mgr.Tasks()
	}
}

func (m *tuiModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Manager") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	writeOverview(&b, m.mgr, m.now)
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks (%s)", m.filter)) + "\n\n")
	m.writeTasks(&b)

	if m.adding {
		b.WriteString(inputBoxStyle.Render("New task: "+m.input+"_") + "\n")
		b.WriteString(footerStyle.Render("enter to add | esc to cancel") + "\n")
		return b.String()
	}
	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message) + "\n\n")
	}
	writeFooter(&b)
	return b.String()
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	tasks := m.visible()
	if len(tasks) == 0 {
		b.WriteString("  " + todo.EmptyMessage + "\n\n")
		return
	}
	for i, t := range tasks {
		line := todo.FormatTask(t, m.now, m.render)
		switch {
		case t.Completed():
			line = doneStyle.Render(line)
		case t.IsOverdueAt(m.now):
			line = overdueStyle.Render(line)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		b.WriteString(prefix + line + "\n")
	}
	b.WriteString("\n")
}

func writeOverview(b *strings.Builder, mgr *todo.Manager, now time.Time) {
	counts := mgr.Counts()
	overdue := 0
	for _, t := range mgr.PendingTasks() {
		if t.IsOverdueAt(now) {
			overdue++
		}
	}
	b.WriteString(fmt.Sprintf("  Pending: %d  Completed: %d  Overdue: %d\n\n",
		counts[todo.StatusPending],
		counts[todo.StatusCompleted],
		overdue,
	))
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headerStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, ctrl+c         Quit\n")
	b.WriteString("  up/k, down/j      Move cursor\n")
	b.WriteString("  space, enter, x   Complete selected task\n")
	b.WriteString("  a                 Add a task\n")
	b.WriteString("  ?                 Toggle this help screen\n")
	b.WriteString("  0                 Show all tasks\n")
	b.WriteString("  1                 Show pending tasks\n")
	b.WriteString("  2                 Show overdue tasks\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(footerStyle.Render("Press ? for help | a to add | q to quit") + "\n")
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
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
