// Package menu implements the numbered text menu for managing tasks
// interactively over any reader and writer.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskman/internal/logging"
	"github.com/nibzard/taskman/internal/todo"
	"github.com/nibzard/taskman/internal/utils"
)

const (
	// scanBufferSize is the initial input buffer size.
	scanBufferSize = 64 * 1024
	// maxLineSize is the longest input line the menu accepts.
	maxLineSize = 1024 * 1024
)

// ErrInvalidChoice is returned by ParseChoice for input outside the menu.
var ErrInvalidChoice = errors.New("invalid choice")

// Choice is a menu entry.
type Choice int

const (
	ChoiceView Choice = iota + 1
	ChoiceAdd
	ChoiceComplete
	ChoicePending
	ChoiceOverdue
	ChoiceExit
)

var choiceLabels = map[Choice]string{
	ChoiceView:     "View Tasks",
	ChoiceAdd:      "Add Task",
	ChoiceComplete: "Complete Task",
	ChoicePending:  "Pending Tasks",
	ChoiceOverdue:  "Overdue Tasks",
	ChoiceExit:     "Exit",
}

func (c Choice) String() string {
	if label, ok := choiceLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("Choice(%d)", int(c))
}

// ParseChoice parses a menu selection such as "3".
func ParseChoice(s string) (Choice, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 || s[0] < '1' || s[0] > '6' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
	return Choice(s[0] - '0'), nil
}

// Menu drives a task manager from line-oriented input.
type Menu struct {
	mgr    *todo.Manager
	in     io.Reader
	out    io.Writer
	logger *log.Logger

	dateLayout string
	location   *time.Location
	render     todo.RenderOptions

	storageURL string
	logPath    string

	lines <-chan string
	errc  <-chan error
}

// Option configures a Menu.
type Option func(*Menu)

// WithLogger sets the logger for menu events.
func WithLogger(logger *log.Logger) Option {
	return func(m *Menu) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDateLayout sets the layout used to parse due dates.
func WithDateLayout(layout string) Option {
	return func(m *Menu) {
		if layout != "" {
			m.dateLayout = layout
		}
	}
}

// WithLocation sets the time zone for parsed due dates. Defaults to Local.
func WithLocation(loc *time.Location) Option {
	return func(m *Menu) {
		m.location = loc
	}
}

// WithRenderOptions sets the task listing options.
func WithRenderOptions(opts todo.RenderOptions) Option {
	return func(m *Menu) {
		m.render = opts
	}
}

// WithStartupInfo sets the storage URL and log path printed at startup.
func WithStartupInfo(storageURL, logPath string) Option {
	return func(m *Menu) {
		m.storageURL = storageURL
		m.logPath = logPath
	}
}

// New creates a menu over mgr reading from in and writing to out.
func New(mgr *todo.Manager, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		mgr:        mgr,
		in:         in,
		out:        out,
		logger:     logging.Discard(),
		dateLayout: utils.DefaultDateLayout,
		render:     todo.DefaultRenderOptions(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run prints the startup banner and loops over menu choices until the user
// exits, input ends, or ctx is cancelled. End of input is a clean exit.
func (m *Menu) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.startReader(ctx)

	m.printf("Loading configurations...\n")
	m.printf("Task Storage URL: %s\n", m.storageURL)
	m.printf("Log File Path: %s\n", m.logPath)
	m.printf("Initializing task storage...\n")
	m.logger.Debug("menu started", "storage_url", m.storageURL)

	for {
		m.displayMenu()
		line, err := m.prompt(ctx, "Enter your choice: ")
		if err != nil {
			return m.finish(err)
		}

		choice, err := ParseChoice(line)
		if err != nil {
			m.logger.Debug("invalid menu choice", "input", line)
			m.printf("Invalid choice. Please try again.\n")
			continue
		}
		m.logger.Debug("menu choice", "choice", choice)

		if choice == ChoiceExit {
			m.printf("Exiting application.\n")
			return nil
		}
		if err := m.handle(ctx, choice); err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) handle(ctx context.Context, choice Choice) error {
	switch choice {
	case ChoiceView:
		return m.mgr.ViewTasks(m.out, m.render)
	case ChoiceAdd:
		return m.addTask(ctx)
	case ChoiceComplete:
		return m.completeTask(ctx)
	case ChoicePending:
		return m.mgr.WriteTasks(m.out, "Pending Tasks:", m.mgr.PendingTasks(), m.render)
	case ChoiceOverdue:
		return m.mgr.WriteTasks(m.out, "Overdue Tasks:", m.mgr.OverdueTasks(), m.render)
	}
	return nil
}

func (m *Menu) addTask(ctx context.Context) error {
	title, err := m.prompt(ctx, "Enter task title: ")
	if err != nil {
		return err
	}
	rawDue, err := m.prompt(ctx, fmt.Sprintf("Enter due date (%s, blank for none): ", m.dateLayout))
	if err != nil {
		return err
	}

	var due *time.Time
	if strings.TrimSpace(rawDue) != "" {
		parsed, err := utils.ParseDate(rawDue, m.dateLayout, m.location)
		if err != nil {
			m.logger.Warn("invalid due date", "input", rawDue, "err", err)
			m.printf("Invalid due date %q. Expected format %s.\n", strings.TrimSpace(rawDue), m.dateLayout)
			return nil
		}
		due = &parsed
	}

	task := m.mgr.AddTask(title, due)
	m.logger.Info("task added", "id", task.ID(), "title", task.Title(), "due", dueField(task))
	m.printf("Task %q added.\n", task.Title())
	return nil
}

func (m *Menu) completeTask(ctx context.Context) error {
	title, err := m.prompt(ctx, "Enter task title to complete: ")
	if err != nil {
		return err
	}
	if m.mgr.CompleteTask(title) {
		m.logger.Info("task completed", "title", title)
		m.printf("Task %q marked as complete.\n", title)
		return nil
	}
	m.logger.Warn("complete miss", "title", title)
	m.printf("Task %q not found or already completed.\n", title)
	return nil
}

func (m *Menu) displayMenu() {
	m.printf("\nWelcome to the Task Manager\n")
	for c := ChoiceView; c <= ChoiceExit; c++ {
		m.printf("%d. %s\n", int(c), c)
	}
}

// prompt writes label and waits for the next input line.
func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	m.printf("%s", label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			if err := <-m.errc; err != nil {
				return "", fmt.Errorf("read input: %w", err)
			}
			return "", io.EOF
		}
		return strings.TrimRight(line, "\r"), nil
	}
}

// startReader scans input on its own goroutine so a blocked read does not
// hold up cancellation.
func (m *Menu) startReader(ctx context.Context) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(m.in)
		scanner.Buffer(make([]byte, 0, scanBufferSize), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	m.lines = lines
	m.errc = errc
}

// finish maps end of input to a clean exit.
func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) {
		m.printf("\nExiting application.\n")
		m.logger.Debug("input closed")
		return nil
	}
	return err
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func dueField(t *todo.Task) string {
	due, ok := t.DueDate()
	if !ok {
		return "none"
	}
	return due.Format(time.RFC3339)
}
