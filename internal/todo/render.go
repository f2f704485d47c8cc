package todo

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	SymbolCompleted   = "✅"
	SymbolPending     = "⏳"
	OverdueAnnotation = "⚠️ Overdue"

	// EmptyMessage is printed instead of a listing when there are no tasks.
	EmptyMessage = "No tasks found."
)

// RenderOptions controls task listing output.
type RenderOptions struct {
	// FlagCompletedOverdue annotates completed tasks whose due date has
	// passed. When false, only pending tasks get the overdue annotation.
	FlagCompletedOverdue bool
}

// DefaultRenderOptions returns the listing defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{FlagCompletedOverdue: true}
}

// FormatTask renders one listing line: "- <title> [<status>] <overdue>".
// Trailing whitespace is trimmed when there is no annotation.
func FormatTask(t *Task, now time.Time, opts RenderOptions) string {
	status := SymbolPending
	if t.completed {
		status = SymbolCompleted
	}
	overdue := ""
	if t.IsOverdueAt(now) && (opts.FlagCompletedOverdue || !t.completed) {
		overdue = OverdueAnnotation
	}
	return strings.TrimRight(fmt.Sprintf("- %s [%s] %s", t.title, status, overdue), " ")
}

// ViewTasks writes every task, one per line, under a "Tasks:" heading.
func (m *Manager) ViewTasks(w io.Writer, opts RenderOptions) error {
	return m.WriteTasks(w, "Tasks:", m.tasks, opts)
}

// WriteTasks writes the given tasks under heading, or EmptyMessage when
// there are none. Overdue checks use the manager clock.
func (m *Manager) WriteTasks(w io.Writer, heading string, tasks []*Task, opts RenderOptions) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", heading); err != nil {
		return err
	}
	now := m.clock()
	for _, t := range tasks {
		if _, err := fmt.Fprintln(w, FormatTask(t, now, opts)); err != nil {
			return err
		}
	}
	return nil
}
