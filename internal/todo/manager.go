package todo

import (
	"fmt"
	"time"
)

// Manager is an ordered, append-only list of tasks.
type Manager struct {
	tasks []*Task
	clock Clock
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the clock used for creation timestamps and overdue checks.
func WithClock(clock Clock) Option {
	return func(m *Manager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{clock: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddTask appends a new pending task and returns it.
func (m *Manager) AddTask(title string, dueDate *time.Time) *Task {
	task := newTask(title, dueDate, m.clock)
	m.tasks = append(m.tasks, task)
	return task
}

// Now returns the current time according to the manager clock.
func (m *Manager) Now() time.Time {
	return m.clock()
}

// Len returns the number of managed tasks.
func (m *Manager) Len() int {
	return len(m.tasks)
}

// Tasks returns all tasks in insertion order.
func (m *Manager) Tasks() []*Task {
	out := make([]*Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// PendingTasks returns the tasks that are not completed, in insertion order.
func (m *Manager) PendingTasks() []*Task {
	return m.filter(func(t *Task) bool {
		return !t.completed
	})
}

// CompletedTasks returns the completed tasks, in insertion order.
func (m *Manager) CompletedTasks() []*Task {
	return m.filter(func(t *Task) bool {
		return t.completed
	})
}

// OverdueTasks returns the pending tasks whose due date has passed,
// in insertion order.
func (m *Manager) OverdueTasks() []*Task {
	now := m.clock()
	return m.filter(func(t *Task) bool {
		return !t.completed && t.IsOverdueAt(now)
	})
}

// CompleteTask marks the first pending task with the given title as
// complete. It returns false when no pending task has that title.
func (m *Manager) CompleteTask(title string) bool {
	for _, t := range m.tasks {
		if t.title == title && !t.completed {
			t.MarkComplete()
			return true
		}
	}
	return false
}

// Counts returns the number of tasks per status.
func (m *Manager) Counts() map[Status]int {
	counts := map[Status]int{
		StatusPending:   0,
		StatusCompleted: 0,
	}
	for _, t := range m.tasks {
		counts[t.Status()]++
	}
	return counts
}

func (m *Manager) String() string {
	return fmt.Sprintf("Manager(%d tasks)", len(m.tasks))
}

func (m *Manager) filter(keep func(*Task) bool) []*Task {
	out := make([]*Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
