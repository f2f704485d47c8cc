package todo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time.
type Clock func() time.Time

// Status represents a task status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task represents a single to-do item.
type Task struct {
	id        string
	title     string
	completed bool
	createdAt time.Time
	dueDate   *time.Time
	clock     Clock
}

// newTask creates a pending task. A nil dueDate means the task has no
// deadline; a nil clock means the wall clock. Tasks are created only by
// Manager.AddTask.
func newTask(title string, dueDate *time.Time, clock Clock) *Task {
	if clock == nil {
		clock = time.Now
	}
	t := &Task{
		id:        uuid.NewString(),
		title:     title,
		createdAt: clock(),
		clock:     clock,
	}
	if dueDate != nil {
		due := *dueDate
		t.dueDate = &due
	}
	return t
}

// ID returns the generated task identifier.
func (t *Task) ID() string {
	return t.id
}

// Title returns the task title.
func (t *Task) Title() string {
	return t.title
}

// Completed reports whether the task has been marked complete.
func (t *Task) Completed() bool {
	return t.completed
}

// Status returns the task status derived from the completion flag.
func (t *Task) Status() Status {
	if t.completed {
		return StatusCompleted
	}
	return StatusPending
}

// CreatedAt returns the time the task was constructed.
func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

// DueDate returns the deadline and whether one is set.
func (t *Task) DueDate() (time.Time, bool) {
	if t.dueDate == nil {
		return time.Time{}, false
	}
	return *t.dueDate, true
}

// MarkComplete marks the task complete. Calling it again has no effect.
func (t *Task) MarkComplete() {
	t.completed = true
}

// IsOverdue reports whether the due date has passed, regardless of
// completion. It is evaluated against the task clock on every call.
func (t *Task) IsOverdue() bool {
	return t.IsOverdueAt(t.clock())
}

// IsOverdueAt reports whether the due date is before now.
func (t *Task) IsOverdueAt(now time.Time) bool {
	if t.dueDate == nil {
		return false
	}
	return now.After(*t.dueDate)
}

func (t *Task) String() string {
	return fmt.Sprintf("Task(title=%q, completed=%t)", t.title, t.completed)
}
