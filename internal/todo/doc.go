// Package todo holds the in-memory task list.
//
// A Manager owns an ordered list of tasks. Tasks are only created through
// Manager.AddTask and are never removed, so insertion order is stable for the
// lifetime of the manager. Titles are not unique; every task carries a
// generated ID for callers that need to address one task precisely.
//
// # Task States
//
//   - pending: the zero state of every new task
//   - completed: set by Task.MarkComplete or Manager.CompleteTask
//
// Completion is one-way. There is no operation that returns a task to
// pending.
//
// # Overdue
//
// A task is overdue when it has a due date and the current time is after it.
// The predicate ignores completion, so Manager.OverdueTasks additionally
// filters out completed tasks. Listing output flags completed tasks as
// overdue unless RenderOptions.FlagCompletedOverdue is false.
//
// # Time
//
// Current time comes from a Clock. Managers default to time.Now; tests
// inject a fixed clock with WithClock.
//
// # Concurrency
//
// A Manager is not safe for concurrent use. The CLI creates one manager per
// session and passes it explicitly to the components that need it.
package todo
