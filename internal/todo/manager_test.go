package todo

import (
	"fmt"
	"slices"
	"testing"
	"time"
)

func titles(tasks []*Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title())
	}
	return out
}

func TestAddTask(t *testing.T) {
	clock := newFakeClock()
	m := NewManager(WithClock(clock.Now))

	task := m.AddTask("Buy milk", nil)
	if task == nil {
		t.Fatal("AddTask returned nil")
	}
	if m.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", m.Len())
	}
	if m.Tasks()[0] != task {
		t.Error("returned task should be the managed task")
	}
	if !task.CreatedAt().Equal(clock.now) {
		t.Errorf("CreatedAt: got %v, want %v", task.CreatedAt(), clock.now)
	}
}

func TestAddTaskPreservesOrderAndDuplicates(t *testing.T) {
	m := NewManager()
	for _, title := range []string{"b", "a", "b", "c"} {
		m.AddTask(title, nil)
	}
	want := []string{"b", "a", "b", "c"}
	if got := titles(m.Tasks()); !slices.Equal(got, want) {
		t.Errorf("Tasks: got %v, want %v", got, want)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	m := NewManager()
	m.AddTask("one", nil)
	tasks := m.Tasks()
	tasks[0] = nil
	if m.Tasks()[0] == nil {
		t.Error("mutating the returned slice must not affect the manager")
	}
}

func TestPendingTasks(t *testing.T) {
	m := NewManager()
	for i := 0; i < 6; i++ {
		m.AddTask(fmt.Sprintf("T%d", i), nil)
	}
	m.CompleteTask("T1")
	m.CompleteTask("T4")

	pending := m.PendingTasks()
	want := []string{"T0", "T2", "T3", "T5"}
	if got := titles(pending); !slices.Equal(got, want) {
		t.Errorf("PendingTasks: got %v, want %v", got, want)
	}
	for _, task := range pending {
		if task.Completed() {
			t.Errorf("pending list contains completed task %s", task.Title())
		}
	}
	if len(pending)+len(m.CompletedTasks()) != m.Len() {
		t.Errorf("pending (%d) + completed (%d) != total (%d)",
			len(pending), len(m.CompletedTasks()), m.Len())
	}
}

func TestPendingPlusCompletedEqualsTotal(t *testing.T) {
	tests := []struct {
		name     string
		adds     []string
		complete []string
	}{
		{"empty", nil, nil},
		{"none completed", []string{"a", "b"}, nil},
		{"all completed", []string{"a", "b"}, []string{"a", "b"}},
		{"duplicates", []string{"x", "x", "y"}, []string{"x"}},
		{"unknown titles", []string{"a"}, []string{"z", "q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			for _, title := range tt.adds {
				m.AddTask(title, nil)
			}
			for _, title := range tt.complete {
				m.CompleteTask(title)
			}
			if got := len(m.PendingTasks()) + len(m.CompletedTasks()); got != len(tt.adds) {
				t.Errorf("pending+completed = %d, want %d", got, len(tt.adds))
			}
			counts := m.Counts()
			if counts[StatusPending] != len(m.PendingTasks()) {
				t.Errorf("Counts pending = %d, want %d", counts[StatusPending], len(m.PendingTasks()))
			}
		})
	}
}

func TestCompleteTaskOnEmptyManager(t *testing.T) {
	m := NewManager()
	if m.CompleteTask("anything") {
		t.Error("CompleteTask on empty manager should return false")
	}
}

func TestCompleteTaskFirstInsertedWins(t *testing.T) {
	m := NewManager()
	t1 := m.AddTask("X", nil)
	t2 := m.AddTask("X", nil)

	if !m.CompleteTask("X") {
		t.Fatal("first CompleteTask should succeed")
	}
	if !t1.Completed() || t2.Completed() {
		t.Fatalf("after first call: t1=%v t2=%v, want true false", t1.Completed(), t2.Completed())
	}

	if !m.CompleteTask("X") {
		t.Fatal("second CompleteTask should succeed")
	}
	if !t2.Completed() {
		t.Fatal("second call should complete t2")
	}

	if m.CompleteTask("X") {
		t.Error("third CompleteTask should return false")
	}
}

func TestCompleteTaskUnknownTitle(t *testing.T) {
	m := NewManager()
	m.AddTask("known", nil)
	if m.CompleteTask("unknown") {
		t.Error("CompleteTask with unknown title should return false")
	}
	if m.CompleteTask("Known") {
		t.Error("title matching is exact")
	}
	if len(m.PendingTasks()) != 1 {
		t.Error("no task should have been completed")
	}
}

func TestOverdueTasks(t *testing.T) {
	clock := newFakeClock()
	m := NewManager(WithClock(clock.Now))
	yesterday := clock.now.Add(-24 * time.Hour)
	tomorrow := clock.now.Add(24 * time.Hour)

	m.AddTask("late", &yesterday)
	m.AddTask("later", &tomorrow)
	m.AddTask("never", nil)
	m.AddTask("late and done", &yesterday)
	m.AddTask("late too", &yesterday)
	m.CompleteTask("late and done")

	want := []string{"late", "late too"}
	if got := titles(m.OverdueTasks()); !slices.Equal(got, want) {
		t.Errorf("OverdueTasks: got %v, want %v", got, want)
	}

	clock.Advance(48 * time.Hour)
	want = []string{"late", "later", "late too"}
	if got := titles(m.OverdueTasks()); !slices.Equal(got, want) {
		t.Errorf("OverdueTasks after advance: got %v, want %v", got, want)
	}
}

func TestScenarioBuyMilk(t *testing.T) {
	m := NewManager()
	task := m.AddTask("Buy milk", nil)
	if _, ok := task.DueDate(); ok {
		t.Fatal("expected no due date")
	}
	if n := len(m.PendingTasks()); n != 1 {
		t.Fatalf("pending: got %d, want 1", n)
	}
	if !m.CompleteTask("Buy milk") {
		t.Fatal("CompleteTask(Buy milk) should return true")
	}
	if n := len(m.PendingTasks()); n != 0 {
		t.Errorf("pending: got %d, want 0", n)
	}
}

func TestScenarioPayRent(t *testing.T) {
	clock := newFakeClock()
	m := NewManager(WithClock(clock.Now))
	yesterday := clock.now.AddDate(0, 0, -1)
	task := m.AddTask("Pay rent", &yesterday)

	overdue := m.OverdueTasks()
	if len(overdue) != 1 || overdue[0] != task {
		t.Fatalf("OverdueTasks: got %v, want [%v]", overdue, task)
	}
	if !m.CompleteTask("Pay rent") {
		t.Fatal("CompleteTask(Pay rent) should return true")
	}
	if n := len(m.OverdueTasks()); n != 0 {
		t.Errorf("overdue after completion: got %d, want 0", n)
	}
}

func TestManagerString(t *testing.T) {
	m := NewManager()
	if got := m.String(); got != "Manager(0 tasks)" {
		t.Errorf("String() = %q", got)
	}
	m.AddTask("a", nil)
	m.AddTask("b", nil)
	if got := m.String(); got != "Manager(2 tasks)" {
		t.Errorf("String() = %q", got)
	}
}

func TestWithNilClockKeepsDefault(t *testing.T) {
	m := NewManager(WithClock(nil))
	task := m.AddTask("a", nil)
	if task.CreatedAt().IsZero() {
		t.Error("expected wall clock timestamp")
	}
}

// BenchmarkOverdueTasks benchmarks overdue filtering over a large list.
func BenchmarkOverdueTasks(b *testing.B) {
	clock := newFakeClock()
	m := NewManager(WithClock(clock.Now))
	past := clock.now.Add(-time.Hour)
	for i := 0; i < 1000; i++ {
		if i%2 == 0 {
			m.AddTask(fmt.Sprintf("Task %d", i), &past)
		} else {
			m.AddTask(fmt.Sprintf("Task %d", i), nil)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.OverdueTasks()
	}
}

func TestManagerNowUsesClock(t *testing.T) {
	clock := newFakeClock()
	m := NewManager(WithClock(clock.Now))
	if !m.Now().Equal(clock.now) {
		t.Errorf("Now: got %v, want %v", m.Now(), clock.now)
	}
	clock.Advance(time.Hour)
	if !m.Now().Equal(clock.now) {
		t.Errorf("Now after advance: got %v, want %v", m.Now(), clock.now)
	}
}
