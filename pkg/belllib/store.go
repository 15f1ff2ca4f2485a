package belllib

import (
	"strings"
	"sync"

	"github.com/adhocore/gronx"
)

// Store holds the ordered task list. Insertion order is meaningful: it is
// the display order and the basis for Reorder semantics.
//
// Store methods are individually thread-safe. Callers that need a mutation
// and its follow-up work (persist, rearm timers) to be one critical section
// should serialize through Manager, which owns the outer lock.
type Store struct {
	mu    sync.RWMutex
	tasks []*Task
}

// NewStore creates an empty task store.
func NewStore() *Store {
	return &Store{}
}

func validateCron(expr string) error {
	if expr == "" {
		return nil
	}
	// Enforce exactly 5 fields — gronx.IsValid also accepts 6-field (with seconds).
	if len(strings.Fields(expr)) != 5 {
		return ErrInvalidCron
	}
	if !gronx.IsValid(expr) {
		return ErrInvalidCron
	}
	return nil
}

// Create validates and appends a new task to the end of the list.
// An empty title is rejected with ErrEmptyTitle; a non-positive interval is
// coerced to DefaultIntervalMinutes.
func (s *Store) Create(title, description string, intervalMinutes int, opts *TaskOpts) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	if opts != nil {
		if err := validateCron(opts.Cron); err != nil {
			return Task{}, err
		}
	}
	t := newTask(title, description, intervalMinutes, opts)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
	return *t, nil
}

// Update replaces the task with the given id in place, preserving its
// position. Title validation and interval coercion match Create.
func (s *Store) Update(id, title, description string, intervalMinutes int, opts *TaskOpts) (Task, error) {
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrEmptyTitle
	}
	if opts == nil {
		opts = &TaskOpts{}
	}
	if err := validateCron(opts.Cron); err != nil {
		return Task{}, err
	}
	if intervalMinutes < 1 {
		intervalMinutes = DefaultIntervalMinutes
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, ErrTaskNotFound
	}
	t := s.tasks[i]
	t.Title = title
	t.Description = description
	t.IntervalMinutes = intervalMinutes
	t.Cron = opts.Cron
	return *t, nil
}

// Delete removes the task with the given id. The relative order of the
// remaining tasks is unchanged.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Reorder removes the task with movedId from its position and reinserts
// it at the slot targetId occupied before the removal. This mirrors a
// list-splice drag-and-drop: the insertion index is captured first, then
// the moved item is taken out and spliced back in at that index, so a
// forward move lands just past the target and a backward move lands just
// before it. Returns false (no-op) when either id is missing or the ids
// are equal.
func (s *Store) Reorder(movedId, targetId string) bool {
	if movedId == targetId {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.indexOf(movedId)
	to := s.indexOf(targetId)
	if from < 0 || to < 0 {
		return false
	}
	moved := s.tasks[from]
	s.tasks = append(s.tasks[:from], s.tasks[from+1:]...)
	s.tasks = append(s.tasks, nil)
	copy(s.tasks[to+1:], s.tasks[to:])
	s.tasks[to] = moved
	return true
}

// Flush removes every task from the store.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = nil
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return *s.tasks[i], true
}

// Tasks returns a snapshot of all tasks in display order.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = *t
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// replaceAll swaps in a loaded task list. Used by Manager at startup.
func (s *Store) replaceAll(tasks []Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make([]*Task, len(tasks))
	for i := range tasks {
		t := tasks[i]
		s.tasks[i] = &t
	}
}

// indexOf returns the position of the task with the given id, or -1.
// Caller must hold the lock.
func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
