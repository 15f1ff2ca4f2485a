package belllib

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Reconciler is implemented by the alarm scheduler. After every successful
// mutation the Manager hands it a fresh snapshot of the task list so it can
// tear down and rearm its timers to match.
type Reconciler interface {
	Reconcile(tasks []Task) error
}

// Manager owns the task store, mirrors it to a BlobStore after every
// mutation, and triggers scheduler reconciliation. The mutation, the save
// and the reconcile run as one critical section: no snapshot is ever
// observed half-applied.
type Manager struct {
	mu    sync.Mutex
	store *Store
	blob  BlobStore
	rec   Reconciler
	l     *log.Logger
}

// InitManager creates a manager and loads any previously persisted task
// list from the blob store. A malformed blob is discarded with a warning
// and the manager starts with zero tasks; it is never fatal.
func InitManager(blob BlobStore, l *log.Logger) (*Manager, error) {
	if l == nil {
		l = log.Default()
	}
	m := &Manager{
		store: NewStore(),
		blob:  blob,
		l:     l,
	}
	raw, err := blob.Load()
	if err != nil {
		return nil, fmt.Errorf("load task blob: %w", err)
	}
	if len(raw) > 0 {
		var tasks []Task
		if err := json.Unmarshal(raw, &tasks); err != nil {
			l.Printf("belllib: warning: failed to decode persisted tasks, starting fresh: %v", err)
		} else {
			m.store.replaceAll(tasks)
		}
	}
	return m, nil
}

// SetReconciler attaches the scheduler and immediately reconciles it
// against the loaded task list, arming a timer for every persisted task.
func (m *Manager) SetReconciler(r Reconciler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = r
	return r.Reconcile(m.store.Tasks())
}

// CreateTask validates, appends and commits a new task.
func (m *Manager) CreateTask(title, description string, intervalMinutes int, opts *TaskOpts) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.store.Create(title, description, intervalMinutes, opts)
	if err != nil {
		return Task{}, err
	}
	return t, m.commit()
}

// UpdateTask replaces the task in place and commits. Reconciliation rearms
// the task's timer even when the interval did not change: any edit restarts
// the countdown.
func (m *Manager) UpdateTask(id, title, description string, intervalMinutes int, opts *TaskOpts) (Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.store.Update(id, title, description, intervalMinutes, opts)
	if err != nil {
		return Task{}, err
	}
	return t, m.commit()
}

// DeleteTask removes the task and commits; its timer is disarmed by the
// reconcile and never fires again.
func (m *Manager) DeleteTask(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Delete(id); err != nil {
		return err
	}
	return m.commit()
}

// ReorderTasks splices the moved task in front of the target's post-removal
// position. A no-op reorder (missing or equal ids) does not commit.
func (m *Manager) ReorderTasks(movedId, targetId string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.store.Reorder(movedId, targetId) {
		return false, nil
	}
	return true, m.commit()
}

// Flush removes all tasks and commits, clearing the persisted blob and
// disarming every timer.
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Flush()
	return m.commit()
}

// GetTasks returns a snapshot of all tasks in display order.
func (m *Manager) GetTasks() []Task {
	return m.store.Tasks()
}

// GetTask returns the task with the given id, or ErrTaskNotFound.
func (m *Manager) GetTask(id string) (Task, error) {
	t, ok := m.store.Get(id)
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

// Close releases the blob store.
func (m *Manager) Close() error {
	return m.blob.Close()
}

// commit persists the current snapshot and reconciles the scheduler.
// Caller must hold m.mu. Persistence failures are logged but do not fail
// the mutation; a reconcile failure (scheduler stopped) is surfaced.
func (m *Manager) commit() error {
	snap := m.store.Tasks()
	b, err := json.Marshal(snap)
	if err != nil {
		m.l.Printf("belllib: warning: failed to encode tasks: %v", err)
	} else if err := m.blob.Save(b); err != nil {
		m.l.Printf("belllib: warning: failed to persist tasks: %v", err)
	}
	if m.rec == nil {
		return nil
	}
	return m.rec.Reconcile(snap)
}
