package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/taskbell/taskbell/pkg/belllib"
)

// testUnit compresses one "interval minute" so the suite runs in real time.
const testUnit = 150 * time.Millisecond

// fireRecorder collects onFire invocations by task id.
type fireRecorder struct {
	mu    sync.Mutex
	fires map[string]int
}

func newFireRecorder() *fireRecorder {
	return &fireRecorder{fires: make(map[string]int)}
}

func (r *fireRecorder) onFire(t belllib.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fires[t.ID]++
}

func (r *fireRecorder) count(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fires[id]
}

func makeTask(id string, interval int) belllib.Task {
	return belllib.Task{
		ID:              id,
		Title:           id,
		IntervalMinutes: interval,
		CreatedAt:       time.Now(),
	}
}

func sortedArmed(s *Scheduler) []string {
	ids := s.Armed()
	sort.Strings(ids)
	return ids
}

func TestScheduler_ReconcileArmsExactlyTheSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, nil, testUnit, func(belllib.Task) {})

	tasks := []belllib.Task{makeTask("a", 1), makeTask("b", 2), makeTask("c", 3)}
	if err := s.Reconcile(tasks); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	got := sortedArmed(s)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected [a b c] armed, got %v", got)
	}

	// Shrink the snapshot — the orphan entries must be gone.
	if err := s.Reconcile(tasks[:1]); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	got = sortedArmed(s)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected [a] armed, got %v", got)
	}

	// Reconciling the same snapshot twice must not duplicate timers.
	if err := s.Reconcile(tasks[:1]); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if got := s.Armed(); len(got) != 1 {
		t.Fatalf("expected 1 armed entry after idempotent reconcile, got %d", len(got))
	}
}

func TestScheduler_ZeroIntervalNeverArmed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, nil, testUnit, func(belllib.Task) {})
	if err := s.Reconcile([]belllib.Task{makeTask("zero", 0)}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if got := s.Armed(); len(got) != 0 {
		t.Fatalf("expected no armed entries, got %v", got)
	}
}

func TestScheduler_RepeatingFires(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := newFireRecorder()
	s := New(ctx, nil, testUnit, rec.onFire)

	task := makeTask("bills", 1)
	if err := s.Reconcile([]belllib.Task{task}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	// After one unit (plus margin) the alarm fired once.
	time.Sleep(testUnit + testUnit/2)
	if got := rec.count("bills"); got != 1 {
		t.Fatalf("expected 1 fire after one unit, got %d", got)
	}

	// After the second unit it fired again.
	time.Sleep(testUnit)
	if got := rec.count("bills"); got != 2 {
		t.Fatalf("expected 2 fires after two units, got %d", got)
	}
}

func TestScheduler_DeleteStopsFiring(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := newFireRecorder()
	s := New(ctx, nil, testUnit, rec.onFire)

	task := makeTask("bills", 1)
	if err := s.Reconcile([]belllib.Task{task}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	// Wait for the first fire, then delete immediately.
	time.Sleep(testUnit + testUnit/2)
	if got := rec.count("bills"); got != 1 {
		t.Fatalf("expected 1 fire before delete, got %d", got)
	}
	if err := s.Reconcile(nil); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	// Wait past several would-be fire times.
	time.Sleep(3 * testUnit)
	if got := rec.count("bills"); got != 1 {
		t.Fatalf("expected no fires after delete, got %d total", got)
	}
}

func TestScheduler_EditRestartsCountdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := newFireRecorder()
	s := New(ctx, nil, testUnit, rec.onFire)

	task := makeTask("water", 2)
	if err := s.Reconcile([]belllib.Task{task}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	// Halfway through the first period, "edit" the task (reconcile with
	// the same interval). The countdown must restart from this moment.
	time.Sleep(testUnit)
	if err := s.Reconcile([]belllib.Task{task}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	// The original schedule would fire one unit from now. The restarted
	// one fires two units from now.
	time.Sleep(testUnit + testUnit/2)
	if got := rec.count("water"); got != 0 {
		t.Fatalf("expected countdown restart, got %d fires on the old schedule", got)
	}
	time.Sleep(testUnit)
	if got := rec.count("water"); got != 1 {
		t.Fatalf("expected 1 fire on the restarted schedule, got %d", got)
	}
}

func TestScheduler_RemoveDisarmsSingleTask(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := newFireRecorder()
	s := New(ctx, nil, testUnit, rec.onFire)

	if err := s.Reconcile([]belllib.Task{makeTask("keep", 1), makeTask("drop", 1)}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	s.Remove("drop")

	time.Sleep(testUnit + testUnit/2)
	if got := rec.count("drop"); got != 0 {
		t.Fatalf("expected no fires for removed task, got %d", got)
	}
	if got := rec.count("keep"); got != 1 {
		t.Fatalf("expected 1 fire for kept task, got %d", got)
	}
}

func TestScheduler_FireCarriesTaskSnapshot(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var fired []belllib.Task
	s := New(ctx, nil, testUnit, func(t belllib.Task) {
		mu.Lock()
		fired = append(fired, t)
		mu.Unlock()
	})

	task := makeTask("bills", 1)
	task.Title = "Pay bills"
	task.Description = "water and power"
	if err := s.Reconcile([]belllib.Task{task}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	time.Sleep(testUnit + testUnit/2)
	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 {
		t.Fatalf("expected 1 fire, got %d", len(fired))
	}
	if fired[0].Title != "Pay bills" || fired[0].Description != "water and power" {
		t.Errorf("expected task snapshot in callback, got %+v", fired[0])
	}
}

func TestScheduler_PanickingHandlerDoesNotStopLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := newFireRecorder()
	s := New(ctx, nil, testUnit, func(t belllib.Task) {
		rec.onFire(t)
		panic("handler bug")
	})

	if err := s.Reconcile([]belllib.Task{makeTask("boom", 1)}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	time.Sleep(2*testUnit + testUnit/2)
	if got := rec.count("boom"); got < 2 {
		t.Fatalf("expected scheduler to keep firing past handler panics, got %d fires", got)
	}
}

func TestScheduler_ShutdownViaContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	rec := newFireRecorder()
	s := New(ctx, nil, testUnit, rec.onFire)
	if err := s.Reconcile([]belllib.Task{makeTask("a", 1)}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	cancel()

	time.Sleep(2 * testUnit)
	if got := rec.count("a"); got != 0 {
		t.Fatalf("expected no fires after shutdown, got %d", got)
	}

	if err := s.Reconcile([]belllib.Task{makeTask("b", 1)}); !errors.Is(err, belllib.ErrSchedulerDown) {
		t.Fatalf("expected ErrSchedulerDown after shutdown, got %v", err)
	}
	if ids := s.Armed(); ids != nil {
		t.Fatalf("expected nil armed set after shutdown, got %v", ids)
	}
}

func TestScheduler_CronTaskArmed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, nil, testUnit, func(belllib.Task) {})

	task := makeTask("nightly", 0)
	task.Cron = "0 2 * * *"
	if err := s.Reconcile([]belllib.Task{task}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	got := s.Armed()
	if len(got) != 1 || got[0] != "nightly" {
		t.Fatalf("expected cron task armed, got %v", got)
	}
}

func TestScheduler_BadCronDropped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(ctx, nil, testUnit, func(belllib.Task) {})

	task := makeTask("broken", 0)
	task.Cron = "not-a-cron"
	if err := s.Reconcile([]belllib.Task{task}); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if got := s.Armed(); len(got) != 0 {
		t.Fatalf("expected bad cron dropped, got %v", got)
	}
}
