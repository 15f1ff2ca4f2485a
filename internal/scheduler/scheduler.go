package scheduler

import (
	"container/heap"
	"context"
	"log"
	"time"

	"github.com/adhocore/gronx"
	"github.com/taskbell/taskbell/pkg/belllib"
)

const maxSleepCap = 60 * time.Second

// Scheduler maintains exactly one repeating alarm per task. It runs a
// background goroutine that sleeps until the next entry's fire time, then
// invokes the onFire callback with the task snapshot and rearms the entry
// one period later.
type Scheduler struct {
	reconcileChan chan reconcileReq
	removeChan    chan string
	armedChan     chan chan []string
	unit          time.Duration
	ctx           context.Context
	l             *log.Logger
}

type reconcileReq struct {
	tasks []belllib.Task
	done  chan struct{}
}

// New creates and starts a Scheduler. unit is the duration one interval
// minute maps to — time.Minute in production, compressed in tests; values
// <= 0 default to time.Minute. The onFire callback is dispatched on its
// own goroutine with panic recovery and never blocks the scheduler loop.
// The loop exits when ctx is cancelled, disarming every entry.
func New(ctx context.Context, l *log.Logger, unit time.Duration, onFire func(belllib.Task)) *Scheduler {
	if unit <= 0 {
		unit = time.Minute
	}
	if l == nil {
		l = log.Default()
	}
	s := &Scheduler{
		reconcileChan: make(chan reconcileReq),
		removeChan:    make(chan string, 64),
		armedChan:     make(chan chan []string),
		unit:          unit,
		ctx:           ctx,
		l:             l,
	}
	go s.run(onFire)
	return s
}

// Reconcile replaces the armed set with one entry per schedulable task in
// the snapshot: disarm all, rearm all. Every rearmed entry counts its
// period from now, so any edit restarts a task's countdown. The call
// returns once the swap is complete, or belllib.ErrSchedulerDown if the
// scheduler has stopped.
func (s *Scheduler) Reconcile(tasks []belllib.Task) error {
	req := reconcileReq{
		tasks: tasks,
		done:  make(chan struct{}),
	}
	select {
	case s.reconcileChan <- req:
	case <-s.ctx.Done():
		return belllib.ErrSchedulerDown
	}
	select {
	case <-req.done:
		return nil
	case <-s.ctx.Done():
		return belllib.ErrSchedulerDown
	}
}

// Remove disarms a single task's alarm by id without touching the rest of
// the armed set. Reconcile covers deletes already; Remove exists for
// callers that want to silence one task ahead of a full reconcile.
func (s *Scheduler) Remove(taskID string) {
	select {
	case s.removeChan <- taskID:
	case <-s.ctx.Done():
	}
}

// Armed returns the ids of all currently armed tasks. Returns nil after
// the scheduler has stopped.
func (s *Scheduler) Armed() []string {
	q := make(chan []string)
	select {
	case s.armedChan <- q:
	case <-s.ctx.Done():
		return nil
	}
	select {
	case ids := <-q:
		return ids
	case <-s.ctx.Done():
		return nil
	}
}

// run is the core scheduler goroutine implementing the active-object
// pattern. It owns the heap exclusively; reconciles, removes and fires all
// serialize through its select loop, so a reconcile can never observe a
// fire mid-flight.
func (s *Scheduler) run(onFire func(belllib.Task)) {
	h := &alarmHeap{}
	heap.Init(h)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		if h.Len() == 0 {
			// No alarms — block indefinitely on channels
			return nil
		}
		dur := time.Until((*h)[0].FireAt)
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()

	for {
		select {
		case <-s.ctx.Done():
			return

		case req := <-s.reconcileChan:
			*h = (*h)[:0]
			now := time.Now()
			for _, t := range req.tasks {
				if e, ok := s.arm(t, now); ok {
					heapPush(h, e)
				}
			}
			close(req.done)
			timerCh = resetTimer()

		case id := <-s.removeChan:
			heapRemoveByTask(h, id)
			timerCh = resetTimer()

		case q := <-s.armedChan:
			ids := make([]string, h.Len())
			for i, e := range *h {
				ids[i] = e.TaskID
			}
			q <- ids

		case <-timerCh:
			// Fire all entries whose time has arrived, rearming each.
			now := time.Now()
			for h.Len() > 0 && !(*h)[0].FireAt.After(now) {
				e := heapPop(h)
				task := e.Task
				belllib.SafeGo(s.l, "alarm fire "+e.TaskID, nil, func() {
					onFire(task)
				})
				if next, ok := s.nextFire(e, now); ok {
					e.FireAt = next
					heapPush(h, e)
				}
			}
			timerCh = resetTimer()
		}
	}
}

// arm builds a fresh entry for a task, counting from now. Tasks with a
// non-positive interval and no cron expression are never armed.
func (s *Scheduler) arm(t belllib.Task, now time.Time) (alarmEntry, bool) {
	e := alarmEntry{
		TaskID: t.ID,
		Cron:   t.Cron,
		Task:   t,
	}
	if t.Cron != "" {
		next, err := gronx.NextTickAfter(t.Cron, now, false)
		if err != nil {
			s.l.Printf("scheduler: dropping task %s: bad cron %q: %v", t.ID, t.Cron, err)
			return alarmEntry{}, false
		}
		e.FireAt = next
		return e, true
	}
	if t.IntervalMinutes <= 0 {
		return alarmEntry{}, false
	}
	e.Period = t.Period(s.unit)
	e.FireAt = now.Add(e.Period)
	return e, true
}

// nextFire computes when a just-fired entry fires again. Interval entries
// stay anchored to their original arming time; occurrences already in the
// past (after a long system sleep) are skipped rather than replayed.
func (s *Scheduler) nextFire(e alarmEntry, now time.Time) (time.Time, bool) {
	if e.Cron != "" {
		next, err := gronx.NextTickAfter(e.Cron, now, false)
		if err != nil {
			return time.Time{}, false
		}
		return next, true
	}
	if e.Period <= 0 {
		return time.Time{}, false
	}
	next := e.FireAt.Add(e.Period)
	for !next.After(now) {
		next = next.Add(e.Period)
	}
	return next, true
}
