package scheduler

import (
	"time"

	"github.com/taskbell/taskbell/pkg/belllib"
)

// alarmEntry is one armed reminder in the scheduler heap. Entries are
// in-memory only — the heap is rebuilt from the task list on every
// reconcile and on daemon restart.
type alarmEntry struct {
	// TaskID keys the entry; exactly one entry exists per armed task.
	TaskID string
	// FireAt is the wall-clock time of the next fire.
	FireAt time.Time
	// Period is the repeat interval. After each fire the entry is
	// rearmed at FireAt + Period, so fires land on integer multiples of
	// the period measured from the moment the entry was armed.
	Period time.Duration
	// Cron overrides Period when non-empty: the next fire is the next
	// cron occurrence instead of a fixed offset.
	Cron string
	// Task is the snapshot handed to the onFire callback.
	Task belllib.Task
}
