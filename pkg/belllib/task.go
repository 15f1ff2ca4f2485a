// Package belllib provides the core structures and persistence layer for
// managing reminder tasks in the taskbell application.
package belllib

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// DefaultIntervalMinutes is the reminder period assigned when a task is
// created or updated with a non-positive interval.
const DefaultIntervalMinutes = 5

// Task represents a single reminder with its repeat cadence.
// The JSON field names are the persisted wire format and must stay stable.
type Task struct {
	// ID is the unique identifier of the task. Assigned at creation,
	// never reused.
	ID string `json:"id"`
	// Title is the task headline shown in reminders. Never empty.
	Title string `json:"title"`
	// Description is free-form detail text, may be empty.
	Description string `json:"description"`
	// IntervalMinutes is the reminder period. Always >= 1.
	IntervalMinutes int `json:"interval"`
	// Cron is an optional 5-field cron expression. When set, the task
	// fires on the cron cadence instead of the fixed interval.
	Cron string `json:"cron,omitempty"`
	// CreatedAt is the creation timestamp, informational only.
	CreatedAt time.Time `json:"createdAt"`
}

// TaskOpts contains optional parameters for Store.Create and Store.Update.
type TaskOpts struct {
	// Cron switches the task from interval cadence to a cron cadence.
	Cron string
}

// Period returns the task's reminder period expressed in the given unit.
// Unit is time.Minute in production; tests compress it.
func (t *Task) Period(unit time.Duration) time.Duration {
	return time.Duration(t.IntervalMinutes) * unit
}

func newTaskID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "task_" + hex.EncodeToString(b[:])
}

func newTask(title, description string, intervalMinutes int, opts *TaskOpts) *Task {
	if opts == nil {
		opts = &TaskOpts{}
	}
	if intervalMinutes < 1 {
		intervalMinutes = DefaultIntervalMinutes
	}
	return &Task{
		ID:              newTaskID(),
		Title:           title,
		Description:     description,
		IntervalMinutes: intervalMinutes,
		Cron:            opts.Cron,
		CreatedAt:       time.Now(),
	}
}
