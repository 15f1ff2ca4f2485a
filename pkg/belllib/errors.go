package belllib

import "errors"

var (
	ErrEmptyTitle   = errors.New("task title must not be empty")
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidCron  = errors.New("invalid cron expression, expected 5-field format (minute hour day-of-month month day-of-week)")

	// ErrSchedulerDown is returned when a mutation cannot rearm its
	// reminder timers because the scheduler loop has stopped. This is the
	// only non-recoverable condition; callers should not retry.
	ErrSchedulerDown = errors.New("reminder scheduler is not running")
)
