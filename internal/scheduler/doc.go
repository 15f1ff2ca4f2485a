// Package scheduler arms and fires the repeating reminder timers for
// taskbell. It implements a single-goroutine scheduler using a min-heap of
// alarm entries sorted by next fire time, with a 60-second max-sleep-cap to
// handle NTP steps, DST transitions, and system sleep.
//
// The scheduler never diffs the task list against its armed set. On every
// task mutation the daemon calls Reconcile with a full snapshot and the
// loop disarms everything and rearms from scratch: a deleted task cannot
// leak a timer and an edited task cannot keep a stale interval. Reconcile
// is synchronous — it returns only after the armed set has been swapped.
package scheduler
