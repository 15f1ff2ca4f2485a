package belllib

import (
	"log"
	"runtime/debug"
)

// SafeGo runs fn in a goroutine with panic recovery. Reminder fire
// callbacks and notifier fan-out run through it so a panicking handler can
// never take down the scheduler loop or the daemon.
// If l is non-nil, panics are logged with stack traces.
// If onPanic is non-nil, it is called with the recovered value.
func SafeGo(l *log.Logger, context string, onPanic func(r interface{}), fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if l != nil {
					l.Printf("PANIC [%s]: %v\n%s", context, r, debug.Stack())
				}
				if onPanic != nil {
					onPanic(r)
				}
			}
		}()
		fn()
	}()
}
