package notifier

import (
	"log"

	"github.com/taskbell/taskbell/pkg/belllib"
)

// Notifier delivers a reminder for a task whose alarm has fired. A
// Notifier must not block the caller for long and must tolerate being
// invoked from multiple goroutines.
type Notifier interface {
	Notify(task belllib.Task)
}

// Func adapts a plain function into a Notifier.
type Func func(task belllib.Task)

func (f Func) Notify(task belllib.Task) { f(task) }

// Multi fans a reminder out to every target on its own goroutine, so one
// slow or panicking sink never delays the others.
type Multi struct {
	l       *log.Logger
	targets []Notifier
}

func NewMulti(l *log.Logger, targets ...Notifier) *Multi {
	if l == nil {
		l = log.Default()
	}
	return &Multi{l: l, targets: targets}
}

func (m *Multi) Notify(task belllib.Task) {
	for _, t := range m.targets {
		t := t
		belllib.SafeGo(m.l, "notify "+task.ID, nil, func() {
			t.Notify(task)
		})
	}
}
