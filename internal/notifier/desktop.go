package notifier

import (
	"log"
	"os/exec"

	"github.com/taskbell/taskbell/pkg/belllib"
)

// Desktop shows a reminder through the system notification daemon using
// notify-send. Delivery is best effort: a missing binary or a failed
// invocation is logged and otherwise ignored, so reminders keep flowing
// on headless machines.
type Desktop struct {
	l   *log.Logger
	bin string
}

func NewDesktop(l *log.Logger) *Desktop {
	if l == nil {
		l = log.Default()
	}
	bin, err := exec.LookPath("notify-send")
	if err != nil {
		l.Println("notifier: notify-send not found, desktop notifications disabled")
	}
	return &Desktop{l: l, bin: bin}
}

func (d *Desktop) Notify(task belllib.Task) {
	if d.bin == "" {
		return
	}
	cmd := exec.Command(d.bin, "--app-name=taskbell", task.Title, task.Description)
	if err := cmd.Run(); err != nil {
		d.l.Printf("notifier: notify-send failed for task %s: %v", task.ID, err)
	}
}
