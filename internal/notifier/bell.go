package notifier

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/taskbell/taskbell/pkg/belllib"
)

const (
	defaultBellTones = 3
	defaultBellGap   = 200 * time.Millisecond
)

// Bell rings the terminal bell a fixed number of times per reminder by
// writing BEL bytes to its writer.
type Bell struct {
	w     io.Writer
	tones int
	gap   time.Duration
}

func NewBell(w io.Writer) *Bell {
	if w == nil {
		w = os.Stdout
	}
	return &Bell{w: w, tones: defaultBellTones, gap: defaultBellGap}
}

func (b *Bell) Notify(belllib.Task) {
	for i := 0; i < b.tones; i++ {
		if i > 0 {
			time.Sleep(b.gap)
		}
		fmt.Fprint(b.w, "\a")
	}
}
