package notifier

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dop251/goja"
	"github.com/taskbell/taskbell/pkg/belllib"
)

// reminderCallback is the symbol every hook script must export.
const reminderCallback = "onReminder"

var (
	ErrHookCallbackMissing = errors.New("onReminder function not defined")
	ErrHookNotFound        = errors.New("hook not found")
)

// Hook is a single user script loaded into its own isolated runtime. The
// goja VM is not goroutine safe, so invocations serialize on mu.
type Hook struct {
	Name string

	mu      sync.Mutex
	runtime *hookRuntime
	fn      goja.Callable
}

// loadHook reads and evaluates a script, then binds its onReminder
// export. The hook's directory becomes the require() root.
func loadHook(l *log.Logger, path string) (*Hook, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rt, err := newHookRuntime(l, filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	if _, err = rt.RunString(string(src)); err != nil {
		return nil, err
	}
	fn, ok := goja.AssertFunction(rt.Get(reminderCallback))
	if !ok {
		return nil, ErrHookCallbackMissing
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Hook{Name: name, runtime: rt, fn: fn}, nil
}

// Invoke calls the script's onReminder with a plain object snapshot of
// the task.
func (h *Hook) Invoke(task belllib.Task) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	payload := map[string]interface{}{
		"id":          task.ID,
		"title":       task.Title,
		"description": task.Description,
		"interval":    task.IntervalMinutes,
		"cron":        task.Cron,
		"createdAt":   task.CreatedAt.Unix(),
	}
	_, err := h.fn(goja.Undefined(), h.runtime.ToValue(payload))
	return err
}
