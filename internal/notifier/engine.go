package notifier

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/taskbell/taskbell/pkg/belllib"
)

// Engine loads every *.js script from a hooks directory and invokes each
// one's onReminder for every fired alarm. Scripts that fail to load are
// logged and skipped so one broken hook cannot take the rest down. A
// missing directory means no hooks.
type Engine struct {
	l     *log.Logger
	dir   string
	mu    sync.RWMutex
	hooks *belllib.VMap[string, *Hook]
}

func NewEngine(l *log.Logger, dir string) (*Engine, error) {
	if l == nil {
		l = log.Default()
	}
	e := &Engine{
		l:     l,
		dir:   dir,
		hooks: belllib.NewVMap[string, *Hook](),
	}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload rescans the hooks directory, replacing the loaded set.
func (e *Engine) Reload() error {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	fresh := belllib.NewVMap[string, *Hook]()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".js" {
			continue
		}
		path := filepath.Join(e.dir, entry.Name())
		h, err := loadHook(e.l, path)
		if err != nil {
			e.l.Printf("notifier: skipping hook %s: %v", entry.Name(), err)
			continue
		}
		e.l.Println("notifier: loaded hook", h.Name)
		fresh.Set(h.Name, h)
	}
	e.mu.Lock()
	e.hooks = fresh
	e.mu.Unlock()
	return nil
}

// current snapshots the hook set so a live Reload cannot race readers.
func (e *Engine) current() *belllib.VMap[string, *Hook] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hooks
}

// Hooks returns the names of all loaded hooks, sorted.
func (e *Engine) Hooks() []string {
	hooks := e.current()
	names := make([]string, 0, hooks.Len())
	hooks.Range(func(name string, _ *Hook) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Invoke runs a single hook by name.
func (e *Engine) Invoke(name string, task belllib.Task) error {
	h, ok := e.current().Get(name)
	if !ok {
		return ErrHookNotFound
	}
	return h.Invoke(task)
}

func (e *Engine) Notify(task belllib.Task) {
	e.current().Range(func(name string, h *Hook) bool {
		if err := h.Invoke(task); err != nil {
			e.l.Printf("notifier: hook %s failed for task %s: %v", name, task.ID, err)
		}
		return true
	})
}
