package notifier

import (
	"log"
	"path/filepath"

	"github.com/dop251/goja"
	requirePkg "github.com/dop251/goja_nodejs/require"
)

// hookRuntime wraps a goja VM prepared for a single hook script: a
// require() resolving relative to the hook directory and a print()
// writing through the daemon logger.
type hookRuntime struct {
	*requirePkg.RequireModule
	*goja.Runtime
	l        *log.Logger
	imported []string
}

func newHookRuntime(l *log.Logger, wd string) (*hookRuntime, error) {
	registry := new(requirePkg.Registry)
	vm := goja.New()
	reqM := registry.Enable(vm)
	r := &hookRuntime{
		Runtime:       vm,
		RequireModule: reqM,
		l:             l,
		imported:      []string{},
	}
	if err := vm.Set("print", r.print); err != nil {
		return nil, err
	}
	if err := vm.Set("require", r.require(wd)); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *hookRuntime) print(call goja.FunctionCall) goja.Value {
	args := make([]interface{}, len(call.Arguments))
	for i, v := range call.Arguments {
		args[i] = v.Export()
	}
	r.l.Println(args...)
	return nil
}

func (r *hookRuntime) require(wd string) func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		modName := call.Arguments[0].String()
		modPath := filepath.Join(wd, modName)
		v, err := r.RequireModule.Require(modPath)
		if err != nil {
			r.l.Println("require: failed to import module:", modName)
			return nil
		}
		r.imported = append(r.imported, modName)
		return v
	}
}
