package function

import (
	"fmt"
	"log/slog"
	"strings"

	"edd/internal/domain"
)

// Constructor builds one function with no arguments. It is the unit of the
// build-time registration table returned by Builtins.
type Constructor func() (domain.Function, error)

// Registry holds the functions available to the dispatcher. It is filled once
// by Build and read-only afterwards.
type Registry struct {
	funcs []domain.Function
	index map[string]int // lower-cased name -> position in funcs
}

// Build instantiates every constructor in order. A constructor that fails is
// logged and skipped so one broken function does not take the others down.
// Names in disabled are left out. Two functions sharing a name
// (case-insensitively) is an error.
func Build(logger *slog.Logger, disabled []string, ctors ...Constructor) (*Registry, error) {
	skip := make(map[string]bool, len(disabled))
	for _, n := range disabled {
		skip[strings.ToLower(strings.TrimSpace(n))] = true
	}

	r := &Registry{index: make(map[string]int, len(ctors))}
	for i, ctor := range ctors {
		fn, err := ctor()
		if err != nil {
			logger.Warn("function constructor failed, skipping", "position", i, "err", err)
			continue
		}
		if fn == nil {
			logger.Warn("function constructor returned nil, skipping", "position", i)
			continue
		}
		key := strings.ToLower(fn.Name())
		if skip[key] {
			logger.Debug("function disabled by config", "name", fn.Name())
			continue
		}
		if prev, exists := r.index[key]; exists {
			return nil, fmt.Errorf("function %s already registered (as %s)", fn.Name(), r.funcs[prev].Name())
		}
		r.index[key] = len(r.funcs)
		r.funcs = append(r.funcs, fn)
		logger.Debug("registered function", "name", fn.Name())
	}
	return r, nil
}

// Lookup finds a function by name, ignoring case.
func (r *Registry) Lookup(name string) (domain.Function, bool) {
	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return r.funcs[i], true
}

// Functions returns the registered functions in registration order.
func (r *Registry) Functions() []domain.Function {
	out := make([]domain.Function, len(r.funcs))
	copy(out, r.funcs)
	return out
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for _, f := range r.funcs {
		names = append(names, f.Name())
	}
	return names
}

func (r *Registry) Len() int { return len(r.funcs) }
