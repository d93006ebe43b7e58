package sections

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Function is a callable registered in the capability table. Dynamic
// callables are looked up here by "module.function" name instead of
// being loaded at run time.
type Function func(args ...any) (any, error)

// FunctionRegistry stores callables keyed by dotted name. It doubles as
// the function table exposed to expression evaluators.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function)}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("sections: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("sections: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	key := strings.ToLower(name)
	if _, exists := r.functions[key]; exists {
		return fmt.Errorf("sections: function %q already registered", name)
	}
	r.functions[key] = fn
	return nil
}

// Lookup returns the function registered under name.
func (r *FunctionRegistry) Lookup(name string) (Function, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	fn, ok := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	return fn, ok
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("sections: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns registered names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{functions: make(map[string]Function, len(r.functions))}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Callback pairs a resolved callable with the result its initializer
// produced, if one was named. The resolver never invokes Fn itself.
type Callback struct {
	Name string
	Fn   Function
	Init any
}

// Callback resolves the module/function/init sub-option protocol:
// option.module and option.function select a "module.function" entry in
// the store's capability table; option.init, when present, names a
// zero-argument initializer under the same module that runs once now,
// its result carried on the returned Callback.
func (v *View) Callback(option string, fallback ...Callback) (Callback, error) {
	registry := v.store.cfg.functions
	if registry == nil {
		return Callback{}, fmt.Errorf("sections: function registry not configured")
	}
	key := normalizeOption(option)

	module, err := v.Get(key + ".module")
	if err != nil {
		if len(fallback) > 0 && isAbsence(err) {
			return fallback[0], nil
		}
		return Callback{}, err
	}
	function, err := v.Get(key + ".function")
	if err != nil {
		if len(fallback) > 0 && isAbsence(err) {
			return fallback[0], nil
		}
		return Callback{}, err
	}

	name := module + "." + function
	fn, ok := registry.Lookup(name)
	if !ok {
		return Callback{}, fmt.Errorf("sections: function %q not registered", name)
	}
	callback := Callback{Name: name, Fn: fn}

	initName, err := v.Get(key+".init", "")
	if err != nil {
		return Callback{}, err
	}
	if initName != "" {
		initFn, ok := registry.Lookup(module + "." + initName)
		if !ok {
			return Callback{}, fmt.Errorf("sections: initializer %q not registered", module+"."+initName)
		}
		result, err := initFn()
		if err != nil {
			return Callback{}, fmt.Errorf("sections: initializer %q: %w", module+"."+initName, err)
		}
		callback.Init = result
	}
	return callback, nil
}
