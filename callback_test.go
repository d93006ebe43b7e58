package sections

import (
	"fmt"
	"reflect"
	"testing"
)

func TestFunctionRegistry(t *testing.T) {
	registry := NewFunctionRegistry()

	t.Run("register and call", func(t *testing.T) {
		err := registry.Register("math.double", func(args ...any) (any, error) {
			return args[0].(int) * 2, nil
		})
		if err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		got, err := registry.Call("math.double", 21)
		if err != nil {
			t.Fatalf("Call returned error: %v", err)
		}
		if got != 42 {
			t.Fatalf("Call = %v, want 42", got)
		}
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		if _, ok := registry.Lookup("Math.Double"); !ok {
			t.Fatal("expected case-insensitive lookup to succeed")
		}
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		err := registry.Register("math.double", func(args ...any) (any, error) {
			return nil, nil
		})
		if err == nil {
			t.Fatal("expected duplicate registration to fail")
		}
	})

	t.Run("nil rejected", func(t *testing.T) {
		if err := registry.Register("math.nothing", nil); err == nil {
			t.Fatal("expected nil function to be rejected")
		}
	})

	t.Run("unregistered call fails", func(t *testing.T) {
		if _, err := registry.Call("math.triple"); err == nil {
			t.Fatal("expected error for unregistered function")
		}
	})

	t.Run("names sorted", func(t *testing.T) {
		if err := registry.Register("alpha.first", func(args ...any) (any, error) { return nil, nil }); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		names := registry.Names()
		want := []string{"alpha.first", "math.double"}
		if !reflect.DeepEqual(names, want) {
			t.Fatalf("Names = %v, want %v", names, want)
		}
	})

	t.Run("clone is detached", func(t *testing.T) {
		clone := registry.Clone()
		if err := clone.Register("extra.fn", func(args ...any) (any, error) { return nil, nil }); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
		if _, ok := registry.Lookup("extra.fn"); ok {
			t.Fatal("expected original registry to miss cloned entry")
		}
	})
}

func TestViewCallback(t *testing.T) {
	registry := NewFunctionRegistry()
	mustRegister := func(name string, fn Function) {
		t.Helper()
		if err := registry.Register(name, fn); err != nil {
			t.Fatalf("Register(%q) returned error: %v", name, err)
		}
	}
	mustRegister("filters.process", func(args ...any) (any, error) {
		return fmt.Sprintf("processed %v", args), nil
	})
	initCalls := 0
	mustRegister("filters.setup", func(args ...any) (any, error) {
		initCalls++
		return map[string]any{"ready": true}, nil
	})
	mustRegister("filters.broken_setup", func(args ...any) (any, error) {
		return nil, fmt.Errorf("boom")
	})

	store := NewStore(WithFunctionRegistry(registry))
	store.Set("app", "on_change.module", "filters")
	store.Set("app", "on_change.function", "process")
	store.Set("app", "on_change.init", "setup")
	store.Set("app", "on_delete.module", "filters")
	store.Set("app", "on_delete.function", "process")
	store.Set("app", "on_create.module", "filters")
	store.Set("app", "on_create.function", "missing")
	store.Set("app", "on_error.module", "filters")
	store.Set("app", "on_error.function", "process")
	store.Set("app", "on_error.init", "broken_setup")
	view := store.Section("app")

	t.Run("with initializer", func(t *testing.T) {
		callback, err := view.Callback("on_change")
		if err != nil {
			t.Fatalf("Callback returned error: %v", err)
		}
		if callback.Name != "filters.process" {
			t.Fatalf("Name = %q, want filters.process", callback.Name)
		}
		if callback.Fn == nil {
			t.Fatal("expected resolved function")
		}
		if initCalls != 1 {
			t.Fatalf("expected initializer to run once, ran %d times", initCalls)
		}
		state, ok := callback.Init.(map[string]any)
		if !ok || state["ready"] != true {
			t.Fatalf("unexpected init result %v", callback.Init)
		}
	})

	t.Run("without initializer", func(t *testing.T) {
		callback, err := view.Callback("on_delete")
		if err != nil {
			t.Fatalf("Callback returned error: %v", err)
		}
		if callback.Init != nil {
			t.Fatalf("expected nil init result, got %v", callback.Init)
		}
	})

	t.Run("unregistered function", func(t *testing.T) {
		if _, err := view.Callback("on_create"); err == nil {
			t.Fatal("expected error for unregistered function")
		}
	})

	t.Run("initializer failure", func(t *testing.T) {
		if _, err := view.Callback("on_error"); err == nil {
			t.Fatal("expected initializer failure to surface")
		}
	})

	t.Run("fallback answers absence", func(t *testing.T) {
		fallback := Callback{Name: "builtin.noop"}
		callback, err := view.Callback("on_missing", fallback)
		if err != nil {
			t.Fatalf("Callback returned error: %v", err)
		}
		if callback.Name != "builtin.noop" {
			t.Fatalf("Name = %q, want builtin.noop", callback.Name)
		}
	})

	t.Run("absent without fallback", func(t *testing.T) {
		if _, err := view.Callback("on_missing"); err == nil {
			t.Fatal("expected error for absent callback options")
		}
	})
}

func TestViewCallbackWithoutRegistry(t *testing.T) {
	store := NewStore()
	store.Set("app", "cb.module", "m")
	store.Set("app", "cb.function", "f")

	if _, err := store.Section("app").Callback("cb"); err == nil {
		t.Fatal("expected error when no registry is configured")
	}
}
