package sections

import (
	"testing"
)

func newComponentStore() *Store {
	store := NewStore()
	store.Set("app", "base.path", "/tmp/demo")
	store.Set("app", "handler.*.retries", "1")
	store.Set("app", "handler.*.mode", "plain")
	store.Set("app", "handler.default.retries", "3")
	store.Set("app", "handler.logs.path", "%(base.path)s/logs")
	store.Set("app", "handler.logs.mode", "rotate")
	return store
}

func TestNewComponentLayering(t *testing.T) {
	component, err := NewComponent("handler", "logs", newComponentStore().Section("app"))
	if err != nil {
		t.Fatalf("NewComponent returned error: %v", err)
	}
	config := component.Config

	t.Run("named beats default and star", func(t *testing.T) {
		mode, err := config.Get("mode")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if mode != "rotate" {
			t.Fatalf("mode = %q, want rotate", mode)
		}
	})

	t.Run("default beats star", func(t *testing.T) {
		retries, err := config.Int("retries")
		if err != nil {
			t.Fatalf("Int returned error: %v", err)
		}
		if retries != 3 {
			t.Fatalf("retries = %d, want 3", retries)
		}
	})

	t.Run("shared options interpolate", func(t *testing.T) {
		path, err := config.Get("path")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if path != "/tmp/demo/logs" {
			t.Fatalf("path = %q, want /tmp/demo/logs", path)
		}
	})

	t.Run("meta options", func(t *testing.T) {
		name, err := config.Get("name")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if name != "logs" {
			t.Fatalf("name = %q, want logs", name)
		}
		prefixed, err := config.Get("handler")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if prefixed != "logs" {
			t.Fatalf("handler = %q, want logs", prefixed)
		}
	})
}

func TestNewComponentMixins(t *testing.T) {
	store := newComponentStore()
	store.Set("app", "handler.rotating.max_size", "10 MiB")
	store.Set("app", "handler.rotating.mode", "rotate")
	store.Set("app", "handler.timed.interval", "1h")
	store.Set("app", "handler.timed.mode", "timed")
	store.Set("app", "handler.audit.mixin", "handler.rotating, handler.timed")
	store.Set("app", "handler.audit.retries", "5")

	component, err := NewComponent("handler", "audit", store.Section("app"))
	if err != nil {
		t.Fatalf("NewComponent returned error: %v", err)
	}
	config := component.Config

	if retries, err := config.Int("retries"); err != nil || retries != 5 {
		t.Fatalf("retries = %d, %v (named block must win)", retries, err)
	}
	if size, err := config.Bytes("max_size"); err != nil || size != 10485760 {
		t.Fatalf("max_size = %d, %v (mixin option must be visible)", size, err)
	}
	// Later mixins are stronger: timed overrides rotating's mode.
	if mode, err := config.Get("mode"); err != nil || mode != "timed" {
		t.Fatalf("mode = %q, %v", mode, err)
	}
	if interval, err := config.Get("interval"); err != nil || interval != "1h" {
		t.Fatalf("interval = %q, %v", interval, err)
	}
}

func TestViewComponents(t *testing.T) {
	store := newComponentStore()
	store.Set("app", "handler.metrics.port", "9090")
	store.Set("app", "handlers", "logs, metrics")

	components, err := store.Section("app").Components("handlers", "handler")
	if err != nil {
		t.Fatalf("Components returned error: %v", err)
	}
	if len(components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(components))
	}
	logs, ok := components["logs"]
	if !ok {
		t.Fatal("expected logs component")
	}
	if logs.Prefix != "handler" || logs.Name != "logs" {
		t.Fatalf("unexpected component identity: %+v", logs)
	}
	if port, err := components["metrics"].Config.Int("port"); err != nil || port != 9090 {
		t.Fatalf("port = %d, %v", port, err)
	}
}

func TestBuildComponents(t *testing.T) {
	type handler struct {
		name string
		mode string
	}

	store := newComponentStore()
	store.Set("app", "handlers", "logs")

	built, err := BuildComponents(store.Section("app"), "handlers", "handler",
		func(name string, config *View) (handler, error) {
			mode, err := config.Get("mode")
			if err != nil {
				return handler{}, err
			}
			return handler{name: name, mode: mode}, nil
		})
	if err != nil {
		t.Fatalf("BuildComponents returned error: %v", err)
	}
	if got := built["logs"]; got.name != "logs" || got.mode != "rotate" {
		t.Fatalf("unexpected handler %+v", got)
	}
}

func TestComponentsMissingListIsEmpty(t *testing.T) {
	store := newComponentStore()

	components, err := store.Section("app").Components("handlers", "handler")
	if err != nil {
		t.Fatalf("Components returned error: %v", err)
	}
	if len(components) != 0 {
		t.Fatalf("expected no components, got %d", len(components))
	}
}
