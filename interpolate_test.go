package sections

import (
	"errors"
	"testing"
)

func TestResolvePlainValue(t *testing.T) {
	store := NewStore()
	store.Set("app", "greeting", "hello world")

	value, err := store.Resolve("app", "hello world")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if value != "hello world" {
		t.Fatalf("expected identity resolution, got %q", value)
	}
}

func TestResolveSimpleReference(t *testing.T) {
	store := NewStore()
	store.Set("app", "host", "localhost")
	store.Set("app", "url", "http://%(host)s:8080")

	value, err := store.Section("app").Get("url")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "http://localhost:8080" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestResolveComputedReference(t *testing.T) {
	store := NewStore()
	store.Set("app", "opt", "name")
	store.Set("app", "base.name", "hello")
	store.Set("app", "value", "%(base.%(opt)s)s")

	value, err := store.Section("app").Get("value")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "hello" {
		t.Fatalf("expected computed reference to yield %q, got %q", "hello", value)
	}
}

func TestResolveDefaultsFallback(t *testing.T) {
	store := NewStore()
	store.Set(DefaultSection, "base.path", "/tmp/demo")
	store.Set("watch", "path", "%(base.path)s/watch")

	value, err := store.Section("watch").Get("path")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "/tmp/demo/watch" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestResolveLocalShadowsDefault(t *testing.T) {
	store := NewStore()
	store.Set(DefaultSection, "mode", "shared")
	store.Set("app", "mode", "local")
	store.Set("app", "value", "%(mode)s")

	value, err := store.Section("app").Get("value")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "local" {
		t.Fatalf("expected local value to shadow default, got %q", value)
	}
}

func TestResolveEscapedPercent(t *testing.T) {
	store := NewStore()
	store.Set("app", "share", "50")
	store.Set("app", "message", "%(share)s%% done")

	value, err := store.Section("app").Get("message")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "50% done" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestResolveStrayPercentStaysLiteral(t *testing.T) {
	store := NewStore()

	value, err := store.Resolve("app", "100% organic")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if value != "100% organic" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestResolveUnterminatedPlaceholder(t *testing.T) {
	store := NewStore()
	store.Set("app", "broken", "%(host")

	_, err := store.Section("app").Get("broken")
	if err == nil {
		t.Fatal("expected unterminated placeholder error")
	}
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("expected ErrUnterminated, got %v", err)
	}
	var interpErr *InterpolationError
	if !errors.As(err, &interpErr) {
		t.Fatalf("expected *InterpolationError, got %T", err)
	}
	if interpErr.Section != "app" {
		t.Fatalf("expected section app, got %q", interpErr.Section)
	}
}

func TestResolveUnknownReference(t *testing.T) {
	store := NewStore()
	store.Set("app", "value", "%(missing)s")

	_, err := store.Section("app").Get("value")
	if !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("expected ErrUnknownReference, got %v", err)
	}
	var interpErr *InterpolationError
	if !errors.As(err, &interpErr) {
		t.Fatalf("expected *InterpolationError, got %T", err)
	}
	if interpErr.Reference != "missing" {
		t.Fatalf("expected reference missing, got %q", interpErr.Reference)
	}
}

func TestResolveCycle(t *testing.T) {
	store := NewStore()
	store.Set("app", "a", "%(b)s")
	store.Set("app", "b", "%(a)s")

	_, err := store.Section("app").Get("a")
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestResolveSelfReferenceIsCycle(t *testing.T) {
	store := NewStore()
	store.Set("app", "a", "before %(a)s after")

	_, err := store.Section("app").Get("a")
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestResolveDiamondIsNotCycle(t *testing.T) {
	store := NewStore()
	store.Set("app", "x", "v")
	store.Set("app", "pair", "%(x)s-%(x)s")
	store.Set("app", "deep", "%(pair)s %(x)s")

	value, err := store.Section("app").Get("deep")
	if err != nil {
		t.Fatalf("expected diamond reference to resolve, got %v", err)
	}
	if value != "v-v v" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestResolveSplicedValueNotRescanned(t *testing.T) {
	// A resolved value containing placeholder-shaped text must land in
	// the output verbatim, not trigger another expansion pass.
	store := NewStore()
	store.Set("app", "literal", "keep %%(this)s intact")
	store.Set("app", "value", "got: %(literal)s")

	value, err := store.Section("app").Get("value")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "got: keep %(this)s intact" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestResolveMultiLevelChain(t *testing.T) {
	store := NewStore()
	store.Set("app", "root", "/srv")
	store.Set("app", "data", "%(root)s/data")
	store.Set("app", "cache", "%(data)s/cache")

	value, err := store.Section("app").Get("cache")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "/srv/data/cache" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestResolveOptionNamesAreCaseInsensitive(t *testing.T) {
	store := NewStore()
	store.Set("app", "Base.Path", "/tmp")
	store.Set("app", "full", "%(BASE.PATH)s/x")

	value, err := store.Section("app").Get("full")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if value != "/tmp/x" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestResolveMissingOption(t *testing.T) {
	store := NewStore()
	store.AddSection("app")

	_, err := store.Section("app").Get("absent")
	var missing *MissingOptionError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingOptionError, got %v", err)
	}
	if missing.Section != "app" || missing.Option != "absent" {
		t.Fatalf("unexpected error fields: %+v", missing)
	}
}

func TestResolveUnknownSection(t *testing.T) {
	store := NewStore()

	_, err := store.Section("ghost").Get("anything")
	var unknown *UnknownSectionError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownSectionError, got %v", err)
	}
	if unknown.Section != "ghost" {
		t.Fatalf("unexpected section %q", unknown.Section)
	}
}

func TestMatchPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		value string
		start int
		end   int
		ok    bool
	}{
		{"flat", "%(host)s", 2, 6, true},
		{"nested", "%(base.%(opt)s)s", 2, 14, true},
		{"escaped percent inside", "%(a%%b)s", 2, 6, true},
		{"unterminated", "%(host", 2, 0, false},
		{"nested unterminated", "%(a%(b)s", 2, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			end, ok := matchPlaceholder(tc.value, tc.start)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && end != tc.end {
				t.Fatalf("expected end=%d, got %d", tc.end, end)
			}
		})
	}
}
