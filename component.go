package sections

import (
	"strings"

	"github.com/goliatone/go-sections/layering"
)

// Component materialises one prefix.name.key grouping from a parent
// section as its own derived store. The component's section is built
// from a precedence chain, weakest first:
//
//	prefix.*.key
//	prefix.default.key
//	mixin chains (prefix.name.mixin names other prefixes; later
//	mixins are stronger)
//	prefix.name.key
//
// Every parent option outside the prefix becomes a DEFAULTS entry of
// the derived store, so interpolation against shared values keeps
// working inside the component. The meta options name and <prefix> are
// injected with the component's name.
type Component struct {
	Prefix string
	Name   string
	Config *View
}

// Factory constructs a typed component from its name and config view.
type Factory[T any] func(name string, config *View) (T, error)

// NewComponent builds the derived store for prefix.name inside the
// parent view's section.
func NewComponent(prefix, name string, parent *View) (*Component, error) {
	section := prefix + "." + name
	child := parent.Store().derive()

	pfx := prefix + "."
	for _, key := range parent.Options() {
		if strings.HasPrefix(key, pfx) {
			continue
		}
		raw, err := parent.Raw(key)
		if err != nil {
			return nil, err
		}
		child.Set(DefaultSection, key, raw)
	}

	star := rawValuesWithPrefix(parent, pfx+"*.")
	defaults := rawValuesWithPrefix(parent, pfx+"default.")
	named := rawValuesWithPrefix(parent, pfx+name+".")

	mixins, err := parent.List(pfx+"*.mixin", nil)
	if err != nil {
		return nil, err
	}
	mixins, err = parent.List(pfx+"default.mixin", mixins)
	if err != nil {
		return nil, err
	}
	mixins, err = parent.List(pfx+name+".mixin", mixins)
	if err != nil {
		return nil, err
	}

	// Strongest first for the merge: the named block, then mixins in
	// reverse listed order, then the default and star blocks.
	layers := []map[string]string{named}
	for i := len(mixins) - 1; i >= 0; i-- {
		layers = append(layers, rawValuesWithPrefix(parent, mixins[i]+"."))
	}
	layers = append(layers, defaults, star)

	child.SetSection(section, layering.Merge(layers...))
	child.Set(section, "name", name)
	child.Set(section, prefix, name)

	return &Component{
		Prefix: prefix,
		Name:   name,
		Config: child.Section(section),
	}, nil
}

// Components traverses a list option naming components and constructs
// each via NewComponent, keyed by name.
func (v *View) Components(option, prefix string) (map[string]*Component, error) {
	names, err := v.List(option, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Component, len(names))
	for _, name := range names {
		component, err := NewComponent(prefix, name, v)
		if err != nil {
			return nil, err
		}
		out[name] = component
	}
	return out, nil
}

// BuildComponents traverses like View.Components but hands each
// component's config view to a typed factory.
func BuildComponents[T any](v *View, option, prefix string, factory Factory[T]) (map[string]T, error) {
	names, err := v.List(option, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(names))
	for _, name := range names {
		component, err := NewComponent(prefix, name, v)
		if err != nil {
			return nil, err
		}
		value, err := factory(name, component.Config)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

// rawValuesWithPrefix collects parent options under prefix with the
// prefix stripped, values kept raw so placeholders re-resolve in the
// component's own scope.
func rawValuesWithPrefix(parent *View, prefix string) map[string]string {
	out := make(map[string]string)
	for _, key := range parent.Options() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		raw, err := parent.Raw(key)
		if err != nil {
			continue
		}
		out[strings.TrimPrefix(key, prefix)] = raw
	}
	return out
}
