package sections

import (
	"errors"
	"time"
)

// View is a stateless facade bound to one section name. Accessors
// interpolate on every call and never cache, since the same raw value
// may be requested with different target kinds. Construction always
// succeeds; a missing section surfaces as *UnknownSectionError on
// access.
type View struct {
	store *Store
	name  string
}

// Name returns the bound section name.
func (v *View) Name() string {
	return v.name
}

// Store returns the underlying raw store.
func (v *View) Store() *Store {
	return v.store
}

// Has reports whether option resolves through the section-then-DEFAULTS
// chain, independent of convertibility.
func (v *View) Has(option string) bool {
	_, _, ok := v.store.lookup(v.name, option)
	return ok
}

// Options returns the effective option names visible from the section.
func (v *View) Options() []string {
	return v.store.optionNames(v.name)
}

// Raw returns the uninterpolated raw value of option.
func (v *View) Raw(option string) (string, error) {
	key := normalizeOption(option)
	raw, _, ok := v.store.lookup(v.name, key)
	if !ok {
		if !v.store.HasSection(v.name) {
			return "", &UnknownSectionError{Section: v.name}
		}
		return "", &MissingOptionError{Section: v.name, Option: key}
	}
	return raw, nil
}

// Get returns the interpolated value of option. The fallback, when
// supplied, answers a missing option; interpolation and conversion
// failures are never masked.
func (v *View) Get(option string, fallback ...string) (string, error) {
	return getTyped(v, option, KindString, func(s string) (string, error) { return s, nil }, fallback)
}

// Label returns the conventional label option, defaulting to the
// section name.
func (v *View) Label() string {
	label, err := v.Get("label", v.name)
	if err != nil {
		return v.name
	}
	return label
}

// Value interpolates option and converts it through the kind registry.
// Use the typed accessors when the target kind is known statically.
func (v *View) Value(option, kind string) (any, error) {
	start := time.Now()
	value, err := v.store.resolveOption(v.name, option, nil)
	var result any
	if err == nil {
		result, err = v.store.cfg.converters.Convert(kind, value)
	}
	v.store.logger().LogResolve(ResolveEvent{
		Section:  v.name,
		Option:   normalizeOption(option),
		Kind:     kind,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Int returns option as a signed integer (decimal, or hex with 0x).
func (v *View) Int(option string, fallback ...int64) (int64, error) {
	return getTyped(v, option, KindInt, AsInt, fallback)
}

// Float returns option as a float64.
func (v *View) Float(option string, fallback ...float64) (float64, error) {
	return getTyped(v, option, KindFloat, AsFloat, fallback)
}

// Bool returns option matched against the boolean state table.
func (v *View) Bool(option string, fallback ...bool) (bool, error) {
	return getTyped(v, option, KindBool, AsBool, fallback)
}

// List returns option split into an ordered slice.
func (v *View) List(option string, fallback ...[]string) ([]string, error) {
	return getTyped(v, option, KindList, func(s string) ([]string, error) { return AsList(s), nil }, fallback)
}

// Set returns option split and deduplicated.
func (v *View) Set(option string, fallback ...map[string]struct{}) (map[string]struct{}, error) {
	return getTyped(v, option, KindSet, func(s string) (map[string]struct{}, error) { return AsSet(s), nil }, fallback)
}

// Bytes returns option as a byte count.
func (v *View) Bytes(option string, fallback ...int64) (int64, error) {
	return getTyped(v, option, KindBytes, AsBytes, fallback)
}

// Date returns option as a calendar date or timestamp.
func (v *View) Date(option string, fallback ...time.Time) (time.Time, error) {
	return getTyped(v, option, KindDate, AsDate, fallback)
}

// Duration returns option parsed with the compact duration grammar.
func (v *View) Duration(option string, fallback ...time.Duration) (time.Duration, error) {
	return getTyped(v, option, KindDuration, AsDuration, fallback)
}

// Path returns option as a cleaned filesystem path.
func (v *View) Path(option string, fallback ...string) (string, error) {
	return getTyped(v, option, KindPath, func(s string) (string, error) {
		value, err := defaultConverters.Convert(KindPath, s)
		if err != nil {
			return "", err
		}
		return value.(string), nil
	}, fallback)
}

// getTyped interpolates option and applies conv. A caller fallback
// substitutes only for absence (missing option or section), never for
// interpolation or conversion failures.
func getTyped[T any](v *View, option, kind string, conv func(string) (T, error), fallback []T) (T, error) {
	var zero T
	start := time.Now()
	value, err := v.store.resolveOption(v.name, option, nil)
	if err != nil {
		if len(fallback) > 0 && isAbsence(err) {
			return fallback[0], nil
		}
		v.logResolve(option, kind, start, err)
		return zero, err
	}
	result, err := conv(value)
	v.logResolve(option, kind, start, err)
	if err != nil {
		return zero, err
	}
	return result, nil
}

func (v *View) logResolve(option, kind string, start time.Time, err error) {
	v.store.logger().LogResolve(ResolveEvent{
		Section:  v.name,
		Option:   normalizeOption(option),
		Kind:     kind,
		Duration: time.Since(start),
		Err:      err,
	})
}

func isAbsence(err error) bool {
	var missing *MissingOptionError
	if errors.As(err, &missing) {
		return true
	}
	var unknown *UnknownSectionError
	return errors.As(err, &unknown)
}
