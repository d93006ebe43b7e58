package sections

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// Kind names accepted by Converters.Convert and View.Value.
const (
	KindString   = "string"
	KindInt      = "int"
	KindFloat    = "float"
	KindBool     = "bool"
	KindList     = "list"
	KindSet      = "set"
	KindBytes    = "bytes"
	KindDate     = "date"
	KindDuration = "duration"
	KindPath     = "path"
)

// Converter turns a fully-interpolated string into a typed value.
type Converter func(value string) (any, error)

// Converters maps kind names to conversion functions.
type Converters struct {
	mu    sync.RWMutex
	kinds map[string]Converter
}

// NewConverters constructs a registry preloaded with the built-in kinds.
func NewConverters() *Converters {
	c := &Converters{kinds: make(map[string]Converter)}
	for kind, fn := range builtinConverters {
		c.kinds[kind] = fn
	}
	return c
}

// Register stores fn under kind, replacing any built-in of the same name.
func (c *Converters) Register(kind string, fn Converter) error {
	if kind == "" {
		return fmt.Errorf("sections: kind name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("sections: converter %q is nil", kind)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kinds == nil {
		c.kinds = make(map[string]Converter)
	}
	c.kinds[strings.ToLower(kind)] = fn
	return nil
}

// Convert applies the converter registered for kind to value.
func (c *Converters) Convert(kind, value string) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("sections: converter registry is nil")
	}
	c.mu.RLock()
	fn := c.kinds[strings.ToLower(kind)]
	c.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("sections: unknown kind %q", kind)
	}
	result, err := fn(value)
	if err != nil {
		if _, ok := err.(*ConversionError); ok {
			return nil, err
		}
		return nil, convErr(kind, value, err)
	}
	return result, nil
}

// Kinds returns registered kind names sorted alphabetically.
func (c *Converters) Kinds() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	kinds := make([]string, 0, len(c.kinds))
	for kind := range c.kinds {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Clone returns a shallow copy of the registry.
func (c *Converters) Clone() *Converters {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	clone := &Converters{kinds: make(map[string]Converter, len(c.kinds))}
	for kind, fn := range c.kinds {
		clone.kinds[kind] = fn
	}
	return clone
}

var defaultConverters = NewConverters()

var builtinConverters = map[string]Converter{
	KindString:   func(value string) (any, error) { return value, nil },
	KindInt:      func(value string) (any, error) { return AsInt(value) },
	KindFloat:    func(value string) (any, error) { return AsFloat(value) },
	KindBool:     func(value string) (any, error) { return AsBool(value) },
	KindList:     func(value string) (any, error) { return AsList(value), nil },
	KindSet:      func(value string) (any, error) { return AsSet(value), nil },
	KindBytes:    func(value string) (any, error) { return AsBytes(value) },
	KindDate:     func(value string) (any, error) { return AsDate(value) },
	KindDuration: func(value string) (any, error) { return AsDuration(value) },
	KindPath:     func(value string) (any, error) { return filepath.Clean(value), nil },
}

// AsInt parses a signed integer. Decimal by default; a 0x/0X prefix
// selects hexadecimal.
func AsInt(value string) (int64, error) {
	s := strings.TrimSpace(value)
	body, sign := s, int64(1)
	if strings.HasPrefix(body, "+") {
		body = body[1:]
	} else if strings.HasPrefix(body, "-") {
		body = body[1:]
		sign = -1
	}
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		n, err := strconv.ParseInt(body[2:], 16, 64)
		if err != nil {
			return 0, convErr(KindInt, value, err)
		}
		return sign * n, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, convErr(KindInt, value, err)
	}
	return n, nil
}

// AsFloat parses a floating point number.
func AsFloat(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, convErr(KindFloat, value, err)
	}
	return f, nil
}

var booleanStates = map[string]bool{
	"true": true, "yes": true, "on": true, "1": true,
	"false": false, "no": false, "off": false, "0": false,
}

// AsBool matches value case-insensitively against the boolean state
// table {true,yes,on,1} / {false,no,off,0}.
func AsBool(value string) (bool, error) {
	state, ok := booleanStates[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return false, convErr(KindBool, value, fmt.Errorf("not a boolean"))
	}
	return state, nil
}

// AsList splits value into an ordered slice. Whitespace separated by
// default; when value contains a comma, elements split on commas with
// surrounding whitespace trimmed.
func AsList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		out := make([]string, len(parts))
		for i, part := range parts {
			out[i] = strings.TrimSpace(part)
		}
		return out
	}
	return strings.Fields(value)
}

// AsSet applies the list splitting grammar and deduplicates.
func AsSet(value string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, item := range AsList(value) {
		out[item] = struct{}{}
	}
	return out
}

// AsBytes parses a byte size with optional unit suffix. Binary units
// (KiB, MiB, ...) are base-1024; decimal units (KB, MB, ...) base-1000.
func AsBytes(value string) (int64, error) {
	n, err := humanize.ParseBytes(strings.TrimSpace(value))
	if err != nil {
		return 0, convErr(KindBytes, value, err)
	}
	if n > math.MaxInt64 {
		return 0, convErr(KindBytes, value, fmt.Errorf("size overflows int64"))
	}
	return int64(n), nil
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}

// AsDate parses an ISO-8601 calendar date, an RFC3339 timestamp, or a
// date with a space-separated time component.
func AsDate(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, convErr(KindDate, value, fmt.Errorf("unrecognized date"))
}

var durationUnits = map[string]time.Duration{
	"seconds": time.Second,
	"minutes": time.Minute,
	"hours":   time.Hour,
	"days":    24 * time.Hour,
	"weeks":   7 * 24 * time.Hour,
}

var daysPattern = regexp.MustCompile(`^([+-]?\d+(?:\.\d+)?)\s*d$`)

// AsDuration parses the compact duration grammar: a bare number is a
// count of seconds, a magnitude with an s/m/h/d suffix (Go compound
// forms such as 1h30m included), or comma-separated unit=value keyword
// pairs over seconds, minutes, hours, days, and weeks, summed.
func AsDuration(value string) (time.Duration, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, convErr(KindDuration, value, fmt.Errorf("empty duration"))
	}
	if strings.Contains(s, "=") {
		var total time.Duration
		for _, pair := range strings.Split(s, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return 0, convErr(KindDuration, value, fmt.Errorf("malformed pair %q", pair))
			}
			unit, known := durationUnits[strings.ToLower(strings.TrimSpace(k))]
			if !known {
				return 0, convErr(KindDuration, value, fmt.Errorf("unknown unit %q", strings.TrimSpace(k)))
			}
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return 0, convErr(KindDuration, value, err)
			}
			total += time.Duration(n) * unit
		}
		return total, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	if m := daysPattern.FindStringSubmatch(s); m != nil {
		days, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, convErr(KindDuration, value, err)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, convErr(KindDuration, value, err)
	}
	return d, nil
}
