package sections

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminated indicates a placeholder opened with %( but never
	// closed with )s.
	ErrUnterminated = errors.New("sections: unterminated placeholder")
	// ErrUnknownReference indicates a placeholder reference that resolved
	// to an option absent from both the section and DEFAULTS.
	ErrUnknownReference = errors.New("sections: unknown reference")
	// ErrCycle indicates a reference chain that re-entered an option
	// already being expanded.
	ErrCycle = errors.New("sections: interpolation cycle")
)

// InterpolationError reports a failure while expanding placeholders in a
// raw value. Value holds the fragment being expanded when the failure
// occurred.
type InterpolationError struct {
	Section   string
	Option    string
	Value     string
	Reference string
	Err       error
}

func (e *InterpolationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reference != "" {
		return fmt.Sprintf("%v: %q in section %q while expanding %q", e.Err, e.Reference, e.Section, e.Value)
	}
	return fmt.Sprintf("%v: section %q while expanding %q", e.Err, e.Section, e.Value)
}

func (e *InterpolationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConversionError reports an interpolated string that does not match the
// grammar of the requested kind.
type ConversionError struct {
	Kind  string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("sections: cannot convert %q to %s: %v", e.Value, e.Kind, e.Err)
	}
	return fmt.Sprintf("sections: cannot convert %q to %s", e.Value, e.Kind)
}

func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func convErr(kind, value string, err error) error {
	return &ConversionError{Kind: kind, Value: value, Err: err}
}

// MissingOptionError reports an option absent from both the section and
// DEFAULTS when no caller fallback was supplied.
type MissingOptionError struct {
	Section string
	Option  string
}

func (e *MissingOptionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("sections: option %q not found in section %q", e.Option, e.Section)
}

// UnknownSectionError reports a section name absent from the store,
// typically raised during group traversal.
type UnknownSectionError struct {
	Section string
}

func (e *UnknownSectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("sections: unknown section %q", e.Section)
}
