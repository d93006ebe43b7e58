package sections

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// Bind hydrates a struct from the section through the conversion layer.
// target must be a pointer to a struct. Option names come from the
// `config` tag, defaulting to the lowercased field name; a second tag
// element forces the conversion kind (e.g. `config:"quota,bytes"`), and
// `config:"-"` skips the field. Options absent from the section leave
// the field untouched, so struct literals double as defaults.
func (v *View) Bind(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("sections: bind target must be a non-nil struct pointer, got %T", target)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		option, kind := bindSpec(field)
		if option == "-" {
			continue
		}
		if !v.Has(option) {
			continue
		}
		if kind == "" {
			var err error
			kind, err = kindForType(field.Type)
			if err != nil {
				return fmt.Errorf("sections: field %s: %w", field.Name, err)
			}
		}
		value, err := v.Value(option, kind)
		if err != nil {
			return err
		}
		if err := assign(rv.Field(i), value); err != nil {
			return fmt.Errorf("sections: field %s: %w", field.Name, err)
		}
	}
	return nil
}

func bindSpec(field reflect.StructField) (option, kind string) {
	tag := field.Tag.Get("config")
	if tag == "" {
		return strings.ToLower(field.Name), ""
	}
	option, kind, _ = strings.Cut(tag, ",")
	if option == "" {
		option = strings.ToLower(field.Name)
	}
	return option, kind
}

func kindForType(t reflect.Type) (string, error) {
	switch t {
	case durationType:
		return KindDuration, nil
	case timeType:
		return KindDate, nil
	}
	switch t.Kind() {
	case reflect.String:
		return KindString, nil
	case reflect.Bool:
		return KindBool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, nil
	case reflect.Float32, reflect.Float64:
		return KindFloat, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.String {
			return KindList, nil
		}
	case reflect.Map:
		if t.Key().Kind() == reflect.String && t.Elem() == reflect.TypeOf(struct{}{}) {
			return KindSet, nil
		}
	}
	return "", fmt.Errorf("unsupported type %s", t)
}

func assign(field reflect.Value, value any) error {
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}
