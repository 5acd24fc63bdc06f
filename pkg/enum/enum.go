// Package enum keeps a registry of string-backed enum values so request
// fields can be parsed back into their typed form.
package enum

import (
	"fmt"
	"reflect"
)

var registry = map[reflect.Type]map[string]any{}

// New registers a value and returns it, so declarations read as plain
// variable assignments. Not safe for concurrent use, call it from package
// level var blocks only.
func New[T ~string](value T) T {
	t := reflect.TypeOf(value)
	if registry[t] == nil {
		registry[t] = map[string]any{}
	}

	registry[t][string(value)] = value
	return value
}

// ToEnum parses s into a registered value of type T.
func ToEnum[T ~string](s string) (T, error) {
	var zero T
	values, ok := registry[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("unregistered enum type %T", zero)
	}

	value, ok := values[s]
	if !ok {
		return zero, fmt.Errorf("%q is not a valid %T", s, zero)
	}

	return value.(T), nil
}
