package enum

import (
	"fmt"
	"reflect"
)

var registry = map[string]any{}

type enum[T comparable] struct {
	byName map[string]T
}

// New registers a value of a string-based enum type. Registering every value
// at package init makes ToEnum an exhaustive membership check for the type.
func New[T comparable](value T) T {
	v := reflect.ValueOf(value)
	t := v.Type()
	if _, ok := registry[t.Name()]; !ok {
		registry[t.Name()] = enum[T]{byName: make(map[string]T)}
	}

	registry[t.Name()].(enum[T]).byName[v.String()] = value
	return value
}

// ToEnum converts a raw string into a registered enum value of type T. It
// returns an error if the string was never registered with New.
func ToEnum[T comparable](s string) (T, error) {
	var zero T
	e, ok := registry[reflect.TypeOf(zero).Name()]
	if !ok {
		return zero, fmt.Errorf("unregistered enum type %T", zero)
	}

	value, ok := e.(enum[T]).byName[s]
	if !ok {
		return zero, fmt.Errorf("value %s is not a member of enum %T", s, zero)
	}

	return value, nil
}
