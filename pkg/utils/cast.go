package utils

import (
	"fmt"
	"reflect"
)

var ErrNilParam = fmt.Errorf("cast error: got nil param")

// SafeCast asserts values loaded from untyped caches.
func SafeCast[T any](param any) (T, error) {
	var zero T

	if param == nil {
		return zero, ErrNilParam
	}

	v, ok := param.(T)
	if !ok {
		return zero, fmt.Errorf("cast error: got type: %s, want type: %s", reflect.TypeOf(param).String(), reflect.TypeOf(zero).String())
	}

	return v, nil
}

func Ptr[T any](v T) *T {
	return &v
}

// Clamp returns def for non-positive n and caps it at max.
func Clamp(n, def, max int) int {
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
