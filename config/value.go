// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"fmt"
)

// Value represents a configuration value that may or may not be set.
// It distinguishes between "not set" and "set to the zero value".
type Value[T any] struct {
	v   T
	set bool
}

// ValueOf returns a Value which is set to v.
func ValueOf[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// Value returns the underlying value and whether it was set.
func (v Value[T]) Value() (T, bool) {
	return v.v, v.set
}

// Or returns the underlying value if set, otherwise def.
func (v Value[T]) Or(def T) T {
	if !v.set {
		return def
	}
	return v.v
}

// IsZero reports whether the value is unset. It is used by both
// encoding/json (omitzero) and yaml (omitempty) to skip unset values.
func (v Value[T]) IsZero() bool {
	return !v.set
}

// String implements the fmt.Stringer interface.
func (v Value[T]) String() string {
	if !v.set {
		return "<unset>"
	}
	return fmt.Sprint(v.v)
}

// MarshalJSON implements the json.Marshaler interface.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// MarshalYAML implements the yaml.Marshaler interface.
func (v Value[T]) MarshalYAML() (any, error) {
	if !v.set {
		return nil, nil
	}
	return v.v, nil
}
