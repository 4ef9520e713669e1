// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package screen

import "fmt"

// InvalidIntError occurs when the value of an integer field
// is not a base-10 integer within the range of the field.
type InvalidIntError struct {
	Key   string
	Value string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidIntError) Error() string {
	return fmt.Sprintf("invalid integer for key %s: %s", e.Key, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidIntError) Unwrap() error {
	return e.Cause
}

// InvalidFloatError occurs when the value of a fractional
// field is not a decimal floating point number.
type InvalidFloatError struct {
	Key   string
	Value string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidFloatError) Error() string {
	return fmt.Sprintf("invalid float for key %s: %s", e.Key, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidFloatError) Unwrap() error {
	return e.Cause
}

// UnknownGlobalKeyError is only returned when parsing with [Strict].
type UnknownGlobalKeyError struct {
	Key string
}

// Error implements the [builtin.error] interface.
func (e UnknownGlobalKeyError) Error() string {
	return fmt.Sprintf("unknown global key: %s", e.Key)
}
