package core

// These errors are immediate and non-retryable.  Nothing in this
// package recovers from them.
//
// Errors returned by method bodies are never wrapped; callers see
// exactly what the method returned.

import (
	"errors"
	"strings"
)

// MethodNotImplemented occurs when no active state exposes the
// requested method at the resolved scope, or when the method name is
// reserved or static.
type MethodNotImplemented struct {
	Method string

	// State is the state that was probed, if the lookup targeted
	// a single state.
	State string
}

func (e *MethodNotImplemented) Error() string {
	if e.State != "" {
		return `method "` + e.Method + `" is not available in state "` + e.State + `"`
	}
	return `method "` + e.Method + `" is not available with active states`
}

// AvailableSeveralMethodImplementations occurs when two or more active
// states expose the same method at the resolved scope.  Use the
// <method>Of<State> form to pick one.
type AvailableSeveralMethodImplementations struct {
	Method string
	States []string
}

func (e *AvailableSeveralMethodImplementations) Error() string {
	return `method "` + e.Method + `" has several implementations in states ` +
		strings.Join(e.States, ", ")
}

// StateNotFound occurs when an operation references a state that
// isn't registered (or isn't active, for DisableState).
type StateNotFound struct {
	State string
}

func (e *StateNotFound) Error() string {
	return `state "` + e.State + `" is not available`
}

// IllegalName occurs when a state or property identifier is not a
// valid (non-empty) name.
type IllegalName struct {
	Name string
}

func (e *IllegalName) Error() string {
	return `illegal identifier "` + e.Name + `"`
}

// InvalidArgument occurs when an internal token (like a scope) isn't
// one of the recognized values.
type InvalidArgument struct {
	Argument string
	Value    string
}

func (e *InvalidArgument) Error() string {
	return `invalid ` + e.Argument + ` "` + e.Value + `"`
}

// IllegalProxy occurs when a proxy can't be wired to a stated class.
type IllegalProxy struct {
	Class  string
	Reason string
}

func (e *IllegalProxy) Error() string {
	return `illegal proxy for class "` + e.Class + `": ` + e.Reason
}

// IllegalState occurs when a state can't be built or registered.
type IllegalState struct {
	State  string
	Reason string
}

func (e *IllegalState) Error() string {
	return `illegal state "` + e.State + `": ` + e.Reason
}

// IllegalProperty occurs when code outside a stated object touches a
// non-public property.
type IllegalProperty struct {
	Class    string
	Property string
}

func (e *IllegalProperty) Error() string {
	return `cannot access non-public property ` + e.Class + `::` + e.Property
}

// UndefinedProperty occurs when reading a property that doesn't
// exist.
type UndefinedProperty struct {
	Class    string
	Property string
}

func (e *UndefinedProperty) Error() string {
	return `undefined property ` + e.Class + `::` + e.Property
}

// InterpreterNotFound occurs when you try to Compile a MethodSource,
// and the required interpreter isn't in the given map of
// interpreters.
var InterpreterNotFound = errors.New("interpreter not found")
