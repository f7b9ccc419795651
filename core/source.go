package core

import (
	"context"
)

// DefaultInterpreters will be used in MethodSource.Compile if given
// nil interpreters.
var DefaultInterpreters = NewInterpretersMap()

// Interpreter can compile and execute code for method bodies that
// are given as data (say, in a YAML class specification) rather than
// as Go functions.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code interface{}) (interface{}, error)

	// Exec executes the code with the proxy as the receiver.  The
	// result of a previous Compile() might be provided.
	Exec(this *Proxy, args []interface{}, code interface{}, compiled interface{}) (interface{}, error)
}

// InterpretersMap maps interpreter names (as used in
// MethodSource.Interpreter) to Interpreters.
type InterpretersMap map[string]Interpreter

// NewInterpretersMap makes an empty map.
func NewInterpretersMap() InterpretersMap {
	return make(InterpretersMap)
}

// Find returns the named interpreter (or nil).
func (m InterpretersMap) Find(name string) Interpreter {
	return m[name]
}

// MethodSource can be compiled to a Method.
type MethodSource struct {
	Interpreter string      `json:"interpreter,omitempty" yaml:"interpreter,omitempty"`
	Source      interface{} `json:"source" yaml:"source"`
}

// Copy makes a shallow copy.
func (s *MethodSource) Copy() *MethodSource {
	if s == nil {
		return nil
	}
	return &MethodSource{
		Interpreter: s.Interpreter,
		Source:      s.Source,
	}
}

// Compile attempts to compile the MethodSource into a Method using
// the given interpreters, which defaults to DefaultInterpreters.
func (s *MethodSource) Compile(ctx context.Context, interpreters InterpretersMap) (Method, error) {
	if interpreters == nil {
		interpreters = DefaultInterpreters
	}

	interpreter, have := interpreters[s.Interpreter]
	if !have {
		return nil, InterpreterNotFound
	}

	x, err := interpreter.Compile(ctx, s.Source)
	if err != nil {
		return nil, err
	}

	src := s.Source
	return func(this *Proxy, args ...interface{}) (interface{}, error) {
		return interpreter.Exec(this, args, src, x)
	}, nil
}
