package core

// Method is the implementation of a state (or proxy) method.
//
// The receiver is always the proxy, never the State that declares the
// method, so a method body that wants to reach other behavior calls
// this.Call(...).  The args slice is the one given to the dispatcher;
// a method can modify its elements and the caller will see the
// changes.
type Method func(this *Proxy, args ...interface{}) (interface{}, error)

// Closure is a Method bound to a particular proxy.
type Closure func(args ...interface{}) (interface{}, error)

// MethodDescriptor is one entry in a capability table.
type MethodDescriptor struct {
	Name       string     `json:"name" yaml:"name"`
	Visibility Visibility `json:"visibility,omitempty" yaml:"visibility,omitempty"`

	// Static methods are never listed and never resolvable.  State
	// behavior only applies to instances.
	Static bool `json:"static,omitempty" yaml:"static,omitempty"`

	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Impl is the Go implementation.  Can be built from Source via
	// MethodSource.Compile.
	Impl Method `json:"-" yaml:"-"`

	// Source, if given, is what Impl was compiled from.  Kept
	// around for documentation and analysis.
	Source *MethodSource `json:"source,omitempty" yaml:"source,omitempty"`
}

// NewMethod makes a MethodDescriptor.
func NewMethod(name string, v Visibility, impl Method) *MethodDescriptor {
	return &MethodDescriptor{
		Name:       name,
		Visibility: v,
		Impl:       impl,
	}
}

// PublicMethod is shorthand for NewMethod(name, Public, impl).
func PublicMethod(name string, impl Method) *MethodDescriptor {
	return NewMethod(name, Public, impl)
}

// ProtectedMethod is shorthand for NewMethod(name, Protected, impl).
func ProtectedMethod(name string, impl Method) *MethodDescriptor {
	return NewMethod(name, Protected, impl)
}

// PrivateMethod is shorthand for NewMethod(name, Private, impl).
func PrivateMethod(name string, impl Method) *MethodDescriptor {
	return NewMethod(name, Private, impl)
}

// Copy makes a shallow copy.  Impl and Source are shared.
func (d *MethodDescriptor) Copy() *MethodDescriptor {
	if d == nil {
		return nil
	}
	acc := *d
	return &acc
}

// ReservedMethodNames are the names of a state's own lifecycle
// methods.  These names are never exposed as capabilities.
var ReservedMethodNames = map[string]bool{
	"__construct":          true,
	"__destruct":           true,
	"getReflectionClass":   true,
	"checkVisibility":      true,
	"listMethods":          true,
	"testMethod":           true,
	"getMethodDescription": true,
	"getClosure":           true,
	"setPrivateMode":       true,
	"isPrivateMode":        true,
	"getStatedClassName":   true,
	"setStatedClassName":   true,
	"setStateAliases":      true,
	"getStateAliases":      true,
}
