package core

import "strings"

var (
	// DefaultStateName is the state a proxy starts in when no
	// other state is requested and the class doesn't name its
	// own default.
	DefaultStateName = "StateDefault"

	// StatesNamespace is the path segment between a stated class
	// name and a state name in a canonical state name like
	// "acme/Article/States/Published".
	StatesNamespace = "States"

	// NamespaceSeparator separates the segments of class names
	// and canonical state names.
	NamespaceSeparator = "/"
)

// Class is the definition of a stated class.
//
// A Class isn't a runtime object.  It names a class, points at its
// (optional) parent, and gives the states, proxy methods, and
// properties that the class itself defines.  States of ancestors
// that the class doesn't override are inherited.
type Class struct {
	// Name is the fully-qualified name of the class, like
	// "acme/extendable/Daughter".
	Name string `json:"name"`

	Parent *Class `json:"-"`

	Doc string `json:"doc,omitempty"`

	// DefaultState is the initial state for new instances.  When
	// empty, DefaultStateName is used.
	DefaultState string `json:"defaultState,omitempty"`

	// States are the states defined (or overridden) by this
	// class, in order.
	States []*StateDef `json:"states,omitempty"`

	// Methods are defined on the proxy itself.  They are reachable
	// regardless of the enabled states and take precedence over
	// state methods.
	Methods []*MethodDescriptor `json:"methods,omitempty"`

	Properties []*PropertyDef `json:"properties,omitempty"`
}

// StateDef is the definition of a state within a Class.
type StateDef struct {
	Name    string              `json:"name"`
	Doc     string              `json:"doc,omitempty"`
	Aliases []string            `json:"aliases,omitempty"`
	Methods []*MethodDescriptor `json:"methods,omitempty"`

	// Extends, if not nil, is a state definition (usually the one
	// with the same name in an ancestor class) whose methods this
	// state inherits unless it overrides them.
	Extends *StateDef `json:"-"`
}

// PropertyDef declares a property of a stated class.
type PropertyDef struct {
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility,omitempty"`
	Value      interface{} `json:"value,omitempty"`
}

// AllMethods returns the state's own methods followed by the
// inherited ones it doesn't override.
func (d *StateDef) AllMethods() []*MethodDescriptor {
	acc := make([]*MethodDescriptor, 0, len(d.Methods))
	seen := make(map[string]bool, len(d.Methods))
	for def := d; def != nil; def = def.Extends {
		for _, m := range def.Methods {
			if m == nil || seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			acc = append(acc, m)
		}
	}
	return acc
}

// DefaultStateName returns the name of the state that new instances
// start in.
func (c *Class) DefaultStateName() string {
	if c.DefaultState != "" {
		return c.DefaultState
	}
	return DefaultStateName
}

// Ancestors returns the parent, the grandparent, and so on.
func (c *Class) Ancestors() []*Class {
	var acc []*Class
	for a := c.Parent; a != nil; a = a.Parent {
		acc = append(acc, a)
	}
	return acc
}

// IsSubclassOf reports whether c is a strict descendant of the class
// with the given name.
func (c *Class) IsSubclassOf(name string) bool {
	if c == nil {
		return false
	}
	for a := c.Parent; a != nil; a = a.Parent {
		if a.Name == name {
			return true
		}
	}
	return false
}

// StateDef finds a state defined by this class (not by an ancestor).
func (c *Class) StateDef(name string) *StateDef {
	for _, d := range c.States {
		if d != nil && d.Name == name {
			return d
		}
	}
	return nil
}

// Method finds a proxy method defined by this class (not by an
// ancestor).
func (c *Class) Method(name string) *MethodDescriptor {
	for _, m := range c.Methods {
		if m != nil && m.Name == name {
			return m
		}
	}
	return nil
}

// StatesPrefix returns the prefix of canonical state names for this
// class.
func (c *Class) StatesPrefix() string {
	return c.Name + NamespaceSeparator + StatesNamespace + NamespaceSeparator
}

// CanonicalStateName gives the fully-qualified name of a state of
// this class.
func (c *Class) CanonicalStateName(state string) string {
	return c.StatesPrefix() + state
}

// ShortName is the last segment of the class name.
func (c *Class) ShortName() string {
	if i := strings.LastIndex(c.Name, NamespaceSeparator); 0 <= i {
		return c.Name[i+len(NamespaceSeparator):]
	}
	return c.Name
}
