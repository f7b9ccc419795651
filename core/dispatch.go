package core

import (
	"strings"
)

// QualifierSeparator splits a state-qualified method name like
// "nameOfStateA" into the method ("name") and the state ("StateA").
var QualifierSeparator = "Of"

// Call invokes a method on behalf of code outside any stated class.
//
// When a method of this proxy is running (say, a state method calls
// this.Call), the call gets the private scope instead.  See Scope.
func (p *Proxy) Call(method string, args ...interface{}) (interface{}, error) {
	return p.CallFrom(Outside, method, args...)
}

// CallFrom invokes a method on behalf of the given caller.
//
// Resolution:
//
// 1. A proxy method (defined on the class or an ancestor) that is
// visible at the caller's scope is called directly.
//
// 2. A name like "nameOfStateA", where StateA (compared without
// regard to case) is enabled, calls "name" in StateA only, if StateA
// exposes it at the caller's scope.
//
// 3. Otherwise every enabled state is asked.  Exactly one must
// expose the method: none gives MethodNotImplemented, and more than
// one gives AvailableSeveralMethodImplementations.
//
// Errors returned by the method are returned unchanged.
func (p *Proxy) CallFrom(c Caller, method string, args ...interface{}) (interface{}, error) {
	scope, origin := p.Scope(c)
	return p.findMethodToCall(method, scope, origin, args)
}

func (p *Proxy) findMethodToCall(method string, scope Visibility, origin string, args []interface{}) (interface{}, error) {
	if !scope.Valid() {
		return nil, &InvalidArgument{
			Argument: "scope",
			Value:    string(scope),
		}
	}

	if class, m := p.proxyMethod(method, scope, origin); m != nil {
		return p.callInProxy(class, m, args)
	}

	if base, stateName, ok := splitQualified(method); ok {
		if s := p.activeFold(stateName); s != nil {
			visible, err := s.TestMethod(base, scope, origin)
			if err != nil {
				return nil, err
			}
			if visible {
				return p.callInState(s, base, scope, origin, args)
			}
		}
	}

	var (
		found *State
		names []string
	)
	for _, name := range p.active.names {
		s := p.active.states[name]
		visible, err := s.TestMethod(method, scope, origin)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}
		names = append(names, name)
		if found == nil {
			found = s
		}
	}

	switch len(names) {
	case 0:
		return nil, &MethodNotImplemented{Method: method}
	case 1:
		return p.callInState(found, method, scope, origin, args)
	default:
		return nil, &AvailableSeveralMethodImplementations{
			Method: method,
			States: names,
		}
	}
}

// callInState runs the method with the state's class on top of the
// caller stack.  The stack is restored even if the method panics.
func (p *Proxy) callInState(s *State, method string, scope Visibility, origin string, args []interface{}) (interface{}, error) {
	f, err := s.Closure(p, method, scope, origin)
	if err != nil {
		return nil, err
	}
	p.pushCaller(s.StatedClassName())
	defer p.popCaller()
	return f(args...)
}

func (p *Proxy) callInProxy(class *Class, m *MethodDescriptor, args []interface{}) (interface{}, error) {
	p.pushCaller(class.Name)
	defer p.popCaller()
	return m.Impl(p, args...)
}

// proxyMethod finds a proxy method on the class chain (most derived
// first) that is visible at the given scope.
//
// A private proxy method is only visible to its own class.
func (p *Proxy) proxyMethod(name string, scope Visibility, origin string) (*Class, *MethodDescriptor) {
	if ReservedMethodNames[name] {
		return nil, nil
	}
	for c := p.class; c != nil; c = c.Parent {
		m := c.Method(name)
		if m == nil || m.Static || m.Impl == nil {
			continue
		}
		switch m.Visibility.orPublic() {
		case Public:
			return c, m
		case Protected:
			if scope != Public {
				return c, m
			}
		case Private:
			if scope == Private && origin == c.Name {
				return c, m
			}
		}
	}
	return nil, nil
}

// activeFold finds an enabled state by name, ignoring case.
func (p *Proxy) activeFold(name string) *State {
	if s, have := p.active.get(name); have {
		return s
	}
	for _, n := range p.active.names {
		if strings.EqualFold(n, name) {
			return p.active.states[n]
		}
	}
	return nil
}

// splitQualified splits "nameOfStateA" into "name" and "StateA" at
// the last QualifierSeparator.
func splitQualified(method string) (string, string, bool) {
	i := strings.LastIndex(method, QualifierSeparator)
	if i <= 0 {
		return "", "", false
	}
	state := method[i+len(QualifierSeparator):]
	if state == "" {
		return "", "", false
	}
	return method[:i], state, true
}
