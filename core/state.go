/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

// State is a named bundle of methods: one behavioral facet of a
// stated class.
//
// A State knows the stated class that defined it.  When a State is
// inherited by a subclass, it runs in private mode: its private
// methods can then only be reached by code that belongs to the
// defining class.
//
// A State is immutable after construction except for two caches: the
// method description cache (which also remembers absent names) and
// the closures bound to each proxy.
type State struct {
	name            string
	statedClassName string
	privateMode     bool
	aliases         []string

	// methods is the capability table in declaration order.
	methods []*MethodDescriptor
	table   map[string]*MethodDescriptor

	// descriptions caches MethodDescription lookups.  A nil value
	// means the name is known to be absent.
	descriptions map[string]*MethodDescriptor

	// closures is keyed by proxy id and then method name.
	closures map[string]map[string]Closure
}

// NewState builds a State with the given capability table.
//
// When two descriptors have the same name, the first one wins.
// Descriptors with no Visibility are public.
func NewState(name, statedClassName string, privateMode bool, aliases []string, methods ...*MethodDescriptor) *State {
	s := &State{
		name:            name,
		statedClassName: statedClassName,
		privateMode:     privateMode,
		aliases:         copyStrings(aliases),
		methods:         make([]*MethodDescriptor, 0, len(methods)),
		table:           make(map[string]*MethodDescriptor, len(methods)),
	}
	for _, m := range methods {
		if m == nil || m.Name == "" {
			continue
		}
		if _, have := s.table[m.Name]; have {
			continue
		}
		d := m.Copy()
		d.Visibility = d.Visibility.orPublic()
		s.methods = append(s.methods, d)
		s.table[d.Name] = d
	}
	s.resetCaches()
	return s
}

func (s *State) resetCaches() {
	s.descriptions = make(map[string]*MethodDescriptor, len(s.methods))
	s.closures = make(map[string]map[string]Closure)
}

// Name returns the name the State was built with.  A proxy may
// register the State under a different name.
func (s *State) Name() string {
	return s.name
}

// StatedClassName is the name of the class that defined this state.
func (s *State) StatedClassName() string {
	return s.statedClassName
}

// IsPrivateMode reports whether the state's private methods are
// restricted to its defining class.
func (s *State) IsPrivateMode() bool {
	return s.privateMode
}

// Aliases returns a copy of the alternate names of the state.
func (s *State) Aliases() []string {
	return copyStrings(s.aliases)
}

// Copy makes an independent State with the same capability table and
// empty caches.
func (s *State) Copy() *State {
	acc := &State{
		name:            s.name,
		statedClassName: s.statedClassName,
		privateMode:     s.privateMode,
		aliases:         copyStrings(s.aliases),
		methods:         make([]*MethodDescriptor, len(s.methods)),
		table:           make(map[string]*MethodDescriptor, len(s.table)),
	}
	for i, d := range s.methods {
		acc.methods[i] = d
		acc.table[d.Name] = d
	}
	acc.resetCaches()
	return acc
}

// ListMethods returns the names of the callable methods in
// declaration order.
//
// Static methods are never listed.  In private mode, private methods
// aren't listed either.
func (s *State) ListMethods() []string {
	acc := make([]string, 0, len(s.methods))
	for _, d := range s.methods {
		if d.Static || ReservedMethodNames[d.Name] {
			continue
		}
		if s.privateMode && d.Visibility == Private {
			continue
		}
		acc = append(acc, d.Name)
	}
	return acc
}

// MethodDescription returns the descriptor for the given method.
//
// Fails with MethodNotImplemented if the name is reserved, static, or
// simply not there.  Results (including failures) are cached.
func (s *State) MethodDescription(name string) (*MethodDescriptor, error) {
	if ReservedMethodNames[name] {
		return nil, s.notImplemented(name)
	}
	if d, have := s.descriptions[name]; have {
		if d == nil {
			return nil, s.notImplemented(name)
		}
		return d, nil
	}
	d, have := s.table[name]
	if !have || d.Static || d.Impl == nil {
		s.descriptions[name] = nil
		return nil, s.notImplemented(name)
	}
	s.descriptions[name] = d
	return d, nil
}

// TestMethod reports whether the method exists and is visible at the
// given scope for a call whose origin is the given stated class.
//
// The origin only matters when the state is in private mode.
func (s *State) TestMethod(name string, scope Visibility, origin string) (bool, error) {
	d, err := s.MethodDescription(name)
	if err != nil {
		return false, nil
	}
	return s.checkVisibility(d, scope, origin)
}

// Closure returns the method bound to the given proxy.
//
// One closure is built per (proxy, method) and cached, but the
// visibility check is done on every request.
func (s *State) Closure(p *Proxy, name string, scope Visibility, origin string) (Closure, error) {
	d, err := s.MethodDescription(name)
	if err != nil {
		return nil, err
	}

	bound, have := s.closures[p.id]
	if !have {
		bound = make(map[string]Closure)
		s.closures[p.id] = bound
	}
	c, have := bound[name]
	if !have {
		impl := d.Impl
		c = func(args ...interface{}) (interface{}, error) {
			return impl(p, args...)
		}
		bound[name] = c
	}

	visible, err := s.checkVisibility(d, scope, origin)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, s.notImplemented(name)
	}
	return c, nil
}

// forget drops the closures bound to the given proxy.
func (s *State) forget(p *Proxy) {
	delete(s.closures, p.id)
}

// checkVisibility implements the visibility rule:
//
// A public scope sees public methods only.  A protected scope sees
// public and protected methods.  A private scope sees everything,
// except that a private-mode state hides its private methods from
// origins other than its defining class.
//
// Private mode never hides protected methods.  That's what lets a
// subclass use the protected methods of an inherited state.
func (s *State) checkVisibility(d *MethodDescriptor, scope Visibility, origin string) (bool, error) {
	v := d.Visibility.orPublic()
	switch scope {
	case Private:
		if s.privateMode && origin != s.statedClassName && v == Private {
			return false, nil
		}
		return true, nil
	case Protected:
		return v != Private, nil
	case Public:
		return v == Public, nil
	default:
		return false, &InvalidArgument{
			Argument: "scope",
			Value:    string(scope),
		}
	}
}

func (s *State) notImplemented(method string) error {
	return &MethodNotImplemented{
		Method: method,
		State:  s.name,
	}
}
