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

import (
	"strings"

	"github.com/google/uuid"
)

// Proxy is an instance of a stated class: the object that callers
// interact with.
//
// A Proxy owns the registry of all known states, the subset that is
// currently enabled, and the stack of stated classes whose methods
// are currently running on it.  Any method call is routed through
// the dispatcher (see Call), which finds exactly one enabled state
// that exposes the method at the caller's scope.
//
// A Proxy is not safe for concurrent use.
type Proxy struct {
	id    string
	class *Class

	states *stateList
	active *stateList

	// activeAliases are the folded aliases of the active states.
	activeAliases map[string]bool

	// callers is a stack of stated class names.  A name is pushed
	// when the dispatcher enters a method and popped when the
	// method returns.
	callers []string

	props map[string]interface{}
}

// NewProxy makes a Proxy for the given class with no states.
//
// Usually a proxy is built by a factory, which also registers the
// class's states and enables the initial one.  A nil class gives an
// anonymous class with no name.
func NewProxy(class *Class) *Proxy {
	if class == nil {
		class = &Class{}
	}
	p := &Proxy{
		id:            uuid.NewString(),
		class:         class,
		states:        newStateList(),
		active:        newStateList(),
		activeAliases: make(map[string]bool),
		props:         make(map[string]interface{}),
	}
	p.initProperties()
	return p
}

// Id returns the identity of this proxy.  Clones get a new one.
func (p *Proxy) Id() string {
	return p.id
}

// Class returns the stated class of this proxy.
func (p *Proxy) Class() *Class {
	return p.class
}

// ClassName returns the name of the stated class of this proxy.
func (p *Proxy) ClassName() string {
	return p.class.Name
}

// Clone makes an independent copy of the proxy.
//
// Every state is copied, the enabled states are enabled again (by
// name) on the copy, the caller stack starts empty, and properties
// are copied (shallowly).  Enabling or disabling states on one proxy
// never affects the other.
func (p *Proxy) Clone() *Proxy {
	acc := &Proxy{
		id:            uuid.NewString(),
		class:         p.class,
		states:        newStateList(),
		active:        newStateList(),
		activeAliases: make(map[string]bool),
		props:         make(map[string]interface{}, len(p.props)),
	}
	p.states.each(func(name string, s *State) {
		acc.states.set(name, s.Copy())
	})
	for _, name := range p.active.keys() {
		s, _ := acc.states.get(name)
		acc.active.set(name, s)
	}
	acc.buildAliases()
	for k, v := range p.props {
		acc.props[k] = v
	}
	return acc
}

// validateName checks that the name is usable and strips a canonical
// prefix like "acme/Daughter/States/" if the prefix belongs to the
// proxy's class or to one of its ancestors.
func (p *Proxy) validateName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", &IllegalName{Name: name}
	}
	for c := p.class; c != nil; c = c.Parent {
		if c.Name == "" {
			continue
		}
		if prefix := c.StatesPrefix(); strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return name, nil
}

// RegisterState adds (or replaces) a state under the given name.
//
// Registering doesn't enable.  If the name is already enabled, the
// new state replaces the old one in the enabled set too.
func (p *Proxy) RegisterState(name string, s *State) error {
	name, err := p.validateName(name)
	if err != nil {
		return err
	}
	if s == nil {
		return &IllegalState{
			State:  name,
			Reason: "nil state",
		}
	}
	p.states.set(name, s)
	if _, have := p.active.get(name); have {
		p.active.set(name, s)
		p.buildAliases()
	}
	return nil
}

// UnregisterState removes the state from both the registry and the
// enabled set.
func (p *Proxy) UnregisterState(name string) error {
	name, err := p.validateName(name)
	if err != nil {
		return err
	}
	s, have := p.states.get(name)
	if !have {
		return &StateNotFound{State: name}
	}
	p.states.remove(name)
	if p.active.remove(name) {
		p.buildAliases()
	}
	s.forget(p)
	return nil
}

// EnableState adds a registered state to the enabled set.
//
// Enabling an enabled state does nothing.
func (p *Proxy) EnableState(name string) error {
	name, err := p.validateName(name)
	if err != nil {
		return err
	}
	s, have := p.states.get(name)
	if !have {
		return &StateNotFound{State: name}
	}
	p.active.set(name, s)
	p.buildAliases()
	return nil
}

// DisableState removes a state from the enabled set.  The state stays
// registered.
//
// Disabling a state that isn't enabled fails with StateNotFound.
func (p *Proxy) DisableState(name string) error {
	name, err := p.validateName(name)
	if err != nil {
		return err
	}
	if !p.active.remove(name) {
		return &StateNotFound{State: name}
	}
	p.buildAliases()
	return nil
}

// SwitchState disables all states and then enables the given one.
//
// The target is checked first, so a failed switch leaves the enabled
// states as they were.
func (p *Proxy) SwitchState(name string) error {
	name, err := p.validateName(name)
	if err != nil {
		return err
	}
	s, have := p.states.get(name)
	if !have {
		return &StateNotFound{State: name}
	}
	p.active = newStateList()
	p.active.set(name, s)
	p.buildAliases()
	return nil
}

// DisableAllStates empties the enabled set.
func (p *Proxy) DisableAllStates() {
	p.active = newStateList()
	p.buildAliases()
}

// ListAvailableStates returns the names of the registered states in
// registration order.
func (p *Proxy) ListAvailableStates() []string {
	return p.states.keys()
}

// ListEnabledStates returns the names of the enabled states in the
// order they were enabled.
func (p *Proxy) ListEnabledStates() []string {
	return p.active.keys()
}

// State returns the registered state with the given name.
func (p *Proxy) State(name string) (*State, error) {
	name, err := p.validateName(name)
	if err != nil {
		return nil, err
	}
	s, have := p.states.get(name)
	if !have {
		return nil, &StateNotFound{State: name}
	}
	return s, nil
}

// States returns the registered states by name.
func (p *Proxy) States() map[string]*State {
	acc := make(map[string]*State, p.states.len())
	p.states.each(func(name string, s *State) {
		acc[name] = s
	})
	return acc
}

// InState reports whether the given name is an enabled state or an
// alias of one.  The comparison ignores case and underscores.
func (p *Proxy) InState(name string) (bool, error) {
	name, err := p.validateName(name)
	if err != nil {
		return false, err
	}
	if p.active.len() == 0 {
		return false, nil
	}
	want := fold(name)
	for _, n := range p.active.names {
		if fold(n) == want {
			return true, nil
		}
	}
	return p.activeAliases[want], nil
}

func (p *Proxy) buildAliases() {
	aliases := make(map[string]bool)
	p.active.each(func(_ string, s *State) {
		for _, a := range s.aliases {
			aliases[fold(a)] = true
		}
	})
	p.activeAliases = aliases
}

// ListMethodsByStates gives the method names of every registered
// state.
func (p *Proxy) ListMethodsByStates() map[string][]string {
	acc := make(map[string][]string, p.states.len())
	p.states.each(func(name string, s *State) {
		acc[name] = s.ListMethods()
	})
	return acc
}

// MethodDescription finds the descriptor of a state method.
//
// With an empty state name, the registered states are searched in
// order and the first description found is returned.
func (p *Proxy) MethodDescription(method, state string) (*MethodDescriptor, error) {
	if state == "" {
		for _, name := range p.states.names {
			s, _ := p.states.get(name)
			if d, err := s.MethodDescription(method); err == nil {
				return d, nil
			}
		}
		return nil, &MethodNotImplemented{Method: method}
	}
	s, err := p.State(state)
	if err != nil {
		return nil, err
	}
	return s.MethodDescription(method)
}
