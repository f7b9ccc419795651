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

package tools

import (
	"sort"

	"github.com/Comcast/states/core"
	"github.com/Comcast/states/loader"
)

// ClassAnalysis reports on the states a stated class will have at
// runtime.
type ClassAnalysis struct {
	class *core.Class

	Errors []string

	// States are the names of the available states, own first.
	States []string

	// Inherited are the states that come from ancestors.
	Inherited []string

	// Overrides are the own states that hide a state of the same
	// name in an ancestor.
	Overrides []string

	// Extended are the own states that extend an ancestor's
	// state.
	Extended []string

	Methods      int
	ProxyMethods int

	// Shared maps a method name to the states that expose it.
	// Enabling two of those states together makes a plain call
	// ambiguous.
	Shared map[string][]string

	Static        []string
	Unimplemented []string

	// MissingDefault is true when the class's default state isn't
	// available.
	MissingDefault bool

	Interpreters []string
}

// Analyze examines the class and its ancestors.
func Analyze(c *core.Class) (*ClassAnalysis, error) {
	f := loader.NewClassFinder(c)
	es, err := f.ListAvailableStates()
	if err != nil {
		return nil, err
	}

	a := ClassAnalysis{
		class:        c,
		Errors:       make([]string, 0, 8),
		ProxyMethods: len(c.Methods),
		Shared:       make(map[string][]string),
	}

	var (
		exposed      = make(map[string][]string)
		static       = make(map[string]bool)
		missing      = make(map[string]bool)
		interpreters = make(map[string]bool)
		haveDefault  bool
	)

	note := func(m *core.MethodDescriptor, where string) {
		if m.Source != nil {
			interpreters[m.Source.Interpreter] = true
		}
		if m.Static {
			static[where+"."+m.Name] = true
			return
		}
		if m.Impl == nil {
			missing[where+"."+m.Name] = true
		}
	}

	for _, m := range c.Methods {
		if m != nil {
			note(m, c.Name)
		}
	}

	for _, e := range es {
		a.States = append(a.States, e.Name)
		if e.Name == c.DefaultStateName() {
			haveDefault = true
		}
		if e.Inherited {
			a.Inherited = append(a.Inherited, e.Name)
		}

		d, err := f.LoadState(e.Name)
		if err != nil {
			a.Errors = append(a.Errors, err.Error())
			continue
		}
		if !e.Inherited {
			for _, anc := range c.Ancestors() {
				if anc.StateDef(e.Name) != nil {
					a.Overrides = append(a.Overrides, e.Name)
					break
				}
			}
			if d.Extends != nil {
				a.Extended = append(a.Extended, e.Name)
			}
		}

		for _, m := range d.AllMethods() {
			note(m, e.Name)
			if m.Static || core.ReservedMethodNames[m.Name] {
				continue
			}
			a.Methods++
			// Private methods of inherited states are hidden.
			if e.Inherited && m.Visibility == core.Private {
				continue
			}
			exposed[m.Name] = append(exposed[m.Name], e.Name)
		}
	}

	for name, states := range exposed {
		if 1 < len(states) {
			a.Shared[name] = states
		}
	}

	a.MissingDefault = !haveDefault
	if a.MissingDefault {
		a.Errors = append(a.Errors, "default state "+c.DefaultStateName()+" isn't available")
	}
	a.Static = keysToStringSlice(static)
	a.Unimplemented = keysToStringSlice(missing)
	for _, m := range a.Unimplemented {
		a.Errors = append(a.Errors, "no implementation for "+m)
	}
	a.Interpreters = keysToStringSlice(interpreters, "go")

	return &a, nil
}

// keysToStringSlice gives the sorted keys of the map or, if the map
// is empty, the optional default.
func keysToStringSlice(m map[string]bool, defaultValue ...string) []string {
	var list []string
	for key := range m {
		list = append(list, key)
	}
	sort.Strings(list)

	if len(list) == 0 && len(defaultValue) > 0 {
		return []string{defaultValue[0]}
	}

	return list
}
