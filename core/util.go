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

import "strings"

func copyStrings(xs []string) []string {
	if xs == nil {
		return nil
	}
	acc := make([]string, len(xs))
	copy(acc, xs)
	return acc
}

// fold lower-cases a state name or alias and removes underscores.
//
// Used by InState, which is both case- and underscore-insensitive.
func fold(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "")
}

// stateList is a map of states that remembers insertion order.
//
// Replacing an existing entry keeps its position.
type stateList struct {
	names  []string
	states map[string]*State
}

func newStateList() *stateList {
	return &stateList{
		states: make(map[string]*State),
	}
}

func (l *stateList) get(name string) (*State, bool) {
	s, have := l.states[name]
	return s, have
}

func (l *stateList) set(name string, s *State) {
	if _, have := l.states[name]; !have {
		l.names = append(l.names, name)
	}
	l.states[name] = s
}

func (l *stateList) remove(name string) bool {
	if _, have := l.states[name]; !have {
		return false
	}
	delete(l.states, name)
	for i, n := range l.names {
		if n == name {
			l.names = append(l.names[:i:i], l.names[i+1:]...)
			break
		}
	}
	return true
}

func (l *stateList) keys() []string {
	return copyStrings(l.names)
}

func (l *stateList) len() int {
	return len(l.names)
}

// each calls f for each state in order.
func (l *stateList) each(f func(name string, s *State)) {
	for _, name := range l.names {
		f(name, l.states[name])
	}
}
