// Package loader finds the states of stated classes.
//
// A Finder lists and builds the states of one class, including the
// states it inherits.  A Library holds classes by name, and it can
// load them from YAML class specifications whose method bodies are
// compiled with core.Interpreters.
package loader

import (
	"github.com/Comcast/states/core"
)

// StateEntry names a state that a finder can build.
type StateEntry struct {
	// Name is the short name of the state.
	Name string `json:"name"`

	// Origin is the name of the class that defines the state.
	Origin string `json:"origin"`

	// Inherited is true when Origin is an ancestor of the class
	// the finder serves.  Inherited states are built in private
	// mode.
	Inherited bool `json:"inherited,omitempty"`
}

// Finder locates and builds the states of one stated class.
type Finder interface {
	// StatedClassName is the name of the class this finder
	// serves.
	StatedClassName() string

	// Class returns the definition of the class.
	Class() *core.Class

	// ListAvailableStates gives the class's own states followed
	// by the inherited states it doesn't override.
	ListAvailableStates() ([]StateEntry, error)

	// LoadState finds the definition of the named state, looking
	// at the class and then at its ancestors.
	LoadState(name string) (*core.StateDef, error)

	// BuildState makes a fresh State for an entry.
	BuildState(e StateEntry) (*core.State, error)

	// ListParentsClassesNames gives the names of the ancestors,
	// nearest first.
	ListParentsClassesNames() []string
}

// ClassFinder is a Finder for a core.Class that's already in memory.
type ClassFinder struct {
	class *core.Class
}

// NewClassFinder makes a ClassFinder.
func NewClassFinder(class *core.Class) *ClassFinder {
	return &ClassFinder{
		class: class,
	}
}

func (f *ClassFinder) StatedClassName() string {
	if f.class == nil {
		return ""
	}
	return f.class.Name
}

func (f *ClassFinder) Class() *core.Class {
	return f.class
}

func (f *ClassFinder) ListParentsClassesNames() []string {
	if f.class == nil {
		return nil
	}
	ancestors := f.class.Ancestors()
	acc := make([]string, len(ancestors))
	for i, a := range ancestors {
		acc[i] = a.Name
	}
	return acc
}

func (f *ClassFinder) ListAvailableStates() ([]StateEntry, error) {
	if f.class == nil {
		return nil, &UnknownClass{
			Reason: "no class",
		}
	}

	var (
		acc  []StateEntry
		seen = make(map[string]bool)
	)
	for _, c := range append([]*core.Class{f.class}, f.class.Ancestors()...) {
		here := make(map[string]bool, len(c.States))
		for _, d := range c.States {
			if d == nil {
				continue
			}
			if d.Name == "" {
				return nil, &core.IllegalName{Name: d.Name}
			}
			if here[d.Name] {
				return nil, &core.IllegalState{
					State:  d.Name,
					Reason: "defined twice in " + c.Name,
				}
			}
			here[d.Name] = true
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			acc = append(acc, StateEntry{
				Name:      d.Name,
				Origin:    c.Name,
				Inherited: c != f.class,
			})
		}
	}
	return acc, nil
}

func (f *ClassFinder) LoadState(name string) (*core.StateDef, error) {
	_, d, err := f.find(name)
	return d, err
}

func (f *ClassFinder) find(name string) (*core.Class, *core.StateDef, error) {
	if f.class == nil {
		return nil, nil, &UnknownClass{
			Reason: "no class",
		}
	}
	for c := f.class; c != nil; c = c.Parent {
		if d := c.StateDef(name); d != nil {
			return c, d, nil
		}
	}
	return nil, nil, &UnavailableState{
		Class: f.class.Name,
		State: name,
	}
}

func (f *ClassFinder) BuildState(e StateEntry) (*core.State, error) {
	if f.class == nil {
		return nil, &UnknownClass{
			Reason: "no class",
		}
	}

	var (
		origin *core.Class
		d      *core.StateDef
	)
	if e.Origin == "" {
		c, def, err := f.find(e.Name)
		if err != nil {
			return nil, err
		}
		origin, d = c, def
	} else {
		for c := f.class; c != nil; c = c.Parent {
			if c.Name == e.Origin {
				origin, d = c, c.StateDef(e.Name)
				break
			}
		}
	}
	if d == nil {
		return nil, &UnavailableState{
			Class: f.class.Name,
			State: e.Name,
		}
	}

	methods := d.AllMethods()
	for _, m := range methods {
		if m.Impl == nil && !m.Static {
			return nil, &core.IllegalState{
				State:  e.Name,
				Reason: `method "` + m.Name + `" has no implementation`,
			}
		}
	}

	inherited := origin != f.class
	return core.NewState(e.Name, origin.Name, inherited, d.Aliases, methods...), nil
}
