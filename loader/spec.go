package loader

import (
	"context"
	"fmt"

	"github.com/Comcast/states/core"
)

// DefaultInterpreter is the interpreter for method sources that
// don't name one.
var DefaultInterpreter = "goja"

// Document is a YAML (or JSON) file of class specifications.
//
//    classes:
//    - name: acme/Article
//      defaultState: Draft
//      properties:
//      - name: title
//        value: untitled
//      states:
//      - name: Draft
//        methods:
//        - name: publish
//          source: 'this.switchState("Published");'
//      - name: Published
//        aliases: [Online]
type Document struct {
	Classes []*ClassSpec `json:"classes" yaml:"classes"`
}

// ClassSpec is the data form of a core.Class.  Method bodies are
// given as sources for interpreters.
type ClassSpec struct {
	Name string `json:"name" yaml:"name"`

	// Parent is the name of the parent class, if any.
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`

	Doc          string          `json:"doc,omitempty" yaml:"doc,omitempty"`
	DefaultState string          `json:"defaultState,omitempty" yaml:"defaultState,omitempty"`
	Properties   []*PropertySpec `json:"properties,omitempty" yaml:"properties,omitempty"`
	Methods      []*MethodSpec   `json:"methods,omitempty" yaml:"methods,omitempty"`
	States       []*StateSpec    `json:"states,omitempty" yaml:"states,omitempty"`
}

type StateSpec struct {
	Name    string   `json:"name" yaml:"name"`
	Doc     string   `json:"doc,omitempty" yaml:"doc,omitempty"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Extends, if true, makes the state inherit the methods of
	// the state with the same name in the nearest ancestor.
	Extends bool `json:"extends,omitempty" yaml:"extends,omitempty"`

	Methods []*MethodSpec `json:"methods,omitempty" yaml:"methods,omitempty"`
}

type MethodSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Visibility  string      `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Static      bool        `json:"static,omitempty" yaml:"static,omitempty"`
	Doc         string      `json:"doc,omitempty" yaml:"doc,omitempty"`
	Interpreter string      `json:"interpreter,omitempty" yaml:"interpreter,omitempty"`
	Source      interface{} `json:"source,omitempty" yaml:"source,omitempty"`
}

type PropertySpec struct {
	Name       string      `json:"name" yaml:"name"`
	Visibility string      `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Value      interface{} `json:"value,omitempty" yaml:"value,omitempty"`
}

// Compile makes a MethodDescriptor by compiling the source.
//
// Static methods aren't compiled since they can't be called.
func (s *MethodSpec) Compile(ctx context.Context, interpreters core.InterpretersMap) (*core.MethodDescriptor, error) {
	if s.Name == "" {
		return nil, &core.IllegalName{Name: s.Name}
	}
	v, err := core.ParseVisibility(s.Visibility)
	if err != nil {
		return nil, err
	}
	d := &core.MethodDescriptor{
		Name:       s.Name,
		Visibility: v,
		Static:     s.Static,
		Doc:        s.Doc,
	}
	if s.Static {
		return d, nil
	}
	if s.Source == nil {
		return nil, fmt.Errorf(`method "%s" has no source`, s.Name)
	}

	interpreter := s.Interpreter
	if interpreter == "" {
		interpreter = DefaultInterpreter
	}
	d.Source = &core.MethodSource{
		Interpreter: interpreter,
		Source:      s.Source,
	}
	if d.Impl, err = d.Source.Compile(ctx, interpreters); err != nil {
		return nil, fmt.Errorf(`method "%s": %w`, s.Name, err)
	}
	return d, nil
}

func compileMethods(ctx context.Context, specs []*MethodSpec, interpreters core.InterpretersMap) ([]*core.MethodDescriptor, error) {
	acc := make([]*core.MethodDescriptor, 0, len(specs))
	for _, s := range specs {
		if s == nil {
			continue
		}
		d, err := s.Compile(ctx, interpreters)
		if err != nil {
			return nil, err
		}
		acc = append(acc, d)
	}
	return acc, nil
}

// Compile makes a core.Class.  The parent, if any, must be the class
// named by s.Parent.
func (s *ClassSpec) Compile(ctx context.Context, parent *core.Class, interpreters core.InterpretersMap) (*core.Class, error) {
	if s.Name == "" {
		return nil, &core.IllegalName{Name: s.Name}
	}
	if s.Parent != "" && (parent == nil || parent.Name != s.Parent) {
		return nil, &UnknownClass{
			Class:  s.Name,
			Reason: `parent "` + s.Parent + `" isn't available`,
		}
	}

	c := &core.Class{
		Name:         s.Name,
		Parent:       parent,
		Doc:          s.Doc,
		DefaultState: s.DefaultState,
	}

	for _, p := range s.Properties {
		if p == nil {
			continue
		}
		if p.Name == "" {
			return nil, &core.IllegalName{Name: p.Name}
		}
		v, err := core.ParseVisibility(p.Visibility)
		if err != nil {
			return nil, err
		}
		c.Properties = append(c.Properties, &core.PropertyDef{
			Name:       p.Name,
			Visibility: v,
			Value:      p.Value,
		})
	}

	var err error
	if c.Methods, err = compileMethods(ctx, s.Methods, interpreters); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(s.States))
	for _, ss := range s.States {
		if ss == nil {
			continue
		}
		if ss.Name == "" {
			return nil, &core.IllegalName{Name: ss.Name}
		}
		if seen[ss.Name] {
			return nil, &core.IllegalState{
				State:  ss.Name,
				Reason: "defined twice in " + s.Name,
			}
		}
		seen[ss.Name] = true

		d := &core.StateDef{
			Name:    ss.Name,
			Doc:     ss.Doc,
			Aliases: ss.Aliases,
		}
		if ss.Extends {
			for a := parent; a != nil; a = a.Parent {
				if d.Extends = a.StateDef(ss.Name); d.Extends != nil {
					break
				}
			}
			if d.Extends == nil {
				return nil, &core.IllegalState{
					State:  ss.Name,
					Reason: "no ancestor of " + s.Name + " defines it",
				}
			}
		}
		if d.Methods, err = compileMethods(ctx, ss.Methods, interpreters); err != nil {
			return nil, fmt.Errorf(`state "%s": %w`, ss.Name, err)
		}
		c.States = append(c.States, d)
	}

	return c, nil
}
