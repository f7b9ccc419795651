package loader

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Comcast/states/core"
	"github.com/Comcast/states/util"

	"github.com/jsccast/yaml"
)

// Library is a set of stated classes by name.
//
// A Library is safe for concurrent use.
type Library struct {
	sync.RWMutex

	classes map[string]*core.Class
}

// NewLibrary makes an empty Library.
func NewLibrary() *Library {
	return &Library{
		classes: make(map[string]*core.Class),
	}
}

// Add adds (or replaces) a class.
func (l *Library) Add(c *core.Class) error {
	if c == nil || c.Name == "" {
		return &core.IllegalName{}
	}
	l.Lock()
	l.classes[c.Name] = c
	l.Unlock()
	return nil
}

// Class finds a class by name.
func (l *Library) Class(name string) (*core.Class, error) {
	l.RLock()
	c, have := l.classes[name]
	l.RUnlock()
	if !have {
		return nil, &UnknownClass{Class: name}
	}
	return c, nil
}

// Names returns the names of the classes in order.
func (l *Library) Names() []string {
	l.RLock()
	acc := make([]string, 0, len(l.classes))
	for name := range l.classes {
		acc = append(acc, name)
	}
	l.RUnlock()
	sort.Strings(acc)
	return acc
}

// Finder makes a Finder for the named class.
func (l *Library) Finder(name string) (Finder, error) {
	c, err := l.Class(name)
	if err != nil {
		return nil, err
	}
	return NewClassFinder(c), nil
}

// LoadYAML parses a Document, compiles its classes, and adds them.
//
// A parent can be defined in the same document (in any order) or
// already be in the library.  If any class can't be compiled, nothing
// is added.
func (l *Library) LoadYAML(ctx context.Context, bs []byte, interpreters core.InterpretersMap) ([]*core.Class, error) {
	var doc Document
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return nil, err
	}
	return l.Load(ctx, &doc, interpreters)
}

// Load compiles the classes in the Document and adds them.  See
// LoadYAML.
func (l *Library) Load(ctx context.Context, doc *Document, interpreters core.InterpretersMap) ([]*core.Class, error) {
	var (
		done    = make(map[string]*core.Class, len(doc.Classes))
		inDoc   = make(map[string]bool, len(doc.Classes))
		pending = make([]*ClassSpec, 0, len(doc.Classes))
		acc     = make([]*core.Class, 0, len(doc.Classes))
	)

	for _, s := range doc.Classes {
		if s == nil {
			continue
		}
		if s.Name == "" {
			return nil, &core.IllegalName{Name: s.Name}
		}
		inDoc[s.Name] = true
		pending = append(pending, s)
	}

	// A parent in the document shadows one in the library.
	parent := func(name string) *core.Class {
		if c, have := done[name]; have {
			return c
		}
		if inDoc[name] {
			return nil
		}
		if c, err := l.Class(name); err == nil {
			return c
		}
		return nil
	}

	// Compile whatever has its parent ready until nothing
	// changes.
	for 0 < len(pending) {
		var (
			later    []*ClassSpec
			progress bool
		)
		for _, s := range pending {
			var p *core.Class
			if s.Parent != "" {
				if s.Parent == s.Name {
					return nil, &UnknownClass{
						Class:  s.Name,
						Reason: "class is its own parent",
					}
				}
				if p = parent(s.Parent); p == nil {
					later = append(later, s)
					continue
				}
			}
			c, err := s.Compile(ctx, p, interpreters)
			if err != nil {
				return nil, fmt.Errorf(`class "%s": %w`, s.Name, err)
			}
			done[c.Name] = c
			acc = append(acc, c)
			progress = true
		}
		if !progress {
			s := later[0]
			return nil, &UnknownClass{
				Class:  s.Name,
				Reason: `parent "` + s.Parent + `" isn't available`,
			}
		}
		pending = later
	}

	for _, c := range acc {
		if err := l.Add(c); err != nil {
			return nil, err
		}
		util.Logf("loader added class %s with %d states", c.Name, len(c.States))
	}

	return acc, nil
}

// ReadFile loads the classes in the given YAML file.
func (l *Library) ReadFile(ctx context.Context, filename string, interpreters core.InterpretersMap) ([]*core.Class, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cs, err := l.LoadYAML(ctx, bs, interpreters)
	if err != nil {
		return nil, fmt.Errorf("%w with '%s'", err, filename)
	}
	return cs, nil
}

// ReadDir loads the classes in every .yaml file in the given
// directory.  The files are read in order of their names, so a file
// can use parents from a file that sorts before it.
func (l *Library) ReadDir(ctx context.Context, dir string, interpreters core.InterpretersMap) ([]*core.Class, error) {
	files, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var acc []*core.Class
	for _, fi := range files {
		name := fi.Name()
		if fi.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		cs, err := l.ReadFile(ctx, filepath.Join(dir, name), interpreters)
		if err != nil {
			return nil, err
		}
		acc = append(acc, cs...)
	}
	util.Logf("loader read %d classes from %s", len(acc), dir)
	return acc, nil
}
