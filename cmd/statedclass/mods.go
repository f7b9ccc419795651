package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Comcast/states/factory"
	"github.com/Comcast/states/interpreters"
	"github.com/Comcast/states/loader"
	"github.com/Comcast/states/tools"
	. "github.com/Comcast/states/util/testutil"

	"github.com/jsccast/yaml"
)

var Mods = map[string]Mod{
	"list":    &Lister{},
	"analyze": &Analyzer{},
	"call":    &Caller{},
	"html":    &Renderer{},
	"mermaid": &Grapher{},
}

// ModNames returns the names of the Mods in order.
func ModNames() []string {
	acc := make([]string, 0, len(Mods))
	for name := range Mods {
		acc = append(acc, name)
	}
	sort.Strings(acc)
	return acc
}

// Mod is a subcommand that works with a library of classes.
type Mod interface {
	F(l *loader.Library, out io.Writer) error
	Doc() string
	Flags() *flag.FlagSet
	Where() *Sources
}

// Sources says where to find class specifications.
type Sources struct {
	Files string
	Dir   string
}

func (s *Sources) bind(fs *flag.FlagSet) {
	fs.StringVar(&s.Files, "f", "", "comma-separated YAML files of classes")
	fs.StringVar(&s.Dir, "d", "", "directory of YAML files of classes")
}

// Load reads the classes into a new library.
func (s *Sources) Load(ctx context.Context) (*loader.Library, error) {
	var (
		l  = loader.NewLibrary()
		is = interpreters.Standard()
	)
	if s.Dir != "" {
		if _, err := l.ReadDir(ctx, s.Dir, is); err != nil {
			return nil, err
		}
	}
	if s.Files != "" {
		for _, filename := range strings.Split(s.Files, ",") {
			if _, err := l.ReadFile(ctx, strings.TrimSpace(filename), is); err != nil {
				return nil, err
			}
		}
	}
	if len(l.Names()) == 0 {
		return nil, fmt.Errorf("no classes (use -f or -d)")
	}
	return l, nil
}

// Run loads the mod's classes and runs it.
func Run(m Mod, out io.Writer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l, err := m.Where().Load(ctx)
	if err != nil {
		return err
	}
	return m.F(l, out)
}

type Lister struct {
	Sources
	fs *flag.FlagSet
}

func (m *Lister) F(l *loader.Library, out io.Writer) error {
	acc := make(map[string][]loader.StateEntry)
	for _, name := range l.Names() {
		f, err := l.Finder(name)
		if err != nil {
			return err
		}
		if acc[name], err = f.ListAvailableStates(); err != nil {
			return err
		}
	}
	bs, err := yaml.Marshal(&acc)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", bs)
	return nil
}

func (m *Lister) Doc() string {
	return "Lists the classes and the states each one will have."
}

func (m *Lister) Where() *Sources {
	return &m.Sources
}

func (m *Lister) Flags() *flag.FlagSet {
	if m.fs == nil {
		m.fs = flag.NewFlagSet("list", flag.ContinueOnError)
		m.Sources.bind(m.fs)
	}
	return m.fs
}

type Analyzer struct {
	Sources
	Class string
	fs    *flag.FlagSet
}

func (m *Analyzer) F(l *loader.Library, out io.Writer) error {
	c, err := l.Class(m.Class)
	if err != nil {
		return err
	}
	a, err := tools.Analyze(c)
	if err != nil {
		return err
	}
	bs, err := yaml.Marshal(&a)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", bs)

	return nil
}

func (m *Analyzer) Doc() string {
	return "Reports on the states and methods of a class."
}

func (m *Analyzer) Where() *Sources {
	return &m.Sources
}

func (m *Analyzer) Flags() *flag.FlagSet {
	if m.fs == nil {
		m.fs = flag.NewFlagSet("analyze", flag.ContinueOnError)
		m.Sources.bind(m.fs)
		m.fs.StringVar(&m.Class, "c", "", "class name")
	}
	return m.fs
}

// Caller makes an instance of a class and calls methods on it.
type Caller struct {
	Sources
	Class  string
	State  string
	Method string
	ArgsJS string
	fs     *flag.FlagSet
}

func (m *Caller) F(l *loader.Library, out io.Writer) error {
	if err := factory.RegisterLibrary(l); err != nil {
		return err
	}
	p, err := factory.New(m.Class, m.State)
	if err != nil {
		return err
	}

	var args []interface{}
	if m.ArgsJS != "" {
		if err = json.Unmarshal([]byte(m.ArgsJS), &args); err != nil {
			return err
		}
	}

	for _, method := range strings.Split(m.Method, ",") {
		x, err := p.Call(strings.TrimSpace(method), args...)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", method, JS(x))
	}
	fmt.Fprintf(out, "states %s\n", JS(p.ListEnabledStates()))

	return nil
}

func (m *Caller) Doc() string {
	return "Makes an instance and calls methods (comma-separated) with the given arguments."
}

func (m *Caller) Where() *Sources {
	return &m.Sources
}

func (m *Caller) Flags() *flag.FlagSet {
	if m.fs == nil {
		m.fs = flag.NewFlagSet("call", flag.ContinueOnError)
		m.Sources.bind(m.fs)
		m.fs.StringVar(&m.Class, "c", "", "class name")
		m.fs.StringVar(&m.State, "s", "", "initial state (default is the class's default)")
		m.fs.StringVar(&m.Method, "m", "", "comma-separated method names")
		m.fs.StringVar(&m.ArgsJS, "a", "", "arguments as a JSON array")
	}
	return m.fs
}

type Renderer struct {
	Sources
	Class    string
	CSSFiles string
	fs       *flag.FlagSet
}

func (m *Renderer) F(l *loader.Library, out io.Writer) error {
	c, err := l.Class(m.Class)
	if err != nil {
		return err
	}
	var css []string
	if m.CSSFiles != "" {
		css = strings.Split(m.CSSFiles, ",")
	}
	return tools.RenderClassPage(c, out, css)
}

func (m *Renderer) Doc() string {
	return "Writes an HTML page that documents a class."
}

func (m *Renderer) Where() *Sources {
	return &m.Sources
}

func (m *Renderer) Flags() *flag.FlagSet {
	if m.fs == nil {
		m.fs = flag.NewFlagSet("html", flag.ContinueOnError)
		m.Sources.bind(m.fs)
		m.fs.StringVar(&m.Class, "c", "", "class name")
		m.fs.StringVar(&m.CSSFiles, "css", "", "comma-separated CSS files")
	}
	return m.fs
}

type Grapher struct {
	Sources
	Class  string
	Static bool
	fs     *flag.FlagSet
}

func (m *Grapher) F(l *loader.Library, out io.Writer) error {
	c, err := l.Class(m.Class)
	if err != nil {
		return err
	}
	return tools.Mermaid(c, out, &tools.MermaidOpts{
		ShowMethods:    true,
		ShowProperties: true,
		ShowStatic:     m.Static,
		StateFill:      "#bcf2db",
	})
}

func (m *Grapher) Doc() string {
	return "Writes a Mermaid class diagram of a class, its states, and its ancestors."
}

func (m *Grapher) Where() *Sources {
	return &m.Sources
}

func (m *Grapher) Flags() *flag.FlagSet {
	if m.fs == nil {
		m.fs = flag.NewFlagSet("mermaid", flag.ContinueOnError)
		m.Sources.bind(m.fs)
		m.fs.StringVar(&m.Class, "c", "", "class name")
		m.fs.BoolVar(&m.Static, "static", false, "show static methods")
	}
	return m.fs
}
