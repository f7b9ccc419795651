package loader

import (
	"context"
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/Comcast/states/core"
	"github.com/Comcast/states/interpreters"
	. "github.com/Comcast/states/util/testutil"
)

// instantiate makes a proxy with every state the finder knows.
func instantiate(t *testing.T, f Finder, enable ...string) *core.Proxy {
	p := core.NewProxy(f.Class())
	es, err := f.ListAvailableStates()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range es {
		s, err := f.BuildState(e)
		if err != nil {
			t.Fatal(err)
		}
		if err = p.RegisterState(e.Name, s); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range enable {
		if err := p.EnableState(name); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func call(t *testing.T, p *core.Proxy, method string, args ...interface{}) interface{} {
	x, err := p.Call(method, args...)
	if err != nil {
		t.Fatalf("%s: %v", method, err)
	}
	return x
}

// number normalizes the integers that interpreters return.
func number(t *testing.T, x interface{}) int {
	switch vv := x.(type) {
	case int:
		return vv
	case int64:
		return int(vv)
	case float64:
		return int(vv)
	}
	t.Fatalf("%#v isn't a number", x)
	return 0
}

func TestLibraryReadFile(t *testing.T) {
	ctx := context.Background()
	l := NewLibrary()
	cs, err := l.ReadFile(ctx, "testdata/family.yaml", interpreters.Standard())
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 3 {
		t.Fatal(len(cs))
	}
	if JS(l.Names()) != `["acme/extendable/Daughter","acme/extendable/GrandDaughter","acme/extendable/Mother"]` {
		t.Fatal(l.Names())
	}

	mother, err := l.Class("acme/extendable/Mother")
	if err != nil {
		t.Fatal(err)
	}
	if mother.DefaultStateName() != "StateOne" {
		t.Fatal(mother.DefaultStateName())
	}
	daughter, _ := l.Class("acme/extendable/Daughter")
	if daughter.Parent != mother {
		t.Fatal("daughter's parent isn't mother")
	}
	if daughter.DefaultStateName() != core.DefaultStateName {
		t.Fatal(daughter.DefaultStateName())
	}

	f, err := l.Finder("acme/extendable/Daughter")
	if err != nil {
		t.Fatal(err)
	}
	p := instantiate(t, f, "StateOne", "StateTwo", "StateThree")

	if x := number(t, call(t, p, "method3")); x != 321 {
		t.Fatalf("%#v", x)
	}
	if _, err := p.Call("method1"); err == nil {
		t.Fatal("method1 is overridden")
	}
	if x := number(t, call(t, p, "methodRecallPrivate")); x != 2*789 {
		t.Fatalf("%#v", x)
	}
	if _, err := p.Call("methodRecallMotherPrivate"); err == nil {
		t.Fatal("reached Mother's private method")
	}
	if x := number(t, call(t, p, "methodRecallMotherProtected")); x != 3*456 {
		t.Fatalf("%#v", x)
	}
	if _, err := p.Call("build"); err == nil {
		t.Fatal("called a static method")
	}

	m := p.ListMethodsByStates()
	if JS(m["StateTwo"]) != `["methodPublic","methodProtected","methodRecallPrivate"]` {
		t.Fatal(m["StateTwo"])
	}

	// Properties are inherited.
	if x, _ := p.Get("nickname"); x != "mom" {
		t.Fatalf("%#v", x)
	}
	if _, err := p.Get("savings"); err == nil {
		t.Fatal("read a private property")
	}

	f, _ = l.Finder("acme/extendable/GrandDaughter")
	g := instantiate(t, f, "StateTwo", "StateThree")
	if x := number(t, call(t, g, "method7")); x != 777 {
		t.Fatalf("%#v", x)
	}
	if x := number(t, call(t, g, "method6")); x != 666 {
		t.Fatalf("%#v", x)
	}
	if x := number(t, call(t, g, "methodRecallMotherProtected")); x != 3*456 {
		t.Fatalf("%#v", x)
	}

	d, err := g.MethodDescription("methodRecallMotherProtected", "StateThree")
	if err != nil {
		t.Fatal(err)
	}
	if d.Source == nil || d.Source.Interpreter != "expr" {
		t.Fatal(d.Source)
	}
}

func TestLibraryUsers(t *testing.T) {
	ctx := context.Background()
	l := NewLibrary()
	if _, err := l.ReadFile(ctx, "testdata/users.yaml", interpreters.Standard()); err != nil {
		t.Fatal(err)
	}

	uf, _ := l.Finder("acme/User")
	af, _ := l.Finder("acme/Administrator")
	user := instantiate(t, uf, "StateDefault")
	admin := instantiate(t, af, "StateDefault")

	if _, err := user.Call("setModerator", true); err == nil {
		t.Fatal("outsider made a moderator")
	}

	if x := call(t, user, "canBan"); x != false {
		t.Fatalf("%#v", x)
	}

	call(t, admin, "promote", user)

	if x := call(t, user, "canBan"); x != true {
		t.Fatalf("%#v", x)
	}

	if x := call(t, user, "isModerator"); x != true {
		t.Fatalf("%#v", x)
	}
	if x := call(t, user, "ban", "spam"); x != "banned spam" {
		t.Fatalf("%#v", x)
	}
	if x := call(t, user, "describe"); x != "acme/User StateDefault,Moderator" {
		t.Fatalf("%#v", x)
	}
}

func TestLibraryReadDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	files := map[string]string{
		"a.yaml": `
classes:
- name: acme/Base
  states:
  - name: StateDefault
    methods:
    - name: hello
      interpreter: expr
      source: '"hello " + args[0]'
`,
		"b.yaml": `
classes:
- name: acme/Derived
  parent: acme/Base
`,
		"notes.txt": `not a class`,
	}
	for name, src := range files {
		if err := ioutil.WriteFile(filepath.Join(dir, name), []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}

	l := NewLibrary()
	cs, err := l.ReadDir(ctx, dir, interpreters.Standard())
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 {
		t.Fatal(len(cs))
	}

	f, _ := l.Finder("acme/Derived")
	p := instantiate(t, f, "StateDefault")
	if x := call(t, p, "hello", "world"); x != "hello world" {
		t.Fatalf("%#v", x)
	}

	if _, err := l.ReadDir(ctx, filepath.Join(dir, "nope"), nil); err == nil {
		t.Fatal("read a missing directory")
	}
}

func TestLibraryLoadErrors(t *testing.T) {
	ctx := context.Background()
	is := interpreters.Standard()

	var unknown *UnknownClass

	tests := []struct {
		name  string
		yaml  string
		check func(err error) bool
	}{
		{
			name: "unknown parent",
			yaml: `
classes:
- name: acme/Orphan
  parent: acme/Nobody
`,
			check: func(err error) bool { return errors.As(err, &unknown) },
		},
		{
			name: "cycle",
			yaml: `
classes:
- name: acme/A
  parent: acme/B
- name: acme/B
  parent: acme/A
`,
			check: func(err error) bool { return errors.As(err, &unknown) },
		},
		{
			name: "own parent",
			yaml: `
classes:
- name: acme/A
  parent: acme/A
`,
			check: func(err error) bool { return errors.As(err, &unknown) },
		},
		{
			name: "duplicate state",
			yaml: `
classes:
- name: acme/A
  states:
  - name: S
  - name: S
`,
			check: func(err error) bool {
				var illegal *core.IllegalState
				return errors.As(err, &illegal)
			},
		},
		{
			name: "extends nothing",
			yaml: `
classes:
- name: acme/A
  states:
  - name: S
    extends: true
`,
			check: func(err error) bool {
				var illegal *core.IllegalState
				return errors.As(err, &illegal)
			},
		},
		{
			name: "bad visibility",
			yaml: `
classes:
- name: acme/A
  states:
  - name: S
    methods:
    - name: m
      visibility: friend
      source: return 1;
`,
			check: func(err error) bool {
				var invalid *core.InvalidArgument
				return errors.As(err, &invalid)
			},
		},
		{
			name: "no class name",
			yaml: `
classes:
- doc: nameless
`,
			check: func(err error) bool {
				var illegal *core.IllegalName
				return errors.As(err, &illegal)
			},
		},
		{
			name: "no source",
			yaml: `
classes:
- name: acme/A
  methods:
  - name: m
`,
			check: func(err error) bool { return err != nil },
		},
		{
			name: "bad code",
			yaml: `
classes:
- name: acme/A
  methods:
  - name: m
    source: this won't compile {
`,
			check: func(err error) bool { return err != nil },
		},
		{
			name: "unknown interpreter",
			yaml: `
classes:
- name: acme/A
  methods:
  - name: m
    interpreter: cobol
    source: DISPLAY 'HELLO'.
`,
			check: func(err error) bool { return errors.Is(err, core.InterpreterNotFound) },
		},
		{
			name: "bad YAML",
			yaml: `classes: [`,
			check: func(err error) bool { return err != nil },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLibrary()
			_, err := l.LoadYAML(ctx, []byte(tc.yaml), is)
			if !tc.check(err) {
				t.Fatal(err)
			}
			if n := len(l.Names()); n != 0 {
				t.Fatal(l.Names())
			}
		})
	}
}

func TestLibraryParentInLibrary(t *testing.T) {
	ctx := context.Background()
	l := NewLibrary()
	base := &core.Class{Name: "acme/Base"}
	if err := l.Add(base); err != nil {
		t.Fatal(err)
	}
	cs, err := l.LoadYAML(ctx, []byte(`
classes:
- name: acme/Derived
  parent: acme/Base
`), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cs[0].Parent != base {
		t.Fatal(cs[0].Parent)
	}

	if err := l.Add(nil); err == nil {
		t.Fatal("added nil")
	}
	var unknown *UnknownClass
	if _, err := l.Finder("acme/Nope"); !errors.As(err, &unknown) {
		t.Fatal(err)
	}
}
