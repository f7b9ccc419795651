package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Comcast/states/factory"
)

const (
	family = "../../loader/testdata/family.yaml"
	users  = "../../loader/testdata/users.yaml"
)

func run(t *testing.T, m Mod, args ...string) string {
	if err := m.Flags().Parse(args); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	if err := Run(m, out); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestList(t *testing.T) {
	got := run(t, &Lister{}, "-f", family+","+users)
	for _, want := range []string{"acme/extendable/GrandDaughter", "acme/Administrator", "inherited: true"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %s in\n%s", want, got)
		}
	}
}

func TestCall(t *testing.T) {
	factory.Reset()
	defer factory.Reset()

	got := run(t, &Caller{}, "-f", family, "-c", "acme/extendable/Mother", "-m", "method1,method2")
	if got != "method1 123\nmethod2 456\nstates [\"StateOne\"]\n" {
		t.Fatal(got)
	}

	got = run(t, &Caller{}, "-f", users, "-c", "acme/User", "-s", "Moderator", "-m", "ban", "-a", `["spam"]`)
	if got != "ban \"banned spam\"\nstates [\"Moderator\"]\n" {
		t.Fatal(got)
	}

	m := &Caller{}
	if err := m.Flags().Parse([]string{"-f", family, "-c", "acme/extendable/Mother", "-m", "methodPrivate"}); err != nil {
		t.Fatal(err)
	}
	if err := Run(m, &bytes.Buffer{}); err == nil {
		t.Fatal("called a method that isn't available")
	}
}

func TestRenderAndGraph(t *testing.T) {
	if got := run(t, &Renderer{}, "-f", family, "-c", "acme/extendable/Mother", "-css", "a.css"); !strings.Contains(got, `<link href="a.css" rel="stylesheet">`) {
		t.Fatal(got)
	}
	if got := run(t, &Grapher{}, "-f", family, "-c", "acme/extendable/Daughter"); !strings.HasPrefix(got, "classDiagram\n") {
		t.Fatal(got)
	}
	if got := run(t, &Analyzer{}, "-f", family, "-c", "acme/extendable/Daughter"); !strings.Contains(got, "StateTwo.build") {
		t.Fatal(got)
	}
}

func TestNoSources(t *testing.T) {
	m := &Lister{}
	if err := m.Flags().Parse(nil); err != nil {
		t.Fatal(err)
	}
	if err := Run(m, &bytes.Buffer{}); err == nil {
		t.Fatal("ran without classes")
	}
}

func TestYAMLToJSON(t *testing.T) {
	bs, err := YAMLToJSON([]byte(`
classes:
- name: acme/A
  states:
  - name: StateDefault
`))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(bs), `"name": "acme/A"`) {
		t.Fatal(string(bs))
	}
}

func TestModNames(t *testing.T) {
	if strings.Join(ModNames(), ",") != "analyze,call,html,list,mermaid" {
		t.Fatal(ModNames())
	}
}
