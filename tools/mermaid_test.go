package tools

import (
	"bytes"
	"strings"
	"testing"
)

func TestMermaid(t *testing.T) {
	c := class(t, family(t), "acme/extendable/GrandDaughter")

	out := &bytes.Buffer{}
	if err := Mermaid(c, out, nil); err != nil {
		t.Fatal(err)
	}
	got := out.String()

	for _, want := range []string{
		"classDiagram\n",
		"  acme_extendable_Mother <|-- acme_extendable_Daughter\n",
		"  acme_extendable_Daughter <|-- acme_extendable_GrandDaughter\n",
		"  acme_extendable_Daughter_StateThree <|-- acme_extendable_GrandDaughter_StateThree\n",
		"  acme_extendable_Mother *-- acme_extendable_Mother_StateTwo : StateTwo\n",
		"    <<state>>\n",
		"    +methodPublic()\n",
		"    #methodProtected()\n",
		"    -methodPrivate()\n",
		"    -savings\n",
		"    +nickname\n",
		"  style acme_extendable_Mother_StateOne fill:#bcf2db\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in\n%s", want, got)
		}
	}
	if strings.Contains(got, "build()") {
		t.Fatal("static method shown")
	}
}

func TestMermaidOpts(t *testing.T) {
	c := class(t, family(t), "acme/extendable/Mother")

	out := &bytes.Buffer{}
	if err := Mermaid(c, out, &MermaidOpts{ShowMethods: true, ShowStatic: true}); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "    +build()$\n") {
		t.Fatal(got)
	}
	if strings.Contains(got, "savings") || strings.Contains(got, "style ") {
		t.Fatal(got)
	}
	if strings.Contains(got, "<|--") {
		t.Fatal(got)
	}

	if err := Mermaid(nil, out, nil); err == nil {
		t.Fatal("drew nothing")
	}
}
