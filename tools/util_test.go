package tools

import (
	"context"
	"testing"

	"github.com/Comcast/states/core"
	"github.com/Comcast/states/loader"
)

// family loads the Mother/Daughter/GrandDaughter classes without
// compiling their method bodies.
func family(t *testing.T) *loader.Library {
	l := loader.NewLibrary()
	if _, err := l.ReadFile(context.Background(), "../loader/testdata/family.yaml", quietInterpreters()); err != nil {
		t.Fatal(err)
	}
	return l
}

func class(t *testing.T, l *loader.Library, name string) *core.Class {
	c, err := l.Class(name)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
