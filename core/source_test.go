package core

import (
	"context"
	"fmt"
	"testing"
)

// echo is an Interpreter whose code is a format string for the
// arguments.
type echo struct {
	compiles int
}

func (i *echo) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	s, is := code.(string)
	if !is {
		return nil, fmt.Errorf("echo wants a string, not a %T", code)
	}
	i.compiles++
	return s + "!", nil
}

func (i *echo) Exec(this *Proxy, args []interface{}, code interface{}, compiled interface{}) (interface{}, error) {
	return this.ClassName() + ":" + fmt.Sprintf(compiled.(string), args...), nil
}

func TestMethodSource(t *testing.T) {
	ctx := context.Background()
	e := &echo{}
	interpreters := InterpretersMap{"echo": e}

	src := &MethodSource{
		Interpreter: "echo",
		Source:      "hello %s",
	}
	m, err := src.Compile(ctx, interpreters)
	if err != nil {
		t.Fatal(err)
	}

	p := NewProxy(&Class{Name: "acme/Greeter"})
	p.RegisterState("StateA", NewState("StateA", "acme/Greeter", false, nil,
		&MethodDescriptor{
			Name:   "greet",
			Impl:   m,
			Source: src,
		}))
	enable(t, p, "StateA")

	for i := 0; i < 2; i++ {
		if x := mustCall(t, p, "greet", "world"); x != "acme/Greeter:hello world!" {
			t.Fatal(x)
		}
	}
	if e.compiles != 1 {
		t.Fatal(e.compiles)
	}

	if _, err = (&MethodSource{Interpreter: "echo", Source: 42}).Compile(ctx, interpreters); err == nil {
		t.Fatal("expected a compilation error")
	}

	if _, err = (&MethodSource{Interpreter: "cobol"}).Compile(ctx, interpreters); err != InterpreterNotFound {
		t.Fatal(err)
	}

	// Nothing is in the default map.
	if _, err = src.Compile(ctx, nil); err != InterpreterNotFound {
		t.Fatal(err)
	}

	if interpreters.Find("echo") != e {
		t.Fatal("didn't find echo")
	}
	if c := src.Copy(); c.Source != src.Source || c == src {
		t.Fatal(c)
	}
}
