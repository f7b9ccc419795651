package cel

import (
	"context"
	"testing"

	"github.com/Comcast/states/core"
)

func proxy(t *testing.T, methods map[string]string) *core.Proxy {
	ctx := context.Background()
	is := core.InterpretersMap{"cel": NewInterpreter()}
	class := &core.Class{
		Name: "acme/Order",
		Properties: []*core.PropertyDef{
			{Name: "items", Visibility: core.Private, Value: 3},
		},
	}
	ds := []*core.MethodDescriptor{
		core.PublicMethod("total", func(this *core.Proxy, args ...interface{}) (interface{}, error) {
			n := 0
			for _, x := range args {
				switch vv := x.(type) {
				case int64:
					n += int(vv)
				case int:
					n += vv
				case float64:
					n += int(vv)
				}
			}
			return n, nil
		}),
	}
	for name, code := range methods {
		src := &core.MethodSource{
			Interpreter: "cel",
			Source:      code,
		}
		m, err := src.Compile(ctx, is)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		ds = append(ds, &core.MethodDescriptor{
			Name:   name,
			Impl:   m,
			Source: src,
		})
	}
	p := core.NewProxy(class)
	p.RegisterState("Paid", core.NewState("Paid", class.Name, false, nil, ds...))
	if err := p.EnableState("Paid"); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExpressions(t *testing.T) {
	p := proxy(t, map[string]string{
		"add":     `args[0] + args[1]`,
		"ship":    `inState("Paid") && prop("items") > 0`,
		"who":     `className + " " + states[0]`,
		"sum":     `call("total", [1, 2, 3])`,
		"missing": `prop("nope")`,
	})

	if x, err := p.Call("add", 1, 2); err != nil || x != int64(3) {
		t.Fatal(x, err)
	}
	if x, err := p.Call("ship"); err != nil || x != true {
		t.Fatal(x, err)
	}
	if x, err := p.Call("who"); err != nil || x != "acme/Order Paid" {
		t.Fatal(x, err)
	}
	if x, err := p.Call("sum"); err != nil || x != int64(6) {
		t.Fatal(x, err)
	}
	if _, err := p.Call("missing"); err == nil {
		t.Fatal("read an undefined property")
	}
}

func TestCompileErrors(t *testing.T) {
	ctx := context.Background()
	i := NewInterpreter()
	for _, code := range []interface{}{"", 42, "1 +", `nope("x")`} {
		if _, err := i.Compile(ctx, code); err == nil {
			t.Fatalf("compiled %#v", code)
		}
	}
}

func TestExecWithoutCompile(t *testing.T) {
	p := core.NewProxy(&core.Class{Name: "acme/Bare"})
	x, err := NewInterpreter().Exec(p, nil, `size(args) == 0 && className == "acme/Bare"`, nil)
	if err != nil || x != true {
		t.Fatal(x, err)
	}
	if _, err = NewInterpreter().Exec(p, nil, "", "not compiled"); err == nil {
		t.Fatal("ran something that isn't an AST")
	}
}
