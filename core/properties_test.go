package core

import (
	"errors"
	"testing"
)

func TestProperties(t *testing.T) {
	base := &Class{
		Name: "acme/Account",
		Properties: []*PropertyDef{
			{Name: "owner", Value: "nobody"},
			{Name: "balance", Visibility: Private, Value: 0},
			{Name: "limit", Visibility: Protected, Value: 100},
		},
	}
	class := &Class{
		Name:   "acme/Savings",
		Parent: base,
		Properties: []*PropertyDef{
			{Name: "limit", Visibility: Protected, Value: 500},
		},
		States: []*StateDef{
			{
				Name: "Open",
				Methods: []*MethodDescriptor{
					PublicMethod("deposit", func(this *Proxy, args ...interface{}) (interface{}, error) {
						x, err := this.Get("balance")
						if err != nil {
							return nil, err
						}
						n := x.(int) + args[0].(int)
						return n, this.Set("balance", n)
					}),
					PublicMethod("limit", func(this *Proxy, args ...interface{}) (interface{}, error) {
						return this.Get("limit")
					}),
				},
			},
		},
	}

	p := build(t, class)
	enable(t, p, "Open")

	if x, err := p.Get("owner"); err != nil || x != "nobody" {
		t.Fatal(x, err)
	}
	if err := p.Set("owner", "homer"); err != nil {
		t.Fatal(err)
	}
	if x, _ := p.Get("owner"); x != "homer" {
		t.Fatal(x)
	}

	var illegal *IllegalProperty
	if _, err := p.Get("balance"); !errors.As(err, &illegal) {
		t.Fatal(err)
	}
	if err := p.Set("balance", 1000000); !errors.As(err, &illegal) {
		t.Fatal(err)
	}
	if err := p.Unset("limit"); !errors.As(err, &illegal) {
		t.Fatal(err)
	}
	if p.Isset("balance") {
		t.Fatal("private property visible from outside")
	}

	if x := mustCall(t, p, "deposit", 10); x != 10 {
		t.Fatal(x)
	}
	if x := mustCall(t, p, "deposit", 5); x != 15 {
		t.Fatal(x)
	}

	// The subclass default wins.
	if x := mustCall(t, p, "limit"); x != 500 {
		t.Fatal(x)
	}

	var undefined *UndefinedProperty
	if _, err := p.Get("color"); !errors.As(err, &undefined) {
		t.Fatal(err)
	}
	if p.Isset("color") {
		t.Fatal("color is set")
	}
	if err := p.Set("color", "red"); err != nil {
		t.Fatal(err)
	}
	if !p.Isset("color") {
		t.Fatal("color isn't set")
	}
	if err := p.Unset("color"); err != nil {
		t.Fatal(err)
	}
	if err := p.Unset("color"); err != nil {
		t.Fatal(err)
	}
	if p.Isset("color") {
		t.Fatal("color is still set")
	}

	if err := p.Set("", 1); !isIllegalName(err) {
		t.Fatal(err)
	}
}

func TestPropertiesFromCaller(t *testing.T) {
	class := &Class{
		Name: "acme/Account",
		Properties: []*PropertyDef{
			{Name: "balance", Visibility: Private, Value: 0},
			{Name: "limit", Visibility: Protected, Value: 100},
		},
	}
	junior := &Class{Name: "acme/Junior", Parent: class}
	p := NewProxy(class)

	var illegal *IllegalProperty

	// A subclass reaches protected properties but not private ones.
	c := Caller{Class: junior}
	if x, err := p.GetFrom(c, "limit"); err != nil || x != 100 {
		t.Fatal(x, err)
	}
	if err := p.SetFrom(c, "limit", 50); err != nil {
		t.Fatal(err)
	}
	if _, err := p.GetFrom(c, "balance"); !errors.As(err, &illegal) {
		t.Fatal(err)
	}
	if err := p.UnsetFrom(c, "balance"); !errors.As(err, &illegal) {
		t.Fatal(err)
	}

	// The class itself reaches everything.
	c = Caller{Class: class}
	if !p.IssetFrom(c, "balance") {
		t.Fatal("balance isn't set")
	}
	if err := p.UnsetFrom(c, "balance"); err != nil {
		t.Fatal(err)
	}
	if p.IssetFrom(c, "balance") {
		t.Fatal("balance is still set")
	}

	// Outside only sees public ones.
	if _, err := p.Get("limit"); !errors.As(err, &illegal) {
		t.Fatal(err)
	}
}
