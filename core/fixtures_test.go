package core

import (
	"errors"
	"testing"
)

func constant(x interface{}) Method {
	return func(this *Proxy, args ...interface{}) (interface{}, error) {
		return x, nil
	}
}

// recall calls the given method on the proxy and multiplies the result.
func recall(method string, factor int) Method {
	return func(this *Proxy, args ...interface{}) (interface{}, error) {
		x, err := this.Call(method)
		if err != nil {
			return nil, err
		}
		return factor * x.(int), nil
	}
}

// family returns the Mother, Daughter, and GrandDaughter classes.
//
// Mother defines StateDefault, StateOne, and StateTwo.  Daughter
// overrides StateOne, adds StateThree, and inherits StateTwo.
// GrandDaughter extends Daughter's StateThree.
func family() (mother, daughter, grandDaughter *Class) {
	mother = &Class{
		Name: "acme/extendable/Mother",
		States: []*StateDef{
			{Name: "StateDefault"},
			{
				Name: "StateOne",
				Methods: []*MethodDescriptor{
					PublicMethod("method1", constant(123)),
					PublicMethod("method2", constant(456)),
				},
			},
			{
				Name: "StateTwo",
				Methods: []*MethodDescriptor{
					PublicMethod("methodPublic", constant(123)),
					ProtectedMethod("methodProtected", constant(456)),
					PrivateMethod("methodPrivate", constant(789)),
					PublicMethod("methodRecallPrivate", recall("methodPrivate", 2)),
				},
			},
		},
	}

	daughterThree := &StateDef{
		Name: "StateThree",
		Methods: []*MethodDescriptor{
			PublicMethod("method6", constant(666)),
			PublicMethod("methodRecallMotherPrivate", recall("methodPrivate", 2)),
			PublicMethod("methodRecallMotherProtected", recall("methodProtected", 3)),
		},
	}

	daughter = &Class{
		Name:   "acme/extendable/Daughter",
		Parent: mother,
		States: []*StateDef{
			{Name: "StateDefault"},
			{
				Name: "StateOne",
				Methods: []*MethodDescriptor{
					PublicMethod("method3", constant(321)),
					PublicMethod("method4", constant(654)),
				},
			},
			daughterThree,
		},
	}

	grandDaughter = &Class{
		Name:   "acme/extendable/GrandDaughter",
		Parent: daughter,
		States: []*StateDef{
			{
				Name:    "StateThree",
				Extends: daughterThree,
				Methods: []*MethodDescriptor{
					PublicMethod("method7", constant(777)),
				},
			},
		},
	}

	return
}

// build makes a proxy of the given class with its own states and the
// inherited states it doesn't override.  Nothing is enabled.
func build(t *testing.T, class *Class) *Proxy {
	p := NewProxy(class)
	seen := make(map[string]bool)
	for _, c := range append([]*Class{class}, class.Ancestors()...) {
		inherited := c != class
		for _, d := range c.States {
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			s := NewState(d.Name, c.Name, inherited, d.Aliases, d.AllMethods()...)
			if err := p.RegisterState(d.Name, s); err != nil {
				t.Fatal(err)
			}
		}
	}
	return p
}

func enable(t *testing.T, p *Proxy, names ...string) {
	for _, name := range names {
		if err := p.EnableState(name); err != nil {
			t.Fatal(err)
		}
	}
}

func mustCall(t *testing.T, p *Proxy, method string, args ...interface{}) interface{} {
	x, err := p.Call(method, args...)
	if err != nil {
		t.Fatalf("%s: %v", method, err)
	}
	return x
}

func isNotImplemented(err error) bool {
	var e *MethodNotImplemented
	return errors.As(err, &e)
}

func isAmbiguous(err error) bool {
	var e *AvailableSeveralMethodImplementations
	return errors.As(err, &e)
}

func isStateNotFound(err error) bool {
	var e *StateNotFound
	return errors.As(err, &e)
}

func isIllegalName(err error) bool {
	var e *IllegalName
	return errors.As(err, &e)
}
