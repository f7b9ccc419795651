// Package expr is a core.Interpreter for method bodies that are
// single expressions in the language of
// https://github.com/expr-lang/expr.
//
// The environment has "this" (the proxy) and "args" (the method's
// arguments).  Proxy operations are functions that take the proxy
// first:
//
//    call(this, "method", args...)
//    callOn(this, other, "method", args...)
//    getProp(this, "name"), setProp(this, "name", x)
//    issetProp(this, "name"), unsetProp(this, "name")
//    enableState(this, "name"), disableState(this, "name"), switchState(this, "name")
//    inState(this, "name"), className(this)
//
// For example, a method that doubles the result of another:
//
//    2 * call(this, "price")
package expr

import (
	"context"
	"errors"
	"fmt"

	"github.com/Comcast/states/core"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// init adds a Interpreter as one of the DefaultInterpreters
func init() {
	core.DefaultInterpreters["expr"] = NewInterpreter()
}

var (
	// NotAProxy is returned when a function's first argument
	// isn't a stated object.
	NotAProxy = errors.New("first argument isn't a stated object")

	// NotAString is returned when a name isn't a string.
	NotAString = errors.New("name isn't a string")
)

// Interpreter implements core.Interpreter using expr.
//
// The property functions aren't called "get" and "set" because expr
// has a builtin "get".
type Interpreter struct {
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Compile compiles the expression.
func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	s, is := code.(string)
	if !is {
		return nil, fmt.Errorf("expr source should be a string, not a %T", code)
	}
	if s == "" {
		return nil, errors.New("expression must not be empty")
	}
	return exprlang.Compile(s, options()...)
}

// Exec runs the expression.
func (i *Interpreter) Exec(this *core.Proxy, args []interface{}, code interface{}, compiled interface{}) (interface{}, error) {
	if compiled == nil {
		var err error
		if compiled, err = i.Compile(context.Background(), code); err != nil {
			return nil, err
		}
	}
	p, is := compiled.(*exprvm.Program)
	if !is {
		return nil, fmt.Errorf("expr bad compilation: %T", compiled)
	}
	if args == nil {
		args = []interface{}{}
	}
	return exprlang.Run(p, environment(this, args))
}

func environment(this *core.Proxy, args []interface{}) map[string]interface{} {
	return map[string]interface{}{
		"this": this,
		"args": args,
	}
}

func options() []exprlang.Option {
	opts := []exprlang.Option{
		exprlang.Env(environment(nil, []interface{}{})),
		exprlang.AllowUndefinedVariables(),
	}
	for name, f := range functions {
		opts = append(opts, exprlang.Function(name, f))
	}
	return opts
}

// receiver splits the parameters into the proxy, a name, and the
// rest.
func receiver(params []interface{}) (*core.Proxy, string, []interface{}, error) {
	if len(params) == 0 {
		return nil, "", nil, NotAProxy
	}
	p, is := params[0].(*core.Proxy)
	if !is || p == nil {
		return nil, "", nil, NotAProxy
	}
	if len(params) == 1 {
		return p, "", nil, nil
	}
	name, is := params[1].(string)
	if !is {
		return nil, "", nil, NotAString
	}
	return p, name, params[2:], nil
}

func named(f func(p *core.Proxy, name string) error) func(params ...interface{}) (interface{}, error) {
	return func(params ...interface{}) (interface{}, error) {
		p, name, _, err := receiver(params)
		if err != nil {
			return nil, err
		}
		return nil, f(p, name)
	}
}

var functions = map[string]func(params ...interface{}) (interface{}, error){
	"call": func(params ...interface{}) (interface{}, error) {
		p, method, args, err := receiver(params)
		if err != nil {
			return nil, err
		}
		return p.Call(method, args...)
	},
	"callOn": func(params ...interface{}) (interface{}, error) {
		if len(params) < 2 {
			return nil, NotAProxy
		}
		p, is := params[0].(*core.Proxy)
		if !is {
			return nil, NotAProxy
		}
		that, method, args, err := receiver(params[1:])
		if err != nil {
			return nil, err
		}
		return that.CallFrom(p.Caller(), method, args...)
	},
	"getProp": func(params ...interface{}) (interface{}, error) {
		p, name, _, err := receiver(params)
		if err != nil {
			return nil, err
		}
		return p.Get(name)
	},
	"setProp": func(params ...interface{}) (interface{}, error) {
		p, name, rest, err := receiver(params)
		if err != nil {
			return nil, err
		}
		var x interface{}
		if 0 < len(rest) {
			x = rest[0]
		}
		return x, p.Set(name, x)
	},
	"issetProp": func(params ...interface{}) (interface{}, error) {
		p, name, _, err := receiver(params)
		if err != nil {
			return nil, err
		}
		return p.Isset(name), nil
	},
	"unsetProp": named(func(p *core.Proxy, name string) error {
		return p.Unset(name)
	}),
	"enableState": named(func(p *core.Proxy, name string) error {
		return p.EnableState(name)
	}),
	"disableState": named(func(p *core.Proxy, name string) error {
		return p.DisableState(name)
	}),
	"switchState": named(func(p *core.Proxy, name string) error {
		return p.SwitchState(name)
	}),
	"inState": func(params ...interface{}) (interface{}, error) {
		p, name, _, err := receiver(params)
		if err != nil {
			return nil, err
		}
		return p.InState(name)
	},
	"className": func(params ...interface{}) (interface{}, error) {
		p, _, _, err := receiver(params)
		if err != nil {
			return nil, err
		}
		return p.ClassName(), nil
	},
}
