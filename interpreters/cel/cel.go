// Package cel is a core.Interpreter for method bodies written in the
// Common Expression Language (https://github.com/google/cel-go).
//
// CEL bodies are side-effect free.  They see
//
//    args       the method's arguments
//    className  the name of the proxy's stated class
//    states     the names of the enabled states
//
// and can use
//
//    prop(name)         read a property
//    call(name)         call a method (with the private scope)
//    call(name, [args])
//    inState(name)
//
// For example, a method that says whether an order can ship:
//
//    inState("Paid") && size(args) == 0 && prop("items") > 0
package cel

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/Comcast/states/core"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// init adds a Interpreter as one of the DefaultInterpreters
func init() {
	core.DefaultInterpreters["cel"] = NewInterpreter()
}

// Interpreter implements core.Interpreter using cel-go.
type Interpreter struct {
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

var listType = reflect.TypeOf([]interface{}{})

// env makes an environment whose functions work on the given proxy.
//
// Checking only needs the declarations, so Compile uses a nil proxy.
func env(this *core.Proxy) (*celgo.Env, error) {
	fail := func(err error) ref.Val {
		return types.NewErr("%s", err.Error())
	}
	result := func(x interface{}, err error) ref.Val {
		if err != nil {
			return fail(err)
		}
		if x == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(x)
	}
	name := func(v ref.Val) (string, error) {
		s, is := v.Value().(string)
		if !is {
			return "", fmt.Errorf("%v isn't a string", v.Value())
		}
		return s, nil
	}

	return celgo.NewEnv(
		celgo.Variable("args", celgo.ListType(celgo.DynType)),
		celgo.Variable("className", celgo.StringType),
		celgo.Variable("states", celgo.ListType(celgo.StringType)),

		celgo.Function("prop",
			celgo.Overload("prop_string", []*celgo.Type{celgo.StringType}, celgo.DynType,
				celgo.UnaryBinding(func(v ref.Val) ref.Val {
					s, err := name(v)
					if err != nil {
						return fail(err)
					}
					return result(this.Get(s))
				}))),

		celgo.Function("call",
			celgo.Overload("call_string", []*celgo.Type{celgo.StringType}, celgo.DynType,
				celgo.UnaryBinding(func(v ref.Val) ref.Val {
					s, err := name(v)
					if err != nil {
						return fail(err)
					}
					return result(this.Call(s))
				})),
			celgo.Overload("call_string_list", []*celgo.Type{celgo.StringType, celgo.ListType(celgo.DynType)}, celgo.DynType,
				celgo.BinaryBinding(func(v, vs ref.Val) ref.Val {
					s, err := name(v)
					if err != nil {
						return fail(err)
					}
					x, err := vs.ConvertToNative(listType)
					if err != nil {
						return fail(err)
					}
					return result(this.Call(s, x.([]interface{})...))
				}))),

		celgo.Function("inState",
			celgo.Overload("inState_string", []*celgo.Type{celgo.StringType}, celgo.BoolType,
				celgo.UnaryBinding(func(v ref.Val) ref.Val {
					s, err := name(v)
					if err != nil {
						return fail(err)
					}
					return result(this.InState(s))
				}))),
	)
}

// Compile parses and checks the expression.
func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	s, is := code.(string)
	if !is {
		return nil, fmt.Errorf("cel source should be a string, not a %T", code)
	}
	if s == "" {
		return nil, errors.New("expression must not be empty")
	}
	e, err := env(nil)
	if err != nil {
		return nil, err
	}
	ast, issues := e.Compile(s)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	return ast, nil
}

// Exec evaluates the expression.
func (i *Interpreter) Exec(this *core.Proxy, args []interface{}, code interface{}, compiled interface{}) (interface{}, error) {
	if compiled == nil {
		var err error
		if compiled, err = i.Compile(context.Background(), code); err != nil {
			return nil, err
		}
	}
	ast, is := compiled.(*celgo.Ast)
	if !is {
		return nil, fmt.Errorf("cel bad compilation: %T", compiled)
	}

	e, err := env(this)
	if err != nil {
		return nil, err
	}
	prg, err := e.Program(ast)
	if err != nil {
		return nil, err
	}

	if args == nil {
		args = []interface{}{}
	}
	out, _, err := prg.Eval(map[string]interface{}{
		"args":      args,
		"className": this.ClassName(),
		"states":    this.ListEnabledStates(),
	})
	if err != nil {
		return nil, err
	}
	if out == types.NullValue {
		return nil, nil
	}
	return out.Value(), nil
}
