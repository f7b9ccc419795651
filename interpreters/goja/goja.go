package goja

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Comcast/states/core"

	"github.com/dop251/goja"
	"github.com/google/uuid"
	"github.com/gorhill/cronexpr"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Exec if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// init adds a Interpreter as one of the DefaultInterpreters
func init() {
	core.DefaultInterpreters["goja"] = NewInterpreter()
}

// Interpreter implements core.Intepreter using Goja, which is a
// Go implementation of ECMAScript 5.1+.
//
// The code is the body of a function.  The function's "this" is the
// proxy, and its only parameter, "args", is the array of arguments
// given to the method.  Whatever the function returns is the result
// of the method.
//
// See https://github.com/dop251/goja.
type Interpreter struct {

	// Testing is used to expose or hide some runtime
	// capabilities.
	Testing bool

	// Timeout, if positive, interrupts an execution that runs
	// longer.
	Timeout time.Duration

	// Provider is a pluggable library provider, which can be used
	// instead of (or in addition to) the standard Provide method,
	// which will just use DefaultProvider if this Provider is
	// nil.
	LibraryProvider func(ctx context.Context, i *Interpreter, libraryName string) (string, error)
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// CompileLibrary checks that a library compiles.
func (i *Interpreter) CompileLibrary(ctx context.Context, name, src string) (interface{}, error) {
	return goja.Compile(name, src, true)
}

// ProvideLibrary resolves the library name into a library.
func (i *Interpreter) ProvideLibrary(ctx context.Context, name string) (string, error) {
	if i.LibraryProvider != nil {
		return i.LibraryProvider(ctx, i, name)
	}
	return DefaultLibraryProvider(ctx, i, name)
}

var DefaultLibraryProvider = MakeFileLibraryProvider(".")

// MakeFileLibraryProvider makes a library provider that supports
// (barely) names that are URLs with protocols of "file", "http", and
// "https". There currently is no additional control when using
// HTTP/HTTPS.
func MakeFileLibraryProvider(dir string) func(context.Context, *Interpreter, string) (string, error) {
	return func(ctx context.Context, i *Interpreter, name string) (string, error) {
		parts := strings.SplitN(name, "://", 2)
		if 2 != len(parts) {
			return "", fmt.Errorf("bad link '%s'", name)
		}
		switch parts[0] {
		case "file":
			filename := parts[1]
			bs, err := ioutil.ReadFile(dir + "/" + filename)
			if err != nil {
				return "", err
			}
			return string(bs), nil
		case "http", "https":
			req, err := http.NewRequest("GET", name, nil)
			if err != nil {
				return "", err
			}
			req = req.WithContext(ctx)
			client := http.Client{}
			resp, err := client.Do(req)
			if err != nil {
				return "", err
			}
			defer resp.Body.Close()
			switch resp.StatusCode {
			case http.StatusOK:
				bs, err := ioutil.ReadAll(resp.Body)
				if err != nil {
					return "", err
				}
				return string(bs), nil
			default:
				return "", fmt.Errorf("library fetch status %s %d",
					resp.Status, resp.StatusCode)
			}
		default:
			return "", fmt.Errorf("unknown protocol '%s'", parts[0])
		}
	}
}

func MakeMapLibraryProvider(srcs map[string]string) func(context.Context, *Interpreter, string) (string, error) {
	return func(ctx context.Context, i *Interpreter, name string) (string, error) {
		src, have := srcs[name]
		if !have {
			return "", fmt.Errorf("undefined library '%s'", name)
		}
		return src, nil
	}
}

// wrapSrc makes the method body into a function expression, which
// will be the value of the program.
func wrapSrc(src string) string {
	return fmt.Sprintf(";(function(args) {\n%s\n});\n", src)
}

// parseSource looks into the given map to try to find "requires" and
// "code" properties.
//
// This function supports map[interface{}]interface{} so that callers
// using other YAML parsers can still give structured sources.
func parseSource(vv map[string]interface{}) (code string, libs []string, err error) {
	x := vv["code"]
	if s, is := x.(string); is {
		code = s
	} else {
		err = errors.New("bad Goja method code")
		return
	}

	x = vv["requires"]
	switch vv := x.(type) {
	case string:
		libs = []string{vv}
	case []string:
		libs = vv
	case []interface{}:
		libs = make([]string, 0, len(vv))
		for _, x := range vv {
			switch vv := x.(type) {
			case string:
				libs = append(libs, vv)
			default:
				err = errors.New("bad library")
				return
			}
		}
	}

	return
}

// AsSource extracts the code and the required libraries from a
// method source, which is either a string or a map with "code" and
// "requires".
func AsSource(src interface{}) (code string, libs []string, err error) {
	switch vv := src.(type) {
	case string:
		code = vv
		return
	case map[interface{}]interface{}:
		m := make(map[string]interface{})
		for k, v := range vv {
			str, ok := k.(string)
			if !ok {
				err = fmt.Errorf("bad src key (%T)", k)
				return
			}
			m[str] = v
		}
		return parseSource(m)
	case map[string]interface{}:
		return parseSource(vv)
	default:
		err = fmt.Errorf("bad Goja source (%T)", src)
		return
	}
}

// Compile prepends the required libraries to the wrapped code and
// calls goja.Compile.
//
// This method can block if the interpreter's library Provider blocks
// in order to obtain external libraries.
func (i *Interpreter) Compile(ctx context.Context, src interface{}) (interface{}, error) {
	code, libs, err := AsSource(src)
	if err != nil {
		return nil, err
	}

	code = wrapSrc(code)

	var libsSrc string
	for _, lib := range libs {
		libSrc, err := i.ProvideLibrary(ctx, lib)
		if err != nil {
			return nil, err
		}
		libsSrc += libSrc + "\n"
	}

	code = libsSrc + code

	obj, err := goja.Compile("", code, true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + code)
	}

	return obj, nil
}

func protest(o *goja.Runtime, x interface{}) {
	panic(o.ToValue(x))
}

func export(v goja.Value) interface{} {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

// Exec implements the Interpreter method of the same name.
//
// "this" offers the proxy's operations:
//
//    call(method, ...args): call a method (with private scope).
//    callOn(obj, method, ...args): call a method of another stated
//      object on behalf of this one.
//    get(name), set(name, x), isset(name), unset(name): properties.
//    enableState(name), disableState(name), switchState(name),
//      inState(name), listEnabledStates(): lifecycle.
//    className(): the name of the stated class.
//
// Some useful utilities are available at _:
//
//    gensym(): generate a random string.
//    esc(s): URL query-escape the given string.
//    cronNext(expr): the next time (RFC3339) for the cron expression.
//    log(x): log x as JSON.
//
// For testing only:
//
//    sleep(ms): sleep for the given number of milliseconds.
//
// The Testing flag must be set to see sleep().
//
// The code sees the arguments as the array args.  If it assigns to
// an element, the new value replaces the caller's argument after the
// call, as a Go method writing to its args would.
//
// An error returned by a proxy operation is thrown as a JavaScript
// exception.  If the code doesn't catch it, Exec returns the
// original error.
func (i *Interpreter) Exec(this *core.Proxy, args []interface{}, src interface{}, compiled interface{}) (interface{}, error) {

	var p *goja.Program
	if compiled == nil {
		var err error
		if compiled, err = i.Compile(context.Background(), src); err != nil {
			return nil, err
		}
	}
	var is bool
	if p, is = compiled.(*goja.Program); !is {
		return nil, fmt.Errorf("Goja bad compilation: %T %#v", compiled, compiled)
	}

	o := goja.New()

	var (
		thrown *goja.Object
		failed error
	)

	fail := func(err error) {
		thrown = o.NewGoError(err)
		failed = err
		panic(thrown)
	}

	stringArg := func(call goja.FunctionCall, n int) string {
		s, is := export(call.Argument(n)).(string)
		if !is {
			protest(o, fmt.Sprintf("argument %d should be a string", n))
		}
		return s
	}

	rest := func(call goja.FunctionCall, n int) []interface{} {
		if len(call.Arguments) <= n {
			return nil
		}
		acc := make([]interface{}, 0, len(call.Arguments)-n)
		for _, v := range call.Arguments[n:] {
			acc = append(acc, export(v))
		}
		return acc
	}

	self := o.NewObject()

	self.Set("call", func(call goja.FunctionCall) goja.Value {
		x, err := this.Call(stringArg(call, 0), rest(call, 1)...)
		if err != nil {
			fail(err)
		}
		return o.ToValue(x)
	})

	self.Set("callOn", func(call goja.FunctionCall) goja.Value {
		that, is := export(call.Argument(0)).(*core.Proxy)
		if !is {
			protest(o, "callOn needs a stated object")
		}
		x, err := that.CallFrom(this.Caller(), stringArg(call, 1), rest(call, 2)...)
		if err != nil {
			fail(err)
		}
		return o.ToValue(x)
	})

	self.Set("get", func(call goja.FunctionCall) goja.Value {
		x, err := this.Get(stringArg(call, 0))
		if err != nil {
			fail(err)
		}
		return o.ToValue(x)
	})

	self.Set("set", func(call goja.FunctionCall) goja.Value {
		if err := this.Set(stringArg(call, 0), export(call.Argument(1))); err != nil {
			fail(err)
		}
		return goja.Undefined()
	})

	self.Set("isset", func(call goja.FunctionCall) goja.Value {
		return o.ToValue(this.Isset(stringArg(call, 0)))
	})

	self.Set("unset", func(call goja.FunctionCall) goja.Value {
		if err := this.Unset(stringArg(call, 0)); err != nil {
			fail(err)
		}
		return goja.Undefined()
	})

	lifecycle := func(f func(string) error) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			if err := f(stringArg(call, 0)); err != nil {
				fail(err)
			}
			return goja.Undefined()
		}
	}
	self.Set("enableState", lifecycle(this.EnableState))
	self.Set("disableState", lifecycle(this.DisableState))
	self.Set("switchState", lifecycle(this.SwitchState))

	self.Set("inState", func(call goja.FunctionCall) goja.Value {
		in, err := this.InState(stringArg(call, 0))
		if err != nil {
			fail(err)
		}
		return o.ToValue(in)
	})

	self.Set("listEnabledStates", func(call goja.FunctionCall) goja.Value {
		names := this.ListEnabledStates()
		acc := make([]interface{}, len(names))
		for i, name := range names {
			acc[i] = name
		}
		return o.NewArray(acc...)
	})

	self.Set("className", func(call goja.FunctionCall) goja.Value {
		return o.ToValue(this.ClassName())
	})

	env := map[string]interface{}{}

	o.Set("_", env)

	if i.Testing {
		o.Set("sleep", func(ms int) {
			time.Sleep(time.Duration(ms) * time.Millisecond)
		})
	}

	env["gensym"] = func() interface{} {
		return uuid.NewString()
	}

	env["cronNext"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		cronExpr, is := x.(string)
		if !is {
			protest(o, "not a string")
		}

		c, err := cronexpr.Parse(cronExpr)
		if err != nil {
			protest(o, err.Error())
		}
		return c.Next(time.Now()).UTC().Format(time.RFC3339Nano)
	}

	env["esc"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		s, is := x.(string)
		if !is {
			protest(o, "not a string")
		}
		return url.QueryEscape(s)
	}

	env["log"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		js, err := json.Marshal(&x)
		if err != nil {
			log.Println("goja.log (can't marshal: " + err.Error() + ")")
		} else {
			log.Println(string(js))
		}

		return x
	}

	if 0 < i.Timeout {
		timer := time.AfterFunc(i.Timeout, func() {
			o.Interrupt(InterruptedMessage)
		})
		defer timer.Stop()
	}

	v, err := o.RunProgram(p)
	if err != nil {
		return nil, interpret(err, thrown, failed)
	}

	fn, is := goja.AssertFunction(v)
	if !is {
		return nil, fmt.Errorf("Goja program gave a %T, not a function", export(v))
	}

	vals := make([]goja.Value, len(args))
	items := make([]interface{}, len(args))
	for n, x := range args {
		vals[n] = o.ToValue(x)
		items[n] = vals[n]
	}
	arr := o.NewArray(items...)

	v, err = fn(self, arr)
	if err != nil {
		return nil, interpret(err, thrown, failed)
	}

	// Elements the code replaced go back to the caller's args.
	for n := range args {
		if x := arr.Get(strconv.Itoa(n)); x != nil && !x.SameAs(vals[n]) {
			args[n] = export(x)
		}
	}

	return export(v), nil
}

// interpret turns a Goja error back into the error that caused it if
// possible.
func interpret(err error, thrown *goja.Object, failed error) error {
	if _, is := err.(*goja.InterruptedError); is {
		return Interrupted
	}
	if ex, is := err.(*goja.Exception); is && thrown != nil && failed != nil {
		if v, is := ex.Value().(*goja.Object); is && v == thrown {
			return failed
		}
	}
	return err
}
