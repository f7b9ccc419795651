// Package interpreters collects the standard method body
// interpreters.
package interpreters

import (
	"github.com/Comcast/states/core"
	"github.com/Comcast/states/interpreters/cel"
	"github.com/Comcast/states/interpreters/expr"
	"github.com/Comcast/states/interpreters/goja"
	"github.com/Comcast/states/interpreters/noop"
)

// Standard returns a map of the standard interpreters.
//
// "goja" and "ecmascript" run ECMAScript function bodies.  "expr" and
// "cel" run expressions.  "noop" does nothing.
func Standard() core.InterpretersMap {
	is := core.NewInterpretersMap()

	es := goja.NewInterpreter()
	is["goja"] = es
	is["ecmascript"] = es
	is["ecmascript-5.1"] = es

	is["expr"] = expr.NewInterpreter()
	is["cel"] = cel.NewInterpreter()

	is["noop"] = noop.NewInterpreter()

	return is
}
