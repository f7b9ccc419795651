package noop

import (
	"context"
	"log"

	"github.com/Comcast/states/core"
)

// Interpreter is an core.Interpreter whose methods do nothing and
// return nothing.  Handy for sketching a class before writing the
// bodies of its methods.
type Interpreter struct {
	// Silent, if false, will suppress warning log messages.
	Silent bool
}

func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	if !i.Silent {
		log.Printf("warning: Using noop Interpreter for compilation")
	}
	return nil, nil
}

func (i *Interpreter) Exec(this *core.Proxy, args []interface{}, code interface{}, compiled interface{}) (interface{}, error) {
	if !i.Silent {
		log.Printf("warning: Using noop Interpreter to execute a method of %s", this.ClassName())
	}
	return nil, nil
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}
