package tools

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/Comcast/states/core"
	"github.com/Comcast/states/interpreters"
	"github.com/Comcast/states/interpreters/noop"
	"github.com/Comcast/states/loader"
	. "github.com/Comcast/states/util/testutil"

	md "github.com/russross/blackfriday/v2"
)

func RenderClassHTML(c *core.Class, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="classDoc doc">%s</div>`, md.Run([]byte(c.Doc)))

	if c.Parent != nil {
		f(`<div class="parent">extends <a href="#%s"><code>%s</code></a></div>`, c.Parent.Name, c.Parent.Name)
	}
	f(`<div class="defaultState">default state <code>%s</code></div>`, c.DefaultStateName())

	methods := func(ms []*core.MethodDescriptor) {
		f(`<table class="methods">`)
		for _, m := range ms {
			if m == nil {
				continue
			}
			v := m.Visibility
			if v == "" {
				v = core.Public
			}
			f(`<tr class="method"><td><span class="methodName">%s</span></td>`, m.Name)
			f(`<td><span class="visibility %s">%s</span>`, v, v)
			if m.Static {
				f(` <span class="static">static</span>`)
			}
			f(`</td><td>`)
			if m.Doc != "" {
				f(`<div class="methodDoc doc">%s</div>`, md.Run([]byte(m.Doc)))
			}
			if m.Source != nil {
				src, is := m.Source.Source.(string)
				if !is {
					src = JS(m.Source.Source)
				}
				f(`<div class="code"><span class="interpreter">%s</span><pre>%s</pre></div>`,
					m.Source.Interpreter, html.EscapeString(src))
			}
			f(`</td></tr>`)
		}
		f(`</table>`)
	}

	if 0 < len(c.Properties) {
		f(`<div class="properties"><table>`)
		for _, p := range c.Properties {
			if p == nil {
				continue
			}
			f(`<tr class="property"><td>%s</td><td>%s</td><td><code>%s</code></td></tr>`,
				p.Name, p.Visibility, html.EscapeString(JS(p.Value)))
		}
		f(`</table></div>`)
	}

	if 0 < len(c.Methods) {
		f(`<div class="proxyMethods">`)
		methods(c.Methods)
		f(`</div>`)
	}

	{ // States
		f(`<div class="states"><table>`)
		for _, d := range c.States {
			if d == nil {
				continue
			}
			f(`<tr class="state"><td><span id="%s" class="stateName">%s</span></td><td>`,
				c.CanonicalStateName(d.Name), d.Name)
			if 0 < len(d.Aliases) {
				f(`<div class="aliases">aliases <code>%s</code></div>`, html.EscapeString(JS(d.Aliases)))
			}
			if d.Extends != nil {
				f(`<div class="extends">extends the inherited state</div>`)
			}
			if d.Doc != "" {
				f(`<div class="stateDoc doc">%s</div>`, md.Run([]byte(d.Doc)))
			}
			methods(d.Methods)
			f(`</td></tr>`)
		}
		f(`</table></div>`)
	}

	return nil
}

func RenderClassPage(c *core.Class, out io.Writer, cssFiles []string) error {

	if cssFiles == nil {
		cssFiles = []string{"/static/class-html.css"}
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, c.Name)

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1 id="%s">%s</h1>
`, c.Name, c.Name)

	if err := RenderClassHTML(c, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}

// quietInterpreters maps every standard interpreter name to a silent
// noop interpreter so that a class can be rendered without compiling
// its method bodies.
func quietInterpreters() core.InterpretersMap {
	is := core.NewInterpretersMap()
	i := noop.NewInterpreter()
	i.Silent = true
	for name := range interpreters.Standard() {
		is[name] = i
	}
	return is
}

func ReadAndRenderClassPage(filename, className string, cssFiles []string, out io.Writer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := loader.NewLibrary()
	if _, err := l.ReadFile(ctx, filename, quietInterpreters()); err != nil {
		return err
	}

	c, err := l.Class(className)
	if err != nil {
		return err
	}

	return RenderClassPage(c, out, cssFiles)
}
