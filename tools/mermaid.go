/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"fmt"
	"io"
	"regexp"

	. "github.com/Comcast/states/core"
	"github.com/Comcast/states/util"
)

type MermaidOpts struct {
	// ShowMethods lists the methods of each state.
	ShowMethods bool `json:"showMethods"`

	// ShowProperties lists the declared properties of each
	// class.
	ShowProperties bool `json:"showProperties"`

	// ShowStatic includes static methods, which are marked with
	// '$'.
	ShowStatic bool `json:"showStatic,omitempty"`

	// StateFill is the fill color for state boxes.
	StateFill string `json:"stateFill,omitempty"`
}

var notMermaid = regexp.MustCompile(`[^A-Za-z0-9_]`)

func mermaidId(name string) string {
	return notMermaid.ReplaceAllString(name, "_")
}

func visibilityMark(v Visibility) string {
	switch v {
	case Private:
		return "-"
	case Protected:
		return "#"
	}
	return "+"
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) class
// diagram for the given stated class and its ancestors.
//
// Each stated class is a box with its proxy methods, and each of its
// states is a box annotated with <<state>> and composed into it.
func Mermaid(class *Class, w io.Writer, opts *MermaidOpts) error {
	if class == nil {
		return &IllegalName{}
	}

	if opts == nil {
		opts = &MermaidOpts{
			ShowMethods:    true,
			ShowProperties: true,
			StateFill:      "#bcf2db",
		}
	}

	f := func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}

	// Root first.
	ancestors := class.Ancestors()
	chain := make([]*Class, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; 0 <= i; i-- {
		chain = append(chain, ancestors[i])
	}
	chain = append(chain, class)

	util.Logf("processing %d classes", len(chain))

	f("classDiagram")

	methods := func(ms []*MethodDescriptor) {
		if !opts.ShowMethods {
			return
		}
		for _, m := range ms {
			if m == nil || (m.Static && !opts.ShowStatic) {
				continue
			}
			static := ""
			if m.Static {
				static = "$"
			}
			f("    %s%s()%s", visibilityMark(m.Visibility), m.Name, static)
		}
	}

	var fills []string
	for i, c := range chain {
		cid := mermaidId(c.Name)
		f("  class %s {", cid)
		if opts.ShowProperties {
			for _, p := range c.Properties {
				if p == nil {
					continue
				}
				f("    %s%s", visibilityMark(p.Visibility), p.Name)
			}
		}
		methods(c.Methods)
		f("  }")

		if 0 < i {
			f("  %s <|-- %s", mermaidId(chain[i-1].Name), cid)
		}

		for _, d := range c.States {
			if d == nil {
				continue
			}
			sid := cid + "_" + mermaidId(d.Name)
			f("  class %s {", sid)
			f("    <<state>>")
			methods(d.Methods)
			f("  }")
			f("  %s *-- %s : %s", cid, sid, d.Name)
			if d.Extends != nil {
				for _, a := range c.Ancestors() {
					if a.StateDef(d.Name) == d.Extends {
						f("  %s_%s <|-- %s", mermaidId(a.Name), mermaidId(d.Name), sid)
						break
					}
				}
			}
			fills = append(fills, sid)
		}
	}

	if opts.StateFill != "" {
		for _, sid := range fills {
			f("  style %s fill:%s", sid, opts.StateFill)
		}
	}

	util.Logf("mermaid gen done")

	return nil
}
