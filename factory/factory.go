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

// Package factory builds stated objects.
//
// A Factory asks a loader.Finder for the states of its class, builds
// and registers them on a proxy, and enables the initial state.
// Factories are registered by class name in a process-wide registry
// so that New can construct an object given only its class name.
package factory

import (
	"errors"

	"github.com/Comcast/states/core"
	"github.com/Comcast/states/loader"
	"github.com/Comcast/states/util"
)

// StartupFactory can initialize a fresh proxy.
type StartupFactory interface {
	// Startup registers the states of the proxy's class and
	// enables stateName or, if stateName is empty, the class's
	// default state.
	Startup(p *core.Proxy, stateName string) error
}

// Builder is a StartupFactory that can also make the proxy.
type Builder interface {
	StartupFactory
	Build(stateName string) (*core.Proxy, error)
}

// Factory is the standard StartupFactory for one stated class.
type Factory struct {
	finder loader.Finder
}

// NewFactory makes a Factory that gets states from the given Finder.
func NewFactory(f loader.Finder) *Factory {
	return &Factory{
		finder: f,
	}
}

// Finder returns the factory's finder, which might be nil.
func (f *Factory) Finder() loader.Finder {
	return f.finder
}

func (f *Factory) className() string {
	if f.finder == nil {
		return ""
	}
	return f.finder.StatedClassName()
}

// Startup implements StartupFactory.
//
// The proxy must be an instance of the finder's class.  Inherited
// states are built in private mode.  If the state to enable isn't
// available, the result is a core.StateNotFound, and the proxy keeps
// the states that were registered.
func (f *Factory) Startup(p *core.Proxy, stateName string) error {
	if f.finder == nil {
		var class string
		if p != nil {
			class = p.ClassName()
		}
		return &UnavailableLoader{Class: class}
	}
	if p == nil {
		return &core.IllegalProxy{
			Class:  f.className(),
			Reason: "no proxy",
		}
	}
	if p.ClassName() != f.className() {
		return &core.IllegalProxy{
			Class:  f.className(),
			Reason: `proxy is an instance of "` + p.ClassName() + `"`,
		}
	}

	es, err := f.finder.ListAvailableStates()
	if err != nil {
		return err
	}
	for _, e := range es {
		s, err := f.finder.BuildState(e)
		if err != nil {
			var illegal *core.IllegalState
			if errors.As(err, &illegal) {
				return err
			}
			return &core.IllegalState{
				State:  e.Name,
				Reason: err.Error(),
			}
		}
		if err = p.RegisterState(e.Name, s); err != nil {
			return err
		}
	}

	if stateName == "" {
		if c := f.finder.Class(); c != nil {
			stateName = c.DefaultStateName()
		} else {
			stateName = core.DefaultStateName
		}
	}
	if err = p.EnableState(stateName); err != nil {
		return err
	}

	util.Logf("factory started %s (%s) with %d states in %s", p.ClassName(), p.Id(), len(es), stateName)

	return nil
}

// Build makes a proxy of the factory's class and starts it up.
func (f *Factory) Build(stateName string) (*core.Proxy, error) {
	if f.finder == nil {
		return nil, &UnavailableLoader{}
	}
	p := core.NewProxy(f.finder.Class())
	if err := f.Startup(p, stateName); err != nil {
		return nil, err
	}
	return p, nil
}
