package factory

import (
	"sort"
	"sync"

	"github.com/Comcast/states/core"
	"github.com/Comcast/states/loader"
)

// registry maps stated class names to their factories.
var registry = struct {
	sync.RWMutex
	factories map[string]StartupFactory
}{
	factories: make(map[string]StartupFactory),
}

// Register makes f the factory for the named class.  Registering
// again replaces the previous factory.
func Register(className string, f StartupFactory) error {
	if className == "" {
		return &core.IllegalName{Name: className}
	}
	if f == nil {
		return &core.InvalidArgument{
			Argument: "factory",
			Value:    "nil",
		}
	}
	registry.Lock()
	registry.factories[className] = f
	registry.Unlock()
	return nil
}

// Lookup finds the factory registered for the class.
func Lookup(className string) (StartupFactory, error) {
	registry.RLock()
	f, have := registry.factories[className]
	registry.RUnlock()
	if !have {
		return nil, &UnavailableFactory{Class: className}
	}
	return f, nil
}

// Registered returns the names of the classes with factories in
// order.
func Registered() []string {
	registry.RLock()
	acc := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		acc = append(acc, name)
	}
	registry.RUnlock()
	sort.Strings(acc)
	return acc
}

// Reset forgets every registered factory.
func Reset() {
	registry.Lock()
	registry.factories = make(map[string]StartupFactory)
	registry.Unlock()
}

// ForwardStartup starts up the proxy with the factory registered for
// its class.
func ForwardStartup(p *core.Proxy, stateName string) error {
	if p == nil {
		return &core.InvalidArgument{
			Argument: "proxy",
			Value:    "nil",
		}
	}
	f, err := Lookup(p.ClassName())
	if err != nil {
		return err
	}
	return f.Startup(p, stateName)
}

// New makes a started-up instance of the named class.
//
// When the registered factory is a Builder, it builds the proxy.
// Otherwise New makes a proxy for a bare class with that name and
// forwards its startup.
func New(className, stateName string) (*core.Proxy, error) {
	f, err := Lookup(className)
	if err != nil {
		return nil, err
	}
	if b, is := f.(Builder); is {
		return b.Build(stateName)
	}
	p := core.NewProxy(&core.Class{Name: className})
	if err := f.Startup(p, stateName); err != nil {
		return nil, err
	}
	return p, nil
}

// RegisterLibrary registers a Factory for every class in the library.
func RegisterLibrary(l *loader.Library) error {
	for _, name := range l.Names() {
		finder, err := l.Finder(name)
		if err != nil {
			return err
		}
		if err = Register(name, NewFactory(finder)); err != nil {
			return err
		}
	}
	return nil
}
