package core

// Properties follow the visibility rules of proxy methods: the
// caller's Scope decides which declared visibilities it can touch.
// Undeclared properties are public.

func (p *Proxy) initProperties() {
	chain := append([]*Class{p.class}, p.class.Ancestors()...)
	for i := len(chain) - 1; 0 <= i; i-- {
		for _, d := range chain[i].Properties {
			if d == nil || d.Name == "" {
				continue
			}
			p.props[d.Name] = d.Value
		}
	}
}

// propertyVisibility returns the declared visibility of a property.
// The most derived declaration wins.
func (p *Proxy) propertyVisibility(name string) Visibility {
	for c := p.class; c != nil; c = c.Parent {
		for _, d := range c.Properties {
			if d != nil && d.Name == name {
				return d.Visibility.orPublic()
			}
		}
	}
	return Public
}

// accessible reports whether a caller with the given scope can touch
// the property.
func (p *Proxy) accessible(c Caller, name string) bool {
	scope, _ := p.Scope(c)
	switch p.propertyVisibility(name) {
	case Public:
		return true
	case Protected:
		return scope != Public
	}
	return scope == Private
}

func (p *Proxy) illegalProperty(name string) error {
	return &IllegalProperty{
		Class:    p.class.Name,
		Property: name,
	}
}

// Get reads a property on behalf of Outside.  See GetFrom.
func (p *Proxy) Get(name string) (interface{}, error) {
	return p.GetFrom(Outside, name)
}

// GetFrom reads a property on behalf of the given caller.
func (p *Proxy) GetFrom(c Caller, name string) (interface{}, error) {
	if name == "" {
		return nil, &IllegalName{Name: name}
	}
	if !p.accessible(c, name) {
		return nil, p.illegalProperty(name)
	}
	x, have := p.props[name]
	if !have {
		return nil, &UndefinedProperty{
			Class:    p.class.Name,
			Property: name,
		}
	}
	return x, nil
}

// Set writes a property on behalf of Outside.
func (p *Proxy) Set(name string, x interface{}) error {
	return p.SetFrom(Outside, name, x)
}

// SetFrom writes a property on behalf of the given caller.
func (p *Proxy) SetFrom(c Caller, name string, x interface{}) error {
	if name == "" {
		return &IllegalName{Name: name}
	}
	if !p.accessible(c, name) {
		return p.illegalProperty(name)
	}
	p.props[name] = x
	return nil
}

// Isset reports whether the property is accessible and set to
// something other than nil.
func (p *Proxy) Isset(name string) bool {
	return p.IssetFrom(Outside, name)
}

func (p *Proxy) IssetFrom(c Caller, name string) bool {
	if !p.accessible(c, name) {
		return false
	}
	x, have := p.props[name]
	return have && x != nil
}

// Unset removes a property.  Removing a missing property does
// nothing.
func (p *Proxy) Unset(name string) error {
	return p.UnsetFrom(Outside, name)
}

func (p *Proxy) UnsetFrom(c Caller, name string) error {
	if name == "" {
		return &IllegalName{Name: name}
	}
	if !p.accessible(c, name) {
		return p.illegalProperty(name)
	}
	delete(p.props, name)
	return nil
}
