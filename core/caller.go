package core

// Caller describes the code that is calling into a proxy.
//
// Go can't tell a method who called it, so the caller identifies
// itself.  The zero Caller (Outside) is unrelated code and gets the
// public scope.  A stated object calling another object should pass
// its own Caller(), which carries both its class and its identity.
type Caller struct {
	// Class is the stated class of the calling code.  If nil and
	// Object is given, Object's class is used.
	Class *Class

	// Object is the calling instance, if any.
	Object *Proxy
}

// Outside is the Caller for code that doesn't belong to any stated
// class.
var Outside = Caller{}

// Caller returns the Caller that this proxy presents when its code
// calls another object.
func (p *Proxy) Caller() Caller {
	return Caller{
		Class:  p.class,
		Object: p,
	}
}

func (c Caller) class() *Class {
	if c.Class != nil {
		return c.Class
	}
	if c.Object != nil {
		return c.Object.class
	}
	return nil
}

// origin is the stated class on whose behalf the caller is running:
// the class of the method currently executing on the calling object
// if there is one, otherwise the caller's class.
func (c Caller) origin() string {
	if c.Object != nil && c.Object.Inside() {
		return c.Object.top()
	}
	if class := c.class(); class != nil {
		return class.Name
	}
	return ""
}

// Scope returns the scope and the origin class that a call from the
// given caller gets.
//
// 1. A method of this very proxy is running (the caller stack isn't
// empty) and the caller is Outside or this proxy: Private, and the
// origin is the class of the method at the top of the stack.  Any
// other object that identifies itself is classified by steps 3 to 5
// even while this proxy is busy.
//
// 2. The caller is this proxy: Private.
//
// 3. The caller belongs to exactly this proxy's class (a sibling
// instance, say): Private.
//
// 4. The caller belongs to a subclass of this proxy's class:
// Protected.
//
// 5. Anything else, including an unknown or missing class: Public.
func (p *Proxy) Scope(c Caller) (Visibility, string) {
	if c.Object == p || c == Outside {
		if p.Inside() {
			return Private, p.top()
		}
	}
	if c.Object == p {
		return Private, p.class.Name
	}
	class := c.class()
	if class == nil || class.Name == "" || p.class.Name == "" {
		return Public, ""
	}
	if class.Name == p.class.Name {
		return Private, c.origin()
	}
	if class.IsSubclassOf(p.class.Name) {
		return Protected, c.origin()
	}
	return Public, ""
}

// top returns the stated class at the top of the caller stack, or ""
// if the stack is empty.
func (p *Proxy) top() string {
	if n := len(p.callers); 0 < n {
		return p.callers[n-1]
	}
	return ""
}

func (p *Proxy) pushCaller(className string) {
	p.callers = append(p.callers, className)
}

func (p *Proxy) popCaller() {
	if n := len(p.callers); 0 < n {
		p.callers = p.callers[:n-1]
	}
}

// Inside reports whether a method is currently running on this proxy.
func (p *Proxy) Inside() bool {
	return 0 < len(p.callers)
}

// Callers returns a copy of the caller stack, bottom first.
func (p *Proxy) Callers() []string {
	return copyStrings(p.callers)
}
