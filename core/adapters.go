package core

import "fmt"

// These methods let a stated object act like a collection, an
// iterator, or something serializable.  Each one just forwards to the
// dispatcher, so the enabled states decide what happens.

// Count calls "count" and converts the result to an int.
func (p *Proxy) Count() (int, error) {
	x, err := p.Call("count")
	if err != nil {
		return 0, err
	}
	switch vv := x.(type) {
	case int:
		return vv, nil
	case int64:
		return int(vv), nil
	case float64:
		return int(vv), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("count returned a %T", x)
	}
}

// OffsetExists calls "offsetExists".
func (p *Proxy) OffsetExists(offset interface{}) (bool, error) {
	x, err := p.Call("offsetExists", offset)
	if err != nil {
		return false, err
	}
	b, _ := x.(bool)
	return b, nil
}

// OffsetGet calls "offsetGet".
func (p *Proxy) OffsetGet(offset interface{}) (interface{}, error) {
	return p.Call("offsetGet", offset)
}

// OffsetSet calls "offsetSet".
func (p *Proxy) OffsetSet(offset, value interface{}) error {
	_, err := p.Call("offsetSet", offset, value)
	return err
}

// OffsetUnset calls "offsetUnset".
func (p *Proxy) OffsetUnset(offset interface{}) error {
	_, err := p.Call("offsetUnset", offset)
	return err
}

// Current calls "current".
func (p *Proxy) Current() (interface{}, error) {
	return p.Call("current")
}

// Key calls "key".
func (p *Proxy) Key() (interface{}, error) {
	return p.Call("key")
}

// Next calls "next".
func (p *Proxy) Next() error {
	_, err := p.Call("next")
	return err
}

// Rewind calls "rewind".
func (p *Proxy) Rewind() error {
	_, err := p.Call("rewind")
	return err
}

// Valid calls "valid".
func (p *Proxy) Valid() (bool, error) {
	x, err := p.Call("valid")
	if err != nil {
		return false, err
	}
	b, _ := x.(bool)
	return b, nil
}

// Seek calls "seek".
func (p *Proxy) Seek(position int) error {
	_, err := p.Call("seek", position)
	return err
}

// Serialize calls "serialize", which should return a string.
func (p *Proxy) Serialize() (string, error) {
	x, err := p.Call("serialize")
	if err != nil {
		return "", err
	}
	switch vv := x.(type) {
	case string:
		return vv, nil
	case []byte:
		return string(vv), nil
	default:
		return "", fmt.Errorf("serialize returned a %T", x)
	}
}

// Unserialize calls "unserialize".
func (p *Proxy) Unserialize(s string) error {
	_, err := p.Call("unserialize", s)
	return err
}
