package core

import "strings"

// Visibility is the declared visibility of a method or a property.
//
// The same three values are used for the scope granted to a call
// site: a call made with Private scope can see everything a Protected
// call can see, which in turn sees everything a Public call sees.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// Valid reports whether v is one of the three recognized values.
func (v Visibility) Valid() bool {
	switch v {
	case Public, Protected, Private:
		return true
	}
	return false
}

// ParseVisibility turns a string like "Protected" into a Visibility.
//
// The empty string means Public.
func ParseVisibility(s string) (Visibility, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Public, nil
	}
	v := Visibility(s)
	if !v.Valid() {
		return "", &InvalidArgument{
			Argument: "visibility",
			Value:    s,
		}
	}
	return v, nil
}

// orPublic treats an unset Visibility as Public.
func (v Visibility) orPublic() Visibility {
	if v == "" {
		return Public
	}
	return v
}
