package factory

// UnavailableFactory occurs when no factory is registered for a
// stated class.
type UnavailableFactory struct {
	Class string
}

func (e *UnavailableFactory) Error() string {
	return `no factory for class "` + e.Class + `"`
}

// UnavailableLoader occurs when a factory has no finder for its
// class.
type UnavailableLoader struct {
	Class string
}

func (e *UnavailableLoader) Error() string {
	return `no finder for class "` + e.Class + `"`
}
