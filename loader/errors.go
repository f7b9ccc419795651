package loader

// UnavailableState occurs when a finder can't find or build the
// requested state.
type UnavailableState struct {
	Class string
	State string
}

func (e *UnavailableState) Error() string {
	return `state "` + e.State + `" is not available for class "` + e.Class + `"`
}

// UnknownClass occurs when a class can't be found or its definition
// is unusable (say, because its parent is missing).
type UnknownClass struct {
	Class  string
	Reason string
}

func (e *UnknownClass) Error() string {
	msg := `unknown class "` + e.Class + `"`
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
