package capture

import "fmt"

// Probe failures fall into two kinds: the input is not this kind of source
// at all (move on to the next reader), or it is this kind but could not be
// opened (a stronger diagnostic that wins in the aggregate error).

type wrongKindError struct {
	err error
}

func (e *wrongKindError) Error() string { return e.err.Error() }
func (e *wrongKindError) Unwrap() error { return e.err }

func wrongKind(format string, args ...any) error {
	return &wrongKindError{err: fmt.Errorf(format, args...)}
}

type openFailedError struct {
	err error
}

func (e *openFailedError) Error() string { return e.err.Error() }
func (e *openFailedError) Unwrap() error { return e.err }

func openFailed(format string, args ...any) error {
	return &openFailedError{err: fmt.Errorf(format, args...)}
}
