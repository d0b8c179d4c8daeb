package shared

import "errors"

// DegradedError is returned when an operation failed after the collection
// could not be read and an empty one was used instead.
// Both errors remain reachable through errors.Is and errors.As.
type DegradedError struct {
	LoadErr error
	Err     error
}

func (e *DegradedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the operation error followed by the load error.
func (e *DegradedError) Unwrap() []error {
	return []error{e.Err, e.LoadErr}
}

// Failed returns err, attaching loadErr when the collection was degraded.
func Failed(loadErr, err error) error {
	if loadErr == nil || err == nil {
		return err
	}
	return &DegradedError{LoadErr: loadErr, Err: err}
}

// LoadError returns the load error attached to err, if any.
func LoadError(err error) error {
	var de *DegradedError
	if errors.As(err, &de) {
		return de.LoadErr
	}
	return nil
}
