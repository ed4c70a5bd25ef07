package health

import "errors"

var (
	// ErrNetwork marks a request that did not complete.
	ErrNetwork = errors.New("network error")
	// ErrParse marks a response body that is not a health report object.
	ErrParse = errors.New("parse error")
)

// FetchError is returned by Fetch. Kind is ErrNetwork or ErrParse; both
// match with errors.Is, as does the underlying cause.
type FetchError struct {
	Kind error
	Err  error
}

// Error returns the cause's message only, which is what the widget shows.
func (e *FetchError) Error() string {
	return e.Err.Error()
}

func (e *FetchError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
