package feeds

import "fmt"

// FetchError is returned by every feed client on transport failure or a
// non-2xx response. Callers decide whether the source is required or can be
// defaulted away.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s fetch failed: unexpected status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s fetch failed: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
