package download

import (
	"errors"
	"fmt"
)

// ErrDestinationConflict is returned by Check when something that is
// not a regular file (a directory, usually) occupies an item's
// destination path. The item fails; it is never silently skipped or
// overwritten.
var ErrDestinationConflict = errors.New("destination path is occupied by a non-regular file")

// FetchError is a transport or status failure during an item transfer.
//
// The engine does not retry fetches; a FetchError becomes a Failed
// outcome carrying the URL and the underlying cause so the item can be
// retried manually.
type FetchError struct {
	// URL is the source URL of the failed transfer.
	URL string

	// Err is the underlying cause (connection error, HTTP status, timeout).
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
