package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the upstream has no book (or no books) to show.
	ErrNotFound = errors.New("book not found")

	// ErrMissingPublished is returned when a book cannot take part in
	// latest-book selection because it has no published value.
	ErrMissingPublished = errors.New("book has no published date")

	errNoBooks = errors.New("books API returned an empty listing")
)

// UpstreamError reports a failed exchange with the books API: a transport
// failure, an unexpected status, or a payload that could not be used.
type UpstreamError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: GET %s (status %d): %v", e.Op, e.URL, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: GET %s: %v", e.Op, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: GET %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Outcome classifies the result of a catalog operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeUpstreamError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "upstream_error"
	}
}

// OutcomeOf maps an error returned by Client onto an Outcome. Any error that
// is not ErrNotFound counts as an upstream error.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeUpstreamError
	}
}
