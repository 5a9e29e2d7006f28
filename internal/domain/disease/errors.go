package disease

import "errors"

// Sentinel errors distinguishing the caller-error classes this domain can
// produce. There is no internal error class: the catalog does no I/O.
var (
	// ErrNotFound is returned when a referenced canonical name is absent
	// from the catalog.
	ErrNotFound = errors.New("disease not found")

	// ErrInvalidQuery is returned for an empty or whitespace-only query.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmptyCode is returned when an update supplies a code field with an
	// empty value, which would leave a partial entry behind.
	ErrEmptyCode = errors.New("code value must not be empty")
)
