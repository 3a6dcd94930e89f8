package annotate

import "errors"

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrAnnotationFailed is the aggregate error for a batch in which at
	// least one lookup failed beyond recovery.
	ErrAnnotationFailed = errors.New("annotation failed")
)
