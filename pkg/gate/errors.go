package gate

import "errors"

var (
	// ErrInvalidBaseURL indicates the API base URL could not be parsed
	ErrInvalidBaseURL = errors.New("gate.invalid_base_url")

	// ErrNilRecord indicates no session record was provided
	ErrNilRecord = errors.New("gate.nil_record")

	// ErrInvalidConcurrency indicates a non-positive concurrency ceiling
	ErrInvalidConcurrency = errors.New("gate.invalid_concurrency")
)
