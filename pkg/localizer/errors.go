package localizer

import "errors"

var (
	// ErrInvalidBundle indicates a translation bundle could not be parsed
	ErrInvalidBundle = errors.New("localizer.invalid_bundle")

	// ErrNoLocales indicates no translation bundles were provided
	ErrNoLocales = errors.New("localizer.no_locales")
)
