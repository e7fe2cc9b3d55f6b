package sim

import "errors"

var (
	// ErrInvalidConfig wraps every Config and Policy validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAlreadyConfigured is returned by Configure on a second submission.
	ErrAlreadyConfigured = errors.New("pharmacy already configured")

	// ErrNotConfigured is returned by Advance before Configure succeeded.
	ErrNotConfigured = errors.New("pharmacy not configured")

	// ErrInvalidCatalog wraps malformed drug or recurring-order records.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
