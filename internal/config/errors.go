package config

import "errors"

// Configuration validation errors.
//
// Design decision: package-level sentinel errors rather than error
// values created inside Validate() let callers use errors.Is() while
// still carrying human-readable messages.
var (
	// ErrInvalidTimeout is returned when the download timeout is not
	// positive. A zero timeout would disable the bound entirely.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingModes is returned when both dry-run and local-only
	// are requested. Dry-run previews downloads while local-only forbids
	// them, so combining the two has no coherent meaning.
	ErrConflictingModes = errors.New("conflicting modes: --dry-run and --local-only cannot be used together")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidBaseURL is returned when the base URL is not an
	// absolute HTTP(S) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")
)
