// internal/core/domain/errors.go
package domain

import "errors"

// Common domain errors.
var (
	// Rule configuration errors
	ErrConfigUnresolvable = errors.New("rule configuration cannot be materialized")
	ErrEmptyRuleConfig    = errors.New("rule configuration is empty")

	// Engine errors
	ErrEngineUnavailable = errors.New("lint engine entry point cannot be resolved")
	ErrEngineInternal    = errors.New("lint engine raised an internal error")
	ErrNoFiles           = errors.New("no source files to analyze")

	// Report errors
	ErrUnknownFormat      = errors.New("unknown report format")
	ErrDuplicateFormat    = errors.New("report format already declared")
	ErrMissingDestination = errors.New("enabled report requires a destination")
	ErrReportSetFrozen    = errors.New("report set cannot be mutated during invocation")
	ErrReportWriteFailed  = errors.New("failed to write report")

	// Configuration errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigLoadFailed = errors.New("failed to load configuration")
)
