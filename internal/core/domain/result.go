// internal/core/domain/result.go
package domain

import "time"

// InvocationResult captures the outcome of one engine run. It is created
// fresh per invocation, consumed by the failure policy and then discarded;
// no violation state carries over between runs.
type InvocationResult struct {
	// ViolationsFound is the engine's boolean output flag: true when the
	// engine recorded at least one violation.
	ViolationsFound bool

	// Violations are the parsed violation records, used to render reports.
	Violations []Violation

	// FilesAnalyzed is the number of source files fed to the engine.
	FilesAnalyzed int

	// Duration is the wall-clock time of the engine run.
	Duration time.Duration
}

// NewInvocationResult builds a result from parsed violations.
func NewInvocationResult(violations []Violation, files int, duration time.Duration) *InvocationResult {
	return &InvocationResult{
		ViolationsFound: len(violations) > 0,
		Violations:      violations,
		FilesAnalyzed:   files,
		Duration:        duration,
	}
}

// CountBySeverity tallies violations per severity.
func (r *InvocationResult) CountBySeverity() map[Severity]int {
	out := make(map[Severity]int)
	for _, v := range r.Violations {
		out[v.Severity]++
	}
	return out
}

// OutcomeStatus enumerates the terminal states of a task run.
type OutcomeStatus int

const (
	// StatusSuccess is a silent pass: no violations were found.
	StatusSuccess OutcomeStatus = iota

	// StatusWarning is a pass with violations tolerated by policy; the
	// message must be surfaced on the warning log channel.
	StatusWarning

	// StatusFailure stops the build with the policy message.
	StatusFailure
)

func (s OutcomeStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ExecutionOutcome is the terminal value of a whole task run, produced by
// the failure policy. Message is empty only for StatusSuccess.
type ExecutionOutcome struct {
	Status  OutcomeStatus
	Message string
}

// Succeeded creates a silent-success outcome.
func Succeeded() ExecutionOutcome {
	return ExecutionOutcome{Status: StatusSuccess}
}

// Warned creates a successful outcome that must be logged as a warning.
func Warned(message string) ExecutionOutcome {
	return ExecutionOutcome{Status: StatusWarning, Message: message}
}

// Failed creates a build-stopping outcome carrying the policy message.
func Failed(message string) ExecutionOutcome {
	return ExecutionOutcome{Status: StatusFailure, Message: message}
}

// Err returns the build-stopping error for failure outcomes, nil otherwise.
// The error message is exactly the policy-constructed message.
func (o ExecutionOutcome) Err() error {
	if o.Status != StatusFailure {
		return nil
	}
	return outcomeError(o.Message)
}

type outcomeError string

func (e outcomeError) Error() string { return string(e) }
