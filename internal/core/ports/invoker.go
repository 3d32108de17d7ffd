// internal/core/ports/invoker.go
package ports

import (
	"context"

	"lintgate/internal/core/domain"
)

// InvokeRequest carries everything the engine needs for a single run.
type InvokeRequest struct {
	// Files are the source paths to analyze.
	Files []string

	// EngineClasspath holds the locations searched for the engine binary.
	EngineClasspath []string

	// AnalysisClasspath holds library locations of the analyzed code,
	// forwarded to the engine.
	AnalysisClasspath []string

	// Config is the resolved rule configuration.
	Config domain.RuleConfig

	// Reports are the configured report outputs. The invoker writes one
	// file-backed report per enabled descriptor.
	Reports *domain.ReportSet

	// ShowViolations attaches the console renderer to the run, writing
	// violations to standard output independently of any report.
	ShowViolations bool
}

// Invoker is the port for launching the external lint engine. Exactly one
// engine execution happens per Invoke call.
//
// Failure contract: domain.ErrEngineUnavailable when the engine entry point
// cannot be resolved (nothing is written in that case), and
// domain.ErrEngineInternal when the engine itself fails for reasons other
// than recording violations. Violations are never an error; they surface as
// InvocationResult.ViolationsFound.
type Invoker interface {
	Invoke(ctx context.Context, req InvokeRequest) (*domain.InvocationResult, error)
}
