// internal/core/ports/resolver.go
package ports

import (
	"context"

	"lintgate/internal/core/domain"
)

// ConfigResolver is the port that supplies the resolved rule configuration
// and the runtime classpaths for one task run. Implementations must be
// idempotent within a run and have no side effects beyond resolution.
type ConfigResolver interface {
	// ResolveConfig materializes the rule document to a file-backed form.
	// Fails with domain.ErrConfigUnresolvable (wrapped, naming the
	// resource) when the backing document cannot be materialized.
	ResolveConfig(ctx context.Context) (domain.RuleConfig, error)

	// EngineClasspath returns the ordered locations searched for the
	// engine's entry point, ahead of the process PATH.
	EngineClasspath(ctx context.Context) ([]string, error)

	// AnalysisClasspath returns the ordered library locations of the code
	// under analysis, forwarded to the engine.
	AnalysisClasspath(ctx context.Context) ([]string, error)
}
