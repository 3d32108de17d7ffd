// internal/core/usecases/failure_policy.go
package usecases

import (
	"fmt"
	"path/filepath"

	"lintgate/internal/core/domain"
	"lintgate/internal/core/ports"
)

// violationsMessage is the static prefix of every policy message. The build
// framework surfaces it verbatim, so it must not change casually.
const violationsMessage = "Rule violations were found."

// FailurePolicy maps the engine's violation signal and the ignoreFailures
// toggle onto a terminal execution outcome. It is the only component allowed
// to convert a violation signal into a warning or a build-stopping failure.
type FailurePolicy struct {
	linker ports.ConsoleLinker
}

// NewFailurePolicy creates a policy. A nil linker falls back to file:// URL
// rendering.
func NewFailurePolicy(linker ports.ConsoleLinker) *FailurePolicy {
	if linker == nil {
		linker = FileURLLinker{}
	}
	return &FailurePolicy{linker: linker}
}

// Decide is the whole state machine: violations absent means silent success;
// violations present mean a warning when ignoreFailures is set and a
// build-stopping failure otherwise. The message references exactly one
// report destination (the first enabled, by declared priority), never an
// enumeration of all enabled reports.
func (p *FailurePolicy) Decide(result *domain.InvocationResult, ignoreFailures bool, reports *domain.ReportSet) domain.ExecutionOutcome {
	if result == nil || !result.ViolationsFound {
		return domain.Succeeded()
	}

	message := violationsMessage
	if reports != nil {
		if d := reports.FirstEnabled(); d != nil {
			message = fmt.Sprintf("%s See the report at: %s", message, p.linker.Link(d.Destination))
		}
	}

	if ignoreFailures {
		return domain.Warned(message)
	}
	return domain.Failed(message)
}

// FileURLLinker renders report destinations as file:// URLs, the default
// clickable reference in most terminals.
type FileURLLinker struct{}

// Link implements ports.ConsoleLinker.
func (FileURLLinker) Link(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}
