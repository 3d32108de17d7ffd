// internal/core/ports/reporter.go
package ports

import (
	"io"

	"lintgate/internal/core/domain"
)

// ReportWriter is the port for rendering an invocation result into one
// report format. Writers are stateless; the same writer may serve any
// number of destinations.
type ReportWriter interface {
	// Format returns the report format this writer renders.
	Format() domain.ReportFormat

	// Write renders the result to the destination path, creating parent
	// directories as needed.
	Write(result *domain.InvocationResult, destination string) error

	// WriteTo renders the result to an arbitrary writer. Used for the
	// console rendering when violations are shown on stdout.
	WriteTo(result *domain.InvocationResult, w io.Writer) error
}

// ReportWriterFactory creates a ReportWriter instance.
type ReportWriterFactory func() (ReportWriter, error)

// ConsoleLinker renders a report destination into a reference suitable for
// terminal rendering (typically a clickable file:// URL). The rendering
// mechanism itself is an external collaborator.
type ConsoleLinker interface {
	Link(path string) string
}
