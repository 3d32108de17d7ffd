// internal/adapters/output/plain.go
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lintgate/internal/core/domain"
)

// PlainWriter renders violations as human-readable text, one line per
// violation in the engine's own audit format, followed by a summary line.
// It serves both the file-backed plain report and the console rendering.
type PlainWriter struct{}

// NewPlainWriter creates a plain-text report writer.
func NewPlainWriter() *PlainWriter {
	return &PlainWriter{}
}

// Format returns the plain report format.
func (w *PlainWriter) Format() domain.ReportFormat {
	return domain.FormatPlain
}

// Write renders the result to the destination file.
func (w *PlainWriter) Write(result *domain.InvocationResult, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create plain report: %w", err)
	}
	defer f.Close()

	return w.WriteTo(result, f)
}

// WriteTo renders the result to an arbitrary writer.
func (w *PlainWriter) WriteTo(result *domain.InvocationResult, out io.Writer) error {
	bw := bufio.NewWriter(out)

	for _, v := range result.Violations {
		if v.Column > 0 {
			fmt.Fprintf(bw, "[%s] %s:%d:%d: %s", severityTag(v.Severity), v.File, v.Line, v.Column, v.Message)
		} else {
			fmt.Fprintf(bw, "[%s] %s:%d: %s", severityTag(v.Severity), v.File, v.Line, v.Message)
		}
		if v.Rule != "" {
			fmt.Fprintf(bw, " [%s]", v.Rule)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintf(bw, "Audit done. Files: %d, violations: %d\n",
		result.FilesAnalyzed, len(result.Violations))

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush plain report: %w", err)
	}
	return nil
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityError:
		return "ERROR"
	case domain.SeverityWarning:
		return "WARN"
	case domain.SeverityInfo:
		return "INFO"
	default:
		return "INFO"
	}
}
