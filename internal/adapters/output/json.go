// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"lintgate/internal/core/domain"
)

// JSONWriter renders the invocation result as a JSON document with a
// summary block and the full violation list.
type JSONWriter struct{}

// NewJSONWriter creates a JSON report writer.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Format returns the JSON report format.
func (w *JSONWriter) Format() domain.ReportFormat {
	return domain.FormatJSON
}

// jsonReport is the serialized document shape.
type jsonReport struct {
	GeneratedAt     time.Time          `json:"generated_at"`
	FilesAnalyzed   int                `json:"files_analyzed"`
	ViolationsFound bool               `json:"violations_found"`
	TotalViolations int                `json:"total_violations"`
	BySeverity      map[string]int     `json:"by_severity"`
	DurationMS      int64              `json:"duration_ms"`
	Violations      []domain.Violation `json:"violations"`
}

// Write renders the result to the destination file.
func (w *JSONWriter) Write(result *domain.InvocationResult, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create JSON report: %w", err)
	}
	defer f.Close()

	return w.WriteTo(result, f)
}

// WriteTo renders the result to an arbitrary writer.
func (w *JSONWriter) WriteTo(result *domain.InvocationResult, out io.Writer) error {
	bySeverity := make(map[string]int)
	for sev, count := range result.CountBySeverity() {
		bySeverity[string(sev)] = count
	}

	violations := result.Violations
	if violations == nil {
		violations = []domain.Violation{}
	}

	report := jsonReport{
		GeneratedAt:     time.Now().UTC(),
		FilesAnalyzed:   result.FilesAnalyzed,
		ViolationsFound: result.ViolationsFound,
		TotalViolations: len(result.Violations),
		BySeverity:      bySeverity,
		DurationMS:      result.Duration.Milliseconds(),
		Violations:      violations,
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}
