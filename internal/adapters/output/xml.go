// internal/adapters/output/xml.go
package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lintgate/internal/core/domain"
)

// XMLWriter renders violations as an XML audit report grouped by file, in
// the layout Checkstyle-family tools emit.
type XMLWriter struct{}

// NewXMLWriter creates an XML report writer.
func NewXMLWriter() *XMLWriter {
	return &XMLWriter{}
}

// Format returns the XML report format.
func (w *XMLWriter) Format() domain.ReportFormat {
	return domain.FormatXML
}

// xmlReport is the document root.
type xmlReport struct {
	XMLName xml.Name  `xml:"lintgate"`
	Version string    `xml:"version,attr"`
	Files   []xmlFile `xml:"file"`
}

type xmlFile struct {
	Name   string     `xml:"name,attr"`
	Errors []xmlError `xml:"error"`
}

type xmlError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr,omitempty"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr,omitempty"`
}

// Write renders the result to the destination file.
func (w *XMLWriter) Write(result *domain.InvocationResult, destination string) error {
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	f, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create XML report: %w", err)
	}
	defer f.Close()

	return w.WriteTo(result, f)
}

// WriteTo renders the result to an arbitrary writer.
func (w *XMLWriter) WriteTo(result *domain.InvocationResult, out io.Writer) error {
	report := buildXMLReport(result)

	if _, err := io.WriteString(out, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}

	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode XML report: %w", err)
	}

	// Encoder does not emit a trailing newline
	if _, err := io.WriteString(out, "\n"); err != nil {
		return fmt.Errorf("failed to finish XML report: %w", err)
	}
	return nil
}

// buildXMLReport groups violations by file, preserving the order in which
// files first appear in the result.
func buildXMLReport(result *domain.InvocationResult) xmlReport {
	report := xmlReport{Version: "1.0"}

	index := make(map[string]int)
	for _, v := range result.Violations {
		i, seen := index[v.File]
		if !seen {
			i = len(report.Files)
			index[v.File] = i
			report.Files = append(report.Files, xmlFile{Name: v.File})
		}

		report.Files[i].Errors = append(report.Files[i].Errors, xmlError{
			Line:     v.Line,
			Column:   v.Column,
			Severity: string(v.Severity),
			Message:  v.Message,
			Source:   v.Rule,
		})
	}

	return report
}
