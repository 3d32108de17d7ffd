// internal/adapters/output/register.go
package output

import (
	"lintgate/internal/core/domain"
	"lintgate/internal/core/ports"
	"lintgate/internal/platform/logx"
	"lintgate/internal/platform/registry"
)

// Auto-registration of all built-in report writers on package import.
func init() {
	writers := map[domain.ReportFormat]ports.ReportWriterFactory{
		domain.FormatPlain: func() (ports.ReportWriter, error) { return NewPlainWriter(), nil },
		domain.FormatXML:   func() (ports.ReportWriter, error) { return NewXMLWriter(), nil },
		domain.FormatJSON:  func() (ports.ReportWriter, error) { return NewJSONWriter(), nil },
	}

	for format, factory := range writers {
		if err := registry.Global().Register(format, factory); err != nil {
			// Log error but don't panic - allow application to start
			logx.New().Warn("failed to register report writer", "format", format, "error", err.Error())
		}
	}
}
