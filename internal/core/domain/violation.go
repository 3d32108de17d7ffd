// internal/core/domain/violation.go
package domain

// Severity classifies a violation reported by the engine.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Violation is a single rule non-compliance reported by the engine for one
// location in the analyzed source.
type Violation struct {
	File     string   `json:"file" xml:"file,attr"`
	Line     int      `json:"line" xml:"line,attr"`
	Column   int      `json:"column,omitempty" xml:"column,attr,omitempty"`
	Severity Severity `json:"severity" xml:"severity,attr"`
	Message  string   `json:"message" xml:"message,attr"`
	Rule     string   `json:"rule,omitempty" xml:"rule,attr,omitempty"`
}
