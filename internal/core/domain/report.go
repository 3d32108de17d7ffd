// internal/core/domain/report.go
package domain

import "fmt"

// ReportFormat identifies an output report format supported by the task.
type ReportFormat string

const (
	// FormatPlain is the human-readable text format. It doubles as the
	// console rendering when violations are shown on stdout.
	FormatPlain ReportFormat = "plain"

	// FormatXML is the machine-readable XML report.
	FormatXML ReportFormat = "xml"

	// FormatJSON is the machine-readable JSON report.
	FormatJSON ReportFormat = "json"
)

// formatPriority is the declared format order. FirstEnabled iterates this
// list, so it determines which report destination is referenced in the
// failure message shown to users. Do not reorder.
var formatPriority = []ReportFormat{FormatPlain, FormatXML, FormatJSON}

// Formats returns the declared formats in priority order.
func Formats() []ReportFormat {
	out := make([]ReportFormat, len(formatPriority))
	copy(out, formatPriority)
	return out
}

// ParseFormat converts a format name into a ReportFormat.
func ParseFormat(name string) (ReportFormat, error) {
	for _, f := range formatPriority {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ReportDescriptor describes a single configured report output.
// Destination is meaningful only when Enabled is true.
type ReportDescriptor struct {
	Format      ReportFormat
	Enabled     bool
	Destination string
}

// ReportSet holds the configured report descriptors, one per declared
// format. Mutation is only allowed before the engine runs; the task runner
// freezes the set when invocation starts.
type ReportSet struct {
	descriptors []*ReportDescriptor
	frozen      bool
}

// NewReportSet creates a ReportSet with every declared format present and
// disabled.
func NewReportSet() *ReportSet {
	rs := &ReportSet{
		descriptors: make([]*ReportDescriptor, 0, len(formatPriority)),
	}
	for _, f := range formatPriority {
		rs.descriptors = append(rs.descriptors, &ReportDescriptor{Format: f})
	}
	return rs
}

// Reports returns the descriptors in declared priority order.
func (rs *ReportSet) Reports() []*ReportDescriptor {
	out := make([]*ReportDescriptor, len(rs.descriptors))
	copy(out, rs.descriptors)
	return out
}

// Enable turns on the report for the given format, bound to destination.
func (rs *ReportSet) Enable(format ReportFormat, destination string) error {
	if rs.frozen {
		return ErrReportSetFrozen
	}
	d, err := rs.get(format)
	if err != nil {
		return err
	}
	if destination == "" {
		return fmt.Errorf("%w: %s", ErrMissingDestination, format)
	}
	d.Enabled = true
	d.Destination = destination
	return nil
}

// Disable turns off the report for the given format.
func (rs *ReportSet) Disable(format ReportFormat) error {
	if rs.frozen {
		return ErrReportSetFrozen
	}
	d, err := rs.get(format)
	if err != nil {
		return err
	}
	d.Enabled = false
	return nil
}

// Enabled returns the enabled descriptors in declared priority order.
func (rs *ReportSet) Enabled() []*ReportDescriptor {
	var out []*ReportDescriptor
	for _, d := range rs.descriptors {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out
}

// FirstEnabled returns the first enabled descriptor in declared priority
// order, or nil when no report is enabled. Used only for user-facing
// messaging, never for invocation logic.
func (rs *ReportSet) FirstEnabled() *ReportDescriptor {
	for _, d := range rs.descriptors {
		if d.Enabled {
			return d
		}
	}
	return nil
}

// Freeze forbids further mutation. Called by the runner before invocation.
func (rs *ReportSet) Freeze() {
	rs.frozen = true
}

// Validate checks descriptor invariants: every enabled report has a
// destination and no format appears twice.
func (rs *ReportSet) Validate() error {
	seen := make(map[ReportFormat]bool, len(rs.descriptors))
	for _, d := range rs.descriptors {
		if seen[d.Format] {
			return fmt.Errorf("%w: %s", ErrDuplicateFormat, d.Format)
		}
		seen[d.Format] = true
		if d.Enabled && d.Destination == "" {
			return fmt.Errorf("%w: %s", ErrMissingDestination, d.Format)
		}
	}
	return nil
}

func (rs *ReportSet) get(format ReportFormat) (*ReportDescriptor, error) {
	for _, d := range rs.descriptors {
		if d.Format == format {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
