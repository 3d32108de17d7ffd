// internal/testutil/fixtures.go
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lintgate/internal/core/domain"
)

// SampleViolations returns a small fixed violation set spanning two files
// and all severities.
func SampleViolations() []domain.Violation {
	return []domain.Violation{
		{
			File:     "src/main/App.java",
			Line:     42,
			Column:   17,
			Severity: domain.SeverityError,
			Message:  "Line is longer than 120 characters.",
			Rule:     "LineLength",
		},
		{
			File:     "src/main/App.java",
			Line:     7,
			Severity: domain.SeverityWarning,
			Message:  "Missing file header.",
			Rule:     "Header",
		},
		{
			File:     "src/main/Util.java",
			Line:     3,
			Column:   1,
			Severity: domain.SeverityInfo,
			Message:  "Consider adding a package-info file.",
		},
	}
}

// SampleResult returns an InvocationResult built from SampleViolations.
func SampleResult() *domain.InvocationResult {
	return domain.NewInvocationResult(SampleViolations(), 2, 150*time.Millisecond)
}

// CleanResult returns an InvocationResult with no violations.
func CleanResult() *domain.InvocationResult {
	return domain.NewInvocationResult(nil, 2, 100*time.Millisecond)
}

// WriteRuleFile writes a minimal rule document into dir and returns its
// path.
func WriteRuleFile(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "rules.xml")
	content := `<?xml version="1.0"?>
<module name="Checker">
  <module name="LineLength">
    <property name="max" value="${maxLine}"/>
  </module>
</module>
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write rule file: %v", err)
	}
	return path
}

// WriteFakeEngine writes an executable shell script into dir under name and
// returns its path. The script prints the given stdout and exits with code.
func WriteFakeEngine(t *testing.T, dir, name, stdout string, exitCode int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\ncat <<'EOF'\n" + stdout + "EOF\nexit " + itoa(exitCode) + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake engine: %v", err)
	}
	return path
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}
