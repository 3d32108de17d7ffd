package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"lintgate/internal/core/domain"
	"lintgate/internal/testutil"
)

func TestJSONWriterFormat(t *testing.T) {
	testutil.AssertEqual(t, NewJSONWriter().Format(), domain.FormatJSON, "format")
}

func TestJSONWriteTo(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONWriter().WriteTo(testutil.SampleResult(), &buf)
	testutil.AssertNoError(t, err, "write should succeed")

	var report jsonReport
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &report), "report should parse back")

	testutil.AssertEqual(t, report.FilesAnalyzed, 2, "files analyzed")
	testutil.AssertTrue(t, report.ViolationsFound, "violations flagged")
	testutil.AssertEqual(t, report.TotalViolations, 3, "total count")
	testutil.AssertEqual(t, report.DurationMS, int64(150), "duration in milliseconds")
	testutil.AssertEqual(t, report.BySeverity["error"], 1, "error count")
	testutil.AssertEqual(t, report.BySeverity["warning"], 1, "warning count")
	testutil.AssertEqual(t, report.BySeverity["info"], 1, "info count")
	testutil.AssertEqual(t, len(report.Violations), 3, "full violation list included")
	testutil.AssertFalse(t, report.GeneratedAt.IsZero(), "timestamp set")
}

func TestJSONWriteToClean(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONWriter().WriteTo(testutil.CleanResult(), &buf)
	testutil.AssertNoError(t, err, "write should succeed")

	testutil.AssertContains(t, buf.String(), `"violations": []`, "empty list, not null")

	var report jsonReport
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &report), "report should parse back")
	testutil.AssertFalse(t, report.ViolationsFound, "no violations flagged")
	testutil.AssertEqual(t, report.TotalViolations, 0, "zero count")
}
