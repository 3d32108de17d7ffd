package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lintgate/internal/core/domain"
	"lintgate/internal/testutil"
)

func TestPlainWriterFormat(t *testing.T) {
	testutil.AssertEqual(t, NewPlainWriter().Format(), domain.FormatPlain, "format")
}

func TestPlainWriteTo(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlainWriter().WriteTo(testutil.SampleResult(), &buf)
	testutil.AssertNoError(t, err, "write should succeed")

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	testutil.AssertEqual(t, len(lines), 4, "three violations plus summary")

	testutil.AssertEqual(t, lines[0],
		"[ERROR] src/main/App.java:42:17: Line is longer than 120 characters. [LineLength]",
		"violation with column and rule")
	testutil.AssertEqual(t, lines[1],
		"[WARN] src/main/App.java:7: Missing file header. [Header]",
		"violation without column omits it")
	testutil.AssertEqual(t, lines[2],
		"[INFO] src/main/Util.java:3:1: Consider adding a package-info file.",
		"violation without rule omits the tag")
	testutil.AssertEqual(t, lines[3],
		"Audit done. Files: 2, violations: 3",
		"summary line")
}

func TestPlainWriteToClean(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlainWriter().WriteTo(testutil.CleanResult(), &buf)
	testutil.AssertNoError(t, err, "write should succeed")
	testutil.AssertEqual(t, buf.String(), "Audit done. Files: 2, violations: 0\n", "only the summary line")
}

func TestPlainWriteCreatesParentDirs(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "report.txt")
	err := NewPlainWriter().Write(testutil.SampleResult(), dest)
	testutil.AssertNoError(t, err, "write should succeed")

	data, err := os.ReadFile(dest)
	testutil.AssertNoError(t, err, "report file should exist")
	testutil.AssertContains(t, string(data), "Audit done.", "report content written")
}
