package checkstyle

import (
	"testing"

	"lintgate/internal/core/domain"
	"lintgate/internal/platform/logx"
	"lintgate/internal/testutil"
)

func feedLines(t *testing.T, p *Parser, lines ...string) {
	t.Helper()
	for _, line := range lines {
		testutil.AssertNoError(t, p.ProcessLine([]byte(line)), "process line")
	}
}

func TestParserViolationLines(t *testing.T) {
	t.Run("full line with column and rule", func(t *testing.T) {
		p := NewParser(logx.NewSilent())
		feedLines(t, p, "[ERROR] src/main/App.java:42:17: Line is longer than 120 characters. [LineLength]")

		violations, _, _ := p.Result()
		testutil.AssertEqual(t, len(violations), 1, "one violation parsed")

		v := violations[0]
		testutil.AssertEqual(t, v.File, "src/main/App.java", "file")
		testutil.AssertEqual(t, v.Line, 42, "line")
		testutil.AssertEqual(t, v.Column, 17, "column")
		testutil.AssertEqual(t, v.Severity, domain.SeverityError, "severity")
		testutil.AssertEqual(t, v.Message, "Line is longer than 120 characters.", "message")
		testutil.AssertEqual(t, v.Rule, "LineLength", "rule")
	})

	t.Run("line without column", func(t *testing.T) {
		p := NewParser(logx.NewSilent())
		feedLines(t, p, "[WARN] src/main/App.java:7: Missing file header. [Header]")

		violations, _, _ := p.Result()
		testutil.AssertEqual(t, len(violations), 1, "one violation parsed")
		testutil.AssertEqual(t, violations[0].Column, 0, "no column")
		testutil.AssertEqual(t, violations[0].Severity, domain.SeverityWarning, "severity")
	})

	t.Run("line without rule suffix", func(t *testing.T) {
		p := NewParser(logx.NewSilent())
		feedLines(t, p, "[INFO] src/main/Util.java:3:1: Consider adding a package-info file.")

		violations, _, _ := p.Result()
		testutil.AssertEqual(t, len(violations), 1, "one violation parsed")
		testutil.AssertEqual(t, violations[0].Rule, "", "no rule")
		testutil.AssertEqual(t, violations[0].Message, "Consider adding a package-info file.", "message intact")
	})

	t.Run("severity tags map to domain severities", func(t *testing.T) {
		tests := []struct {
			tag  string
			want domain.Severity
		}{
			{"ERROR", domain.SeverityError},
			{"WARN", domain.SeverityWarning},
			{"WARNING", domain.SeverityWarning},
			{"INFO", domain.SeverityInfo},
		}

		for _, tt := range tests {
			p := NewParser(logx.NewSilent())
			feedLines(t, p, "["+tt.tag+"] a.java:1: msg")
			violations, _, _ := p.Result()
			testutil.AssertEqual(t, len(violations), 1, "violation parsed for "+tt.tag)
			testutil.AssertEqual(t, violations[0].Severity, tt.want, "severity for "+tt.tag)
		}
	})
}

func TestParserSummary(t *testing.T) {
	t.Run("summary line sets the count", func(t *testing.T) {
		p := NewParser(logx.NewSilent())
		feedLines(t, p,
			"[ERROR] a.java:1: bad [Rule]",
			"Audit done. Violations: 1",
		)

		violations, count, seen := p.Result()
		testutil.AssertEqual(t, len(violations), 1, "violation parsed")
		testutil.AssertEqual(t, count, 1, "summary count")
		testutil.AssertTrue(t, seen, "summary seen")
	})

	t.Run("clean audit", func(t *testing.T) {
		p := NewParser(logx.NewSilent())
		feedLines(t, p, "Audit done. Violations: 0")

		violations, count, seen := p.Result()
		testutil.AssertEqual(t, len(violations), 0, "no violations")
		testutil.AssertEqual(t, count, 0, "summary count zero")
		testutil.AssertTrue(t, seen, "summary seen")
	})

	t.Run("missing summary is reported", func(t *testing.T) {
		p := NewParser(logx.NewSilent())
		feedLines(t, p, "[ERROR] a.java:1: bad")

		_, _, seen := p.Result()
		testutil.AssertFalse(t, seen, "no summary line seen")
	})
}

func TestParserNoise(t *testing.T) {
	p := NewParser(logx.NewSilent())
	feedLines(t, p,
		"Starting audit...",
		"",
		"some engine banner",
		"[ERROR] a.java:10: bad thing [Rule]",
		"Audit done. Violations: 1",
	)

	violations, count, seen := p.Result()
	testutil.AssertEqual(t, len(violations), 1, "noise lines tolerated")
	testutil.AssertEqual(t, count, 1, "summary parsed")
	testutil.AssertTrue(t, seen, "summary seen")
}
