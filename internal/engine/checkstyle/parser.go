// internal/engine/checkstyle/parser.go
package checkstyle

import (
	"regexp"
	"strconv"
	"strings"

	"lintgate/internal/core/domain"
	"lintgate/internal/platform/logx"
)

// Audit line shapes emitted by the engine's plain formatter:
//
//	[ERROR] src/main/App.java:42:17: Line is longer than 120 characters. [LineLength]
//	[WARN] src/main/App.java:7: Missing file header. [Header]
//	Audit done. Violations: 2
var (
	violationRe = regexp.MustCompile(`^\[(ERROR|WARN|WARNING|INFO)\]\s+(.+?):(\d+)(?::(\d+))?:\s+(.*)$`)
	ruleRe      = regexp.MustCompile(`\s+\[([A-Za-z0-9_.\-]+)\]$`)
	summaryRe   = regexp.MustCompile(`^Audit done\.\s+Violations:\s*(\d+)`)
)

// Parser consumes the engine's stdout stream line by line and accumulates
// violation records plus the final audit summary. Lines that match neither
// shape are tolerated as engine noise.
type Parser struct {
	logger logx.Logger

	violations   []domain.Violation
	summaryCount int
	summarySeen  bool
}

// NewParser creates a parser for one engine run.
func NewParser(logger logx.Logger) *Parser {
	return &Parser{
		logger: logger.With("component", "audit-parser"),
	}
}

// ProcessLine handles a single line of engine stdout.
func (p *Parser) ProcessLine(line []byte) error {
	text := strings.TrimRight(string(line), "\r")
	if text == "" {
		return nil
	}

	if m := summaryRe.FindStringSubmatch(text); m != nil {
		count, err := strconv.Atoi(m[1])
		if err != nil {
			p.logger.Warn("unparsable audit summary", "line", text)
			return nil
		}
		p.summaryCount = count
		p.summarySeen = true
		return nil
	}

	m := violationRe.FindStringSubmatch(text)
	if m == nil {
		p.logger.Debug("ignoring non-audit line", "line", text)
		return nil
	}

	line2, _ := strconv.Atoi(m[3])
	column := 0
	if m[4] != "" {
		column, _ = strconv.Atoi(m[4])
	}

	message := m[5]
	rule := ""
	if rm := ruleRe.FindStringSubmatch(message); rm != nil {
		rule = rm[1]
		message = strings.TrimSuffix(message, rm[0])
	}

	p.violations = append(p.violations, domain.Violation{
		File:     m[2],
		Line:     line2,
		Column:   column,
		Severity: parseSeverity(m[1]),
		Message:  message,
		Rule:     rule,
	})

	return nil
}

// Result returns the accumulated violations, the summary count, and whether
// the audit summary line was seen.
func (p *Parser) Result() ([]domain.Violation, int, bool) {
	return p.violations, p.summaryCount, p.summarySeen
}

func parseSeverity(tag string) domain.Severity {
	switch tag {
	case "ERROR":
		return domain.SeverityError
	case "WARN", "WARNING":
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}
