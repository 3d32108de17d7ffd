// internal/platform/ui/presenter.go
package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"lintgate/internal/core/domain"
)

// RunInfo describes one task run for the header.
type RunInfo struct {
	Version    string
	EntryPoint string
	Files      int
	Reports    []string
}

// Presenter renders the run header and the terminal outcome.
type Presenter interface {
	Start(info RunInfo)
	Finish(outcome domain.ExecutionOutcome, result *domain.InvocationResult)
}

// NewPresenter picks the presenter for the run: raw output in quiet mode,
// pterm otherwise.
func NewPresenter(quiet bool) Presenter {
	if quiet {
		return &RawPresenter{}
	}
	return &PTermPresenter{}
}

// PTermPresenter renders headers, colors, and symbols via pterm.
type PTermPresenter struct{}

// Start prints the run header.
func (p *PTermPresenter) Start(info RunInfo) {
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("lintgate - Static Analysis Gate")

	pterm.Printf("Engine: %s\n", pterm.Cyan(info.EntryPoint))
	pterm.Printf("Files:  %d\n", info.Files)
	if len(info.Reports) > 0 {
		for _, r := range info.Reports {
			pterm.Printf("Report: %s\n", r)
		}
	} else {
		pterm.Println("Report: (none enabled)")
	}
	pterm.Println()
}

// Finish prints the outcome summary.
func (p *PTermPresenter) Finish(outcome domain.ExecutionOutcome, result *domain.InvocationResult) {
	if result != nil && len(result.Violations) > 0 {
		counts := result.CountBySeverity()
		pterm.Printf("Violations: %d (errors: %d, warnings: %d, info: %d)\n",
			len(result.Violations),
			counts[domain.SeverityError],
			counts[domain.SeverityWarning],
			counts[domain.SeverityInfo],
		)
	}

	switch outcome.Status {
	case domain.StatusSuccess:
		files := 0
		if result != nil {
			files = result.FilesAnalyzed
		}
		pterm.Success.Printfln("No rule violations found in %d files", files)
	case domain.StatusWarning:
		pterm.Warning.Println(outcome.Message)
	case domain.StatusFailure:
		pterm.Error.Println(outcome.Message)
	}
}

// RawPresenter prints without colors or decorations, for quiet mode and
// non-interactive environments.
type RawPresenter struct{}

// Start implements Presenter.
func (p *RawPresenter) Start(info RunInfo) {
	fmt.Printf("lintgate: engine=%s files=%d\n", info.EntryPoint, info.Files)
}

// Finish implements Presenter.
func (p *RawPresenter) Finish(outcome domain.ExecutionOutcome, result *domain.InvocationResult) {
	switch outcome.Status {
	case domain.StatusSuccess:
		fmt.Println("lintgate: success")
	case domain.StatusWarning:
		fmt.Printf("lintgate: warning: %s\n", outcome.Message)
	case domain.StatusFailure:
		fmt.Printf("lintgate: failure: %s\n", outcome.Message)
	}
}
