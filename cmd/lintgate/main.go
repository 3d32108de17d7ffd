// cmd/lintgate/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lintgate/internal/core/usecases"
	"lintgate/internal/engine/checkstyle"
	"lintgate/internal/platform/config"
	"lintgate/internal/platform/history"
	"lintgate/internal/platform/httpclient"
	"lintgate/internal/platform/logx"
	"lintgate/internal/platform/resource"
	"lintgate/internal/platform/ui"

	// Import output adapters for report-writer auto-registration via init()
	_ "lintgate/internal/adapters/output"

	"lintgate/internal/core/domain"
)

var (
	// Filled in with -ldflags at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load centralized config (defaults -> yaml -> env -> flags)
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		return 2
	}

	if cfg.PrintVersion {
		fmt.Printf("lintgate %s (%s, %s)\n", version, commit, date)
		return 0
	}

	if len(cfg.Files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one source file is required")
		fmt.Fprintln(os.Stderr, "Usage: lintgate -c <rules.xml> <files...>")
		fmt.Fprintln(os.Stderr, "Try: lintgate -h for help")
		return 2
	}

	// 2. Shared logger
	logger := logx.New()
	if cfg.Quiet {
		logger = logx.NewSilent()
	}

	logger.Info("lintgate starting",
		"version", version,
		"files", len(cfg.Files),
		"entry_point", cfg.Engine.EntryPoint,
		"ignore_failures", cfg.Policy.IgnoreFailures,
	)

	// 3. Context and signals for clean shutdown
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	// 4. Rule configuration resolver
	resolver := resource.NewResolver(logger, resource.ResolverOptions{
		Resource:          buildRuleResource(logger, cfg),
		Properties:        cfg.Rules.Properties,
		EngineClasspath:   cfg.Engine.Classpath,
		AnalysisClasspath: cfg.Engine.AnalysisClasspath,
		WorkDir:           cfg.Output.Dir,
	})

	// 5. Report set
	reports, err := cfg.BuildReportSet()
	if err != nil {
		logger.Err(err, "phase", "report-config")
		return 2
	}

	// 6. Engine invoker
	eng := checkstyle.New(logger, checkstyle.Options{
		EntryPoint: cfg.Engine.EntryPoint,
		Timeout:    cfg.Timeout(),
	})
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Warn("failed to close engine", "error", err.Error())
		}
	}()

	// 7. Run history (optional)
	var hist usecases.History
	if !cfg.Output.HistoryDisabled {
		store, err := history.Open(logger, cfg.Output.HistoryDB)
		if err != nil {
			logger.Warn("run history unavailable", "error", err.Error())
		} else {
			defer store.Close()
			hist = store
		}
	}

	runner := usecases.NewTaskRunner(usecases.TaskRunnerOptions{
		Resolver:       resolver,
		Invoker:        eng,
		Policy:         usecases.NewFailurePolicy(nil),
		Reports:        reports,
		History:        hist,
		Logger:         logger,
		IgnoreFailures: cfg.Policy.IgnoreFailures,
		ShowViolations: cfg.Policy.ShowViolations,
	})

	presenter := ui.NewPresenter(cfg.Quiet)
	presenter.Start(ui.RunInfo{
		Version:    version,
		EntryPoint: cfg.Engine.EntryPoint,
		Files:      len(cfg.Files),
		Reports:    describeReports(reports),
	})

	outcome, err := runner.Run(ctx, cfg.Files)
	if err != nil {
		// Pre-decide failures (unresolvable config, unavailable engine,
		// engine internal error) are fatal and bypass the policy.
		logger.Err(err, "phase", "analysis")
		return 2
	}

	presenter.Finish(outcome, nil)

	if outcome.Status == domain.StatusFailure {
		logger.Err(outcome.Err())
		return 1
	}
	return 0
}

// buildRuleResource picks the configured rule document source.
func buildRuleResource(logger logx.Logger, cfg config.Config) resource.TextResource {
	switch {
	case cfg.Rules.File != "":
		return resource.FileResource{Path: cfg.Rules.File}
	case cfg.Rules.URL != "":
		client := httpclient.New(logger, httpclient.DefaultConfig())
		return resource.HTTPResource{URL: cfg.Rules.URL, Client: client}
	default:
		return resource.InlineResource{Content: cfg.Rules.Text}
	}
}

// describeReports renders the enabled reports for the header.
func describeReports(reports *domain.ReportSet) []string {
	var out []string
	for _, d := range reports.Enabled() {
		out = append(out, fmt.Sprintf("%s -> %s", d.Format, d.Destination))
	}
	return out
}

func rootContextWithSignals() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()

	return ctx, cancel
}
