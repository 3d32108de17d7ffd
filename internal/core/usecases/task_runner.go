// internal/core/usecases/task_runner.go
package usecases

import (
	"context"
	"time"

	"lintgate/internal/core/domain"
	"lintgate/internal/core/ports"
	"lintgate/internal/platform/logx"
)

// History records terminal outcomes of past task runs. Implementations live
// in the platform layer; a nil History disables recording.
type History interface {
	// Record persists one finished run.
	Record(ctx context.Context, rec HistoryRecord) error

	// Last returns the most recent record, with false when none exists.
	Last(ctx context.Context) (HistoryRecord, bool, error)
}

// HistoryRecord is one persisted run outcome.
type HistoryRecord struct {
	RunAt      time.Time
	Files      int
	Violations int
	Outcome    string
}

// TaskRunner is the top-level coordinator of one analysis task. It sequences
// config resolution, engine invocation, and the failure policy, and surfaces
// the outcome to the caller. The rule configuration and report set are held
// across runs; violation state never carries over.
type TaskRunner struct {
	resolver ports.ConfigResolver
	invoker  ports.Invoker
	policy   *FailurePolicy
	reports  *domain.ReportSet
	history  History
	logger   logx.Logger

	ignoreFailures bool
	showViolations bool
}

// TaskRunnerOptions configures a TaskRunner.
type TaskRunnerOptions struct {
	Resolver ports.ConfigResolver
	Invoker  ports.Invoker
	Policy   *FailurePolicy
	Reports  *domain.ReportSet
	History  History
	Logger   logx.Logger

	// IgnoreFailures downgrades a violation failure into a logged warning.
	IgnoreFailures bool

	// ShowViolations renders violations on the console during the run.
	ShowViolations bool
}

// NewTaskRunner creates a task runner.
func NewTaskRunner(opts TaskRunnerOptions) *TaskRunner {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Policy == nil {
		opts.Policy = NewFailurePolicy(nil)
	}
	if opts.Reports == nil {
		opts.Reports = domain.NewReportSet()
	}

	return &TaskRunner{
		resolver:       opts.Resolver,
		invoker:        opts.Invoker,
		policy:         opts.Policy,
		reports:        opts.Reports,
		history:        opts.History,
		logger:         opts.Logger.With("component", "task-runner"),
		ignoreFailures: opts.IgnoreFailures,
		showViolations: opts.ShowViolations,
	}
}

// Reports exposes the report set for configuration before a run.
func (r *TaskRunner) Reports() *domain.ReportSet {
	return r.reports
}

// Run executes the task once: resolve config, invoke the engine, decide the
// outcome. Any error raised before the policy decision (unresolvable
// config, unavailable engine, engine internal error) propagates unchanged
// with no ExecutionOutcome involvement.
func (r *TaskRunner) Run(ctx context.Context, files []string) (domain.ExecutionOutcome, error) {
	startTime := time.Now()

	config, err := r.resolver.ResolveConfig(ctx)
	if err != nil {
		return domain.ExecutionOutcome{}, err
	}

	engineCP, err := r.resolver.EngineClasspath(ctx)
	if err != nil {
		return domain.ExecutionOutcome{}, err
	}

	analysisCP, err := r.resolver.AnalysisClasspath(ctx)
	if err != nil {
		return domain.ExecutionOutcome{}, err
	}

	r.logger.Info("starting analysis",
		"files", len(files),
		"config", config.ConfigFile,
		"properties", len(config.Properties),
		"reports", len(r.reports.Enabled()),
	)

	result, err := r.invoker.Invoke(ctx, ports.InvokeRequest{
		Files:             files,
		EngineClasspath:   engineCP,
		AnalysisClasspath: analysisCP,
		Config:            config,
		Reports:           r.reports,
		ShowViolations:    r.showViolations,
	})
	if err != nil {
		return domain.ExecutionOutcome{}, err
	}

	outcome := r.policy.Decide(result, r.ignoreFailures, r.reports)

	r.recordHistory(ctx, files, result, outcome)

	duration := time.Since(startTime)
	r.logger.Info("analysis completed",
		"outcome", outcome.Status.String(),
		"violations", len(result.Violations),
		"duration_ms", duration.Milliseconds(),
	)

	// A tolerated failure must still reach the warning log channel.
	if outcome.Status == domain.StatusWarning {
		r.logger.Warn(outcome.Message)
	}

	return outcome, nil
}

// recordHistory logs the delta against the previous run and persists this
// one. History failures never affect the outcome.
func (r *TaskRunner) recordHistory(ctx context.Context, files []string, result *domain.InvocationResult, outcome domain.ExecutionOutcome) {
	if r.history == nil {
		return
	}

	if last, ok, err := r.history.Last(ctx); err != nil {
		r.logger.Warn("failed to read run history", "error", err.Error())
	} else if ok {
		delta := len(result.Violations) - last.Violations
		r.logger.Info("run history delta",
			"previous_violations", last.Violations,
			"current_violations", len(result.Violations),
			"delta", delta,
		)
	}

	rec := HistoryRecord{
		RunAt:      time.Now(),
		Files:      len(files),
		Violations: len(result.Violations),
		Outcome:    outcome.Status.String(),
	}
	if err := r.history.Record(ctx, rec); err != nil {
		r.logger.Warn("failed to record run history", "error", err.Error())
	}
}
