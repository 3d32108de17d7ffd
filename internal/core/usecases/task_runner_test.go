package usecases

import (
	"context"
	"testing"
	"time"

	"lintgate/internal/core/domain"
	"lintgate/internal/platform/logx"
	"lintgate/internal/testutil"
)

func newTestRunner(resolver *mockResolver, invoker *mockInvoker, opts TaskRunnerOptions) *TaskRunner {
	opts.Resolver = resolver
	opts.Invoker = invoker
	opts.Policy = NewFailurePolicy(staticLinker{})
	opts.Logger = logx.NewSilent()
	return NewTaskRunner(opts)
}

func TestTaskRunnerRun(t *testing.T) {
	t.Run("clean run succeeds", func(t *testing.T) {
		resolver := &mockResolver{config: domain.RuleConfig{ConfigFile: "/tmp/rules.xml"}}
		invoker := &mockInvoker{result: testutil.CleanResult()}
		runner := newTestRunner(resolver, invoker, TaskRunnerOptions{})

		outcome, err := runner.Run(context.Background(), []string{"a.java", "b.java"})
		testutil.AssertNoError(t, err, "clean run should not error")
		testutil.AssertEqual(t, outcome.Status, domain.StatusSuccess, "clean run succeeds")
		testutil.AssertEqual(t, invoker.invokeCalls, 1, "engine invoked exactly once")
	})

	t.Run("violations fail by default", func(t *testing.T) {
		resolver := &mockResolver{config: domain.RuleConfig{ConfigFile: "/tmp/rules.xml"}}
		invoker := &mockInvoker{result: testutil.SampleResult()}
		runner := newTestRunner(resolver, invoker, TaskRunnerOptions{})

		outcome, err := runner.Run(context.Background(), []string{"a.java"})
		testutil.AssertNoError(t, err, "violations are not a runner error")
		testutil.AssertEqual(t, outcome.Status, domain.StatusFailure, "violations fail the build")
		testutil.AssertError(t, outcome.Err(), "failure outcome carries the build-stopping error")
	})

	t.Run("violations warn when failures are ignored", func(t *testing.T) {
		resolver := &mockResolver{config: domain.RuleConfig{ConfigFile: "/tmp/rules.xml"}}
		invoker := &mockInvoker{result: testutil.SampleResult()}
		runner := newTestRunner(resolver, invoker, TaskRunnerOptions{IgnoreFailures: true})

		outcome, err := runner.Run(context.Background(), []string{"a.java"})
		testutil.AssertNoError(t, err, "ignored violations are not an error")
		testutil.AssertEqual(t, outcome.Status, domain.StatusWarning, "ignored violations warn")
		testutil.AssertNil(t, outcome.Err(), "warning outcome does not stop the build")
	})

	t.Run("config resolution failure aborts before the engine runs", func(t *testing.T) {
		resolver := &mockResolver{configErr: domain.ErrConfigUnresolvable}
		invoker := &mockInvoker{result: testutil.CleanResult()}
		runner := newTestRunner(resolver, invoker, TaskRunnerOptions{})

		_, err := runner.Run(context.Background(), []string{"a.java"})
		testutil.AssertError(t, err, "config failure must propagate")
		testutil.AssertTrue(t, err == domain.ErrConfigUnresolvable, "error propagates unchanged")
		testutil.AssertEqual(t, invoker.invokeCalls, 0, "engine must not run")
	})

	t.Run("engine unavailability propagates without a policy decision", func(t *testing.T) {
		resolver := &mockResolver{config: domain.RuleConfig{ConfigFile: "/tmp/rules.xml"}}
		invoker := &mockInvoker{err: domain.ErrEngineUnavailable}
		// ignoreFailures must not rescue a pre-decide failure
		runner := newTestRunner(resolver, invoker, TaskRunnerOptions{IgnoreFailures: true})

		_, err := runner.Run(context.Background(), []string{"a.java"})
		testutil.AssertError(t, err, "engine unavailability must propagate")
		testutil.AssertTrue(t, err == domain.ErrEngineUnavailable, "error propagates unchanged")
	})

	t.Run("request carries the resolved configuration", func(t *testing.T) {
		resolver := &mockResolver{
			config: domain.RuleConfig{
				ConfigFile: "/tmp/rules.xml",
				Properties: map[string]any{"maxLine": 120},
			},
			engineCP:   []string{"/opt/engine/bin"},
			analysisCP: []string{"/lib/app.jar"},
		}
		invoker := &mockInvoker{result: testutil.CleanResult()}
		runner := newTestRunner(resolver, invoker, TaskRunnerOptions{ShowViolations: true})

		_, err := runner.Run(context.Background(), []string{"a.java"})
		testutil.AssertNoError(t, err, "run should succeed")

		req := invoker.lastRequest
		testutil.AssertEqual(t, req.Config.ConfigFile, "/tmp/rules.xml", "config forwarded")
		testutil.AssertEqual(t, len(req.EngineClasspath), 1, "engine classpath forwarded")
		testutil.AssertEqual(t, len(req.AnalysisClasspath), 1, "analysis classpath forwarded")
		testutil.AssertTrue(t, req.ShowViolations, "show violations forwarded")
	})
}

func TestTaskRunnerHistory(t *testing.T) {
	t.Run("records each run", func(t *testing.T) {
		resolver := &mockResolver{config: domain.RuleConfig{ConfigFile: "/tmp/rules.xml"}}
		invoker := &mockInvoker{result: testutil.SampleResult()}
		hist := &mockHistory{}
		runner := newTestRunner(resolver, invoker, TaskRunnerOptions{History: hist, IgnoreFailures: true})

		_, err := runner.Run(context.Background(), []string{"a.java"})
		testutil.AssertNoError(t, err, "run should succeed")

		testutil.AssertEqual(t, len(hist.records), 1, "one record per run")
		testutil.AssertEqual(t, hist.records[0].Violations, 3, "violation count recorded")
		testutil.AssertEqual(t, hist.records[0].Outcome, "warning", "outcome recorded")
		testutil.AssertTrue(t, time.Since(hist.records[0].RunAt) < time.Minute, "timestamp is recent")
	})

	t.Run("history read failure never affects the outcome", func(t *testing.T) {
		resolver := &mockResolver{config: domain.RuleConfig{ConfigFile: "/tmp/rules.xml"}}
		invoker := &mockInvoker{result: testutil.CleanResult()}
		hist := &mockHistory{lastErr: domain.ErrConfigLoadFailed}
		runner := newTestRunner(resolver, invoker, TaskRunnerOptions{History: hist})

		outcome, err := runner.Run(context.Background(), []string{"a.java"})
		testutil.AssertNoError(t, err, "history failure is non-fatal")
		testutil.AssertEqual(t, outcome.Status, domain.StatusSuccess, "outcome unaffected")
	})
}
