// Package checkstyle implements the invoker for the external Checkstyle-style
// lint engine. It launches the engine as a subprocess exactly once per task
// run, streams its audit output, and fans the parsed violations out into the
// configured reports.
package checkstyle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"lintgate/internal/core/domain"
	"lintgate/internal/core/ports"
	"lintgate/internal/platform/logx"
	"lintgate/internal/platform/registry"
)

const (
	engineName = "checkstyle"

	// DefaultEntryPoint is the logical name the engine executable is
	// resolved under. Configurable to tolerate engine-version renames.
	DefaultEntryPoint = "checkstyle"

	defaultTimeout = 300 * time.Second
)

// Engine implements ports.Invoker for Checkstyle-compatible CLI engines.
type Engine struct {
	logger     logx.Logger
	entryPoint string
	execPath   string
	timeout    time.Duration
	writers    *registry.WriterRegistry
	console    io.Writer

	// Process management
	mu  sync.Mutex
	cmd *exec.Cmd
}

// Options configures the engine invoker.
type Options struct {
	// EntryPoint overrides the logical executable name (default "checkstyle").
	EntryPoint string

	// Timeout bounds a single engine run. Zero means the default.
	Timeout time.Duration

	// Writers is the report-writer registry. Defaults to the global one.
	Writers *registry.WriterRegistry

	// Console receives the violation rendering when ShowViolations is set.
	// Defaults to os.Stdout.
	Console io.Writer
}

// New creates an engine invoker.
func New(logger logx.Logger, opts Options) *Engine {
	if opts.EntryPoint == "" {
		opts.EntryPoint = DefaultEntryPoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Writers == nil {
		opts.Writers = registry.Global()
	}
	if opts.Console == nil {
		opts.Console = os.Stdout
	}

	return &Engine{
		logger:     logger.With("engine", engineName),
		entryPoint: opts.EntryPoint,
		timeout:    opts.Timeout,
		writers:    opts.Writers,
		console:    opts.Console,
	}
}

// Invoke runs the engine once over the request's file set and returns the
// violation signal. The engine is always told not to fail on violations;
// pass/fail policy belongs entirely to the caller.
func (e *Engine) Invoke(ctx context.Context, req ports.InvokeRequest) (*domain.InvocationResult, error) {
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(req.Config.ConfigFile); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrConfigUnresolvable, req.Config.ConfigFile)
	}
	if req.Reports == nil {
		req.Reports = domain.NewReportSet()
	}
	if err := req.Reports.Validate(); err != nil {
		return nil, err
	}

	// Reconfiguration is not allowed once the run starts.
	req.Reports.Freeze()

	// Resolve the entry point before anything is written. A missing engine
	// aborts the task and must never be silently ignored.
	execPath, err := e.resolveEntryPoint(req.EngineClasspath)
	if err != nil {
		return nil, err
	}
	e.execPath = execPath

	// Bind one writer per enabled report up front, so a misconfigured
	// format fails before the engine runs.
	bound, err := e.writers.Build(req.Reports)
	if err != nil {
		return nil, err
	}

	result, err := e.run(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.ShowViolations && len(result.Violations) > 0 {
		if err := e.renderConsole(result); err != nil {
			e.logger.Warn("console rendering failed", "error", err.Error())
		}
	}

	for _, b := range bound {
		if err := b.Writer.Write(result, b.Destination); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrReportWriteFailed, b.Writer.Format(), err)
		}
		e.logger.Debug("report written",
			"format", b.Writer.Format(),
			"destination", b.Destination,
		)
	}

	return result, nil
}

// run executes the engine subprocess and parses its audit stream.
func (e *Engine) run(ctx context.Context, req ports.InvokeRequest) (*domain.InvocationResult, error) {
	startTime := time.Now()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	args := e.buildArgs(req)

	e.logger.Info("executing lint engine",
		"exec_path", e.execPath,
		"files", len(req.Files),
		"timeout", e.timeout.String(),
	)

	cmd := exec.CommandContext(ctx, e.execPath, args...)

	// Create stdout pipe for streaming audit output
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	// Create stderr pipe for diagnostics
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	// Store command reference for Close()
	e.mu.Lock()
	e.cmd = cmd
	e.mu.Unlock()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start engine: %w", err)
	}

	e.logger.Debug("engine process started", "pid", cmd.Process.Pid)

	// Read stderr in background to prevent blocking
	var stderrBytes []byte
	var stderrMu sync.Mutex
	var stderrWg sync.WaitGroup
	stderrWg.Add(1)

	go func() {
		defer stderrWg.Done()
		data, readErr := io.ReadAll(stderr)
		if readErr != nil {
			e.logger.Warn("error reading stderr", "error", readErr.Error())
		}
		stderrMu.Lock()
		stderrBytes = data
		stderrMu.Unlock()
	}()

	// Parse stdout line by line
	parser := NewParser(e.logger)
	scanner := bufio.NewScanner(stdout)

	// Increase buffer size for long audit lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024) // 1MB max token size

	for scanner.Scan() {
		if err := parser.ProcessLine(scanner.Bytes()); err != nil {
			e.logger.Warn("parser error", "error", err.Error())
		}
	}

	if err := scanner.Err(); err != nil {
		e.logger.Warn("scanner error", "error", err.Error())
	}

	waitErr := cmd.Wait()

	// Wait for stderr goroutine to finish reading all output
	stderrWg.Wait()

	stderrMu.Lock()
	stderrOutput := string(stderrBytes)
	stderrMu.Unlock()

	if len(stderrOutput) > 0 {
		e.logger.Debug("engine stderr", "output", stderrOutput)
	}

	// The engine was told not to fail on violations, so a nonzero exit is
	// an internal engine error, never a violation signal. It propagates
	// unchanged instead of being downgraded.
	if waitErr != nil {
		duration := time.Since(startTime)
		e.logger.Warn("engine exited with error",
			"error", waitErr.Error(),
			"duration", duration.String(),
		)
		if stderrOutput != "" {
			return nil, fmt.Errorf("%w: %v: %s", domain.ErrEngineInternal, waitErr, firstLine(stderrOutput))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrEngineInternal, waitErr)
	}

	violations, summaryCount, summarySeen := parser.Result()

	duration := time.Since(startTime)
	result := domain.NewInvocationResult(violations, len(req.Files), duration)

	// The audit summary is the engine's authoritative output flag; trust it
	// over the parsed line count when present.
	if summarySeen {
		result.ViolationsFound = summaryCount > 0
	}

	e.logger.Info("engine run completed",
		"duration", duration.String(),
		"violations", len(violations),
		"violations_found", result.ViolationsFound,
	)

	return result, nil
}

// buildArgs constructs the engine command line.
func (e *Engine) buildArgs(req ports.InvokeRequest) []string {
	args := []string{
		"-c", req.Config.ConfigFile,
		"--no-fail", // violation handling is delegated to the failure policy
	}

	for _, cp := range req.AnalysisClasspath {
		args = append(args, "-cp", cp)
	}

	// Every configured property is forwarded, stringified. Sorted keys
	// keep the command line deterministic.
	props := req.Config.StringProperties()
	for _, k := range req.Config.PropertyKeys() {
		args = append(args, "-p", fmt.Sprintf("%s=%s", k, props[k]))
	}

	args = append(args, req.Files...)

	e.logger.Debug("built engine command",
		"args", args,
	)

	return args
}

// resolveEntryPoint finds the engine executable, first in the engine
// classpath directories, then in PATH.
func (e *Engine) resolveEntryPoint(classpath []string) (string, error) {
	for _, dir := range classpath {
		candidate := filepath.Join(dir, e.entryPoint)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 == 0 {
			e.logger.Warn("entry point candidate is not executable", "path", candidate)
			continue
		}
		e.logger.Debug("entry point resolved from classpath", "path", candidate)
		return candidate, nil
	}

	execPath, err := exec.LookPath(e.entryPoint)
	if err != nil {
		return "", fmt.Errorf("%w: %q not found in engine classpath or PATH", domain.ErrEngineUnavailable, e.entryPoint)
	}

	e.logger.Debug("entry point resolved from PATH", "path", execPath)
	return execPath, nil
}

// renderConsole writes the plain rendering of the violations to the
// configured console writer.
func (e *Engine) renderConsole(result *domain.InvocationResult) error {
	writer, err := e.writers.NewWriter(domain.FormatPlain)
	if err != nil {
		return err
	}
	return writer.WriteTo(result, e.console)
}

// Close terminates a still-running engine process. Safe to call multiple
// times.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil && e.cmd.Process != nil {
		proc := e.cmd.Process
		state := e.cmd.ProcessState

		if state == nil || !state.Exited() {
			// Try SIGTERM first (graceful shutdown)
			if err := proc.Signal(os.Interrupt); err != nil {
				if err != os.ErrProcessDone {
					e.logger.Warn("SIGTERM failed, forcing kill", "error", err.Error())
					if killErr := proc.Kill(); killErr != nil && killErr != os.ErrProcessDone {
						e.logger.Warn("failed to kill engine process", "error", killErr.Error())
					}
				}
			}
		}

		e.cmd = nil
	}

	return nil
}

// EntryPoint returns the configured logical entry-point name.
func (e *Engine) EntryPoint() string {
	return e.entryPoint
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
