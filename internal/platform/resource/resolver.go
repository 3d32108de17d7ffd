// internal/platform/resource/resolver.go
package resource

import (
	"context"
	"fmt"
	"os"
	"sync"

	"lintgate/internal/core/domain"
	"lintgate/internal/platform/logx"
)

// Resolver implements ports.ConfigResolver: it materializes the configured
// TextResource and hands out the classpaths. Resolution is idempotent within
// a run; the materialized path is cached after the first call.
type Resolver struct {
	logger     logx.Logger
	res        TextResource
	properties map[string]any
	engineCP   []string
	analysisCP []string
	workDir    string

	mu           sync.Mutex
	materialized string
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	Resource          TextResource
	Properties        map[string]any
	EngineClasspath   []string
	AnalysisClasspath []string

	// WorkDir receives materialized documents. Empty means a fresh temp
	// directory on first use.
	WorkDir string
}

// NewResolver creates a config resolver.
func NewResolver(logger logx.Logger, opts ResolverOptions) *Resolver {
	return &Resolver{
		logger:     logger.With("component", "config-resolver"),
		res:        opts.Resource,
		properties: opts.Properties,
		engineCP:   opts.EngineClasspath,
		analysisCP: opts.AnalysisClasspath,
		workDir:    opts.WorkDir,
	}
}

// ResolveConfig materializes the rule document. Fails with
// domain.ErrConfigUnresolvable naming the resource when it cannot be
// rendered to a file.
func (r *Resolver) ResolveConfig(ctx context.Context) (domain.RuleConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.res == nil {
		return domain.RuleConfig{}, fmt.Errorf("%w: no rule resource configured", domain.ErrConfigUnresolvable)
	}

	if r.materialized == "" {
		dir, err := r.ensureWorkDir()
		if err != nil {
			return domain.RuleConfig{}, fmt.Errorf("%w: %s: %v", domain.ErrConfigUnresolvable, r.res.Name(), err)
		}

		path, err := r.res.Materialize(ctx, dir)
		if err != nil {
			return domain.RuleConfig{}, fmt.Errorf("%w: %s: %v", domain.ErrConfigUnresolvable, r.res.Name(), err)
		}

		r.materialized = path
		r.logger.Debug("rule configuration materialized",
			"resource", r.res.Name(),
			"path", path,
		)
	}

	return domain.RuleConfig{
		ConfigFile: r.materialized,
		Properties: r.properties,
	}, nil
}

// EngineClasspath implements ports.ConfigResolver.
func (r *Resolver) EngineClasspath(_ context.Context) ([]string, error) {
	out := make([]string, len(r.engineCP))
	copy(out, r.engineCP)
	return out, nil
}

// AnalysisClasspath implements ports.ConfigResolver.
func (r *Resolver) AnalysisClasspath(_ context.Context) ([]string, error) {
	out := make([]string, len(r.analysisCP))
	copy(out, r.analysisCP)
	return out, nil
}

func (r *Resolver) ensureWorkDir() (string, error) {
	if r.workDir != "" {
		if err := os.MkdirAll(r.workDir, 0o755); err != nil {
			return "", err
		}
		return r.workDir, nil
	}

	dir, err := os.MkdirTemp("", "lintgate-rules-")
	if err != nil {
		return "", err
	}
	r.workDir = dir
	return dir, nil
}
