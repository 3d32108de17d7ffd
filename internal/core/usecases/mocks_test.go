// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"

	"lintgate/internal/core/domain"
	"lintgate/internal/core/ports"
)

// mockResolver is a mock of ports.ConfigResolver for task runner tests
type mockResolver struct {
	config     domain.RuleConfig
	configErr  error
	engineCP   []string
	analysisCP []string

	resolveCalls int
}

func (m *mockResolver) ResolveConfig(ctx context.Context) (domain.RuleConfig, error) {
	m.resolveCalls++
	if m.configErr != nil {
		return domain.RuleConfig{}, m.configErr
	}
	return m.config, nil
}

func (m *mockResolver) EngineClasspath(ctx context.Context) ([]string, error) {
	return m.engineCP, nil
}

func (m *mockResolver) AnalysisClasspath(ctx context.Context) ([]string, error) {
	return m.analysisCP, nil
}

// mockInvoker is a mock of ports.Invoker for task runner tests
type mockInvoker struct {
	result *domain.InvocationResult
	err    error

	invokeCalls int
	lastRequest ports.InvokeRequest
}

func (m *mockInvoker) Invoke(ctx context.Context, req ports.InvokeRequest) (*domain.InvocationResult, error) {
	m.invokeCalls++
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockHistory is a mock of History for task runner tests
type mockHistory struct {
	mu      sync.Mutex
	records []HistoryRecord
	lastErr error
}

func (m *mockHistory) Record(ctx context.Context, rec HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockHistory) Last(ctx context.Context) (HistoryRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastErr != nil {
		return HistoryRecord{}, false, m.lastErr
	}
	if len(m.records) == 0 {
		return HistoryRecord{}, false, nil
	}
	return m.records[len(m.records)-1], true, nil
}

// staticLinker renders destinations with a fixed prefix, making message
// assertions independent of the working directory.
type staticLinker struct{}

func (staticLinker) Link(path string) string { return "link:" + path }
