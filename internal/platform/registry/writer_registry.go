// internal/platform/registry/writer_registry.go
package registry

import (
	"fmt"
	"sync"

	"lintgate/internal/core/domain"
	"lintgate/internal/core/ports"
	"lintgate/internal/platform/logx"
)

// WriterRegistry manages registration and construction of report writers.
// It decouples writer creation from the invoker: output adapters register
// themselves at init() time and the invoker binds one writer per enabled
// report descriptor.
type WriterRegistry struct {
	mu        sync.RWMutex
	factories map[domain.ReportFormat]ports.ReportWriterFactory
	logger    logx.Logger
}

// globalRegistry is the process-wide registry instance.
var globalRegistry *WriterRegistry
var once sync.Once

// Global returns the process-wide registry instance.
func Global() *WriterRegistry {
	once.Do(func() {
		globalRegistry = NewWriterRegistry(logx.New())
	})
	return globalRegistry
}

// NewWriterRegistry creates an empty writer registry.
func NewWriterRegistry(logger logx.Logger) *WriterRegistry {
	return &WriterRegistry{
		factories: make(map[domain.ReportFormat]ports.ReportWriterFactory),
		logger:    logger.With("component", "writer-registry"),
	}
}

// Register adds a writer factory for a format. Typically called from the
// init() of the output adapters package.
func (r *WriterRegistry) Register(format domain.ReportFormat, factory ports.ReportWriterFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if format == "" {
		return fmt.Errorf("report format cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory cannot be nil for format %s", format)
	}

	if _, exists := r.factories[format]; exists {
		return fmt.Errorf("format %s is already registered", format)
	}

	r.factories[format] = factory
	r.logger.Debug("report writer registered", "format", format)

	return nil
}

// BoundWriter pairs a writer with the destination of the descriptor it was
// built for.
type BoundWriter struct {
	Writer      ports.ReportWriter
	Destination string
}

// Build constructs one bound writer per enabled descriptor, in declared
// priority order. Every enabled format must have a registered factory;
// otherwise Build fails before anything is written.
func (r *WriterRegistry) Build(reports *domain.ReportSet) ([]BoundWriter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reports == nil {
		return nil, fmt.Errorf("report set cannot be nil")
	}

	enabled := reports.Enabled()
	bound := make([]BoundWriter, 0, len(enabled))

	for _, d := range enabled {
		factory, exists := r.factories[d.Format]
		if !exists {
			return nil, fmt.Errorf("%w: no writer registered for %s", domain.ErrUnknownFormat, d.Format)
		}

		writer, err := factory()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s writer: %w", d.Format, err)
		}

		bound = append(bound, BoundWriter{Writer: writer, Destination: d.Destination})
		r.logger.Debug("report writer bound", "format", d.Format, "destination", d.Destination)
	}

	return bound, nil
}

// NewWriter constructs a single writer for the given format.
func (r *WriterRegistry) NewWriter(format domain.ReportFormat) (ports.ReportWriter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[format]
	if !exists {
		return nil, fmt.Errorf("%w: no writer registered for %s", domain.ErrUnknownFormat, format)
	}
	return factory()
}

// IsRegistered reports whether a writer factory exists for the format.
func (r *WriterRegistry) IsRegistered(format domain.ReportFormat) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[format]
	return exists
}

// Clear removes all registered factories (useful for testing).
func (r *WriterRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[domain.ReportFormat]ports.ReportWriterFactory)
}
