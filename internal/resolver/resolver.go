package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/agilira/chiron-sub000/internal/logfields"
	"github.com/agilira/chiron-sub000/internal/logging"
	"github.com/agilira/chiron-sub000/internal/manifest"
	"github.com/agilira/chiron-sub000/internal/registry"
)

// Resolver computes plugin activation orders against a registry loaded from
// one or more plugin roots.
type Resolver struct {
	sources     []registry.Source
	logger      *slog.Logger
	concurrency int

	mu     sync.RWMutex
	reg    *registry.Registry
	report *registry.LoadReport
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSources appends plugin roots searched after the primary one. A plugin
// found in an earlier root shadows one with the same name in a later root.
func WithSources(sources ...registry.Source) Option {
	return func(r *Resolver) {
		r.sources = append(r.sources, sources...)
	}
}

// WithLogger sets the logger for loading and resolution events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency bounds parallel descriptor parsing during LoadRegistry.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		r.concurrency = n
	}
}

// New creates a resolver whose primary plugins root is pluginsRoot. The
// registry is empty until LoadRegistry is called.
func New(pluginsRoot string, opts ...Option) *Resolver {
	r := &Resolver{
		sources: []registry.Source{{Name: filepath.Base(pluginsRoot), BasePath: pluginsRoot}},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromRegistry creates a resolver over an already built registry.
// LoadRegistry on it fails unless sources were added with WithSources.
func FromRegistry(reg *registry.Registry, opts ...Option) *Resolver {
	r := &Resolver{logger: logging.Discard(), reg: reg}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadRegistry scans every plugin root and replaces the current registry.
// A malformed or duplicate plugin is skipped and logged; only an unreadable
// primary root or a canceled context fails the load, in which case the
// previous registry is kept.
func (r *Resolver) LoadRegistry(ctx context.Context) error {
	loader := registry.NewLoader(r.sources,
		registry.WithLogger(r.logger),
		registry.WithConcurrency(r.concurrency))

	reg, report, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading plugin registry: %w", err)
	}

	r.mu.Lock()
	r.reg = reg
	r.report = report
	r.mu.Unlock()
	return nil
}

// Registry returns the loaded registry, or nil before LoadRegistry.
func (r *Resolver) Registry() *registry.Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reg
}

// LoadReport returns the outcomes of the last successful LoadRegistry.
func (r *Resolver) LoadReport() *registry.LoadReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.report
}

// HasPlugin reports whether name is a registered plugin.
func (r *Resolver) HasPlugin(name string) bool {
	reg := r.Registry()
	return reg != nil && reg.Has(name)
}

// GetPlugin returns the descriptor for name.
func (r *Resolver) GetPlugin(name string) (*manifest.Descriptor, error) {
	reg := r.Registry()
	if reg == nil {
		return nil, ErrRegistryNotLoaded
	}
	return reg.Get(name)
}

// Resolve returns the activation order for names: every plugin appears once,
// after all of its required dependencies. Names that match no plugin are
// looked up as capabilities. The first unsatisfiable request is returned as
// a *ResolutionError.
func (r *Resolver) Resolve(names []string) ([]string, error) {
	reg := r.Registry()
	if reg == nil {
		return nil, ErrRegistryNotLoaded
	}

	w := newWalk(reg, true)
	w.run(names)
	if w.failed != nil {
		r.logger.Debug("resolution failed",
			slog.String("kind", string(w.failed.Kind)),
			logfields.Reason(w.failed.Message))
		return nil, &ResolutionError{Diagnostic: *w.failed}
	}

	r.logger.Debug("resolved plugins", slog.Any("requested", names), slog.Any("order", w.order))
	return w.order, nil
}

// Validate walks the same graph as Resolve but never fails: every problem is
// recorded in the returned Report. Before LoadRegistry the registry is
// treated as empty.
func (r *Resolver) Validate(names []string) *Report {
	reg := r.Registry()
	if reg == nil {
		r.logger.Warn("validating against an unloaded registry")
		reg, _ = registry.New()
	}

	w := newWalk(reg, false)
	w.run(names)

	report := &Report{
		Valid:    len(w.errs) == 0,
		Errors:   w.errs,
		Warnings: w.warns,
	}
	if report.Errors == nil {
		report.Errors = []Diagnostic{}
	}
	if report.Warnings == nil {
		report.Warnings = []Diagnostic{}
	}
	if report.Valid {
		report.Order = w.order
	}

	r.logger.Debug("validated plugins",
		slog.Any("requested", names),
		slog.Bool("valid", report.Valid),
		slog.Int("errors", len(report.Errors)),
		slog.Int("warnings", len(report.Warnings)))
	return report
}

// LoadDiagnostics returns a malformed_descriptor diagnostic for every
// directory skipped during the last load because its descriptor was invalid.
func (r *Resolver) LoadDiagnostics() []Diagnostic {
	var out []Diagnostic
	for _, o := range r.LoadReport().Skipped() {
		var me *manifest.MalformedError
		if !errors.As(o.Err, &me) {
			continue
		}
		out = append(out, Diagnostic{
			Kind:    KindMalformedDescriptor,
			Plugin:  filepath.Base(o.Dir),
			Message: me.Error(),
		})
	}
	return out
}
