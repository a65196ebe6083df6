package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/agilira/chiron-sub000/internal/logfields"
	"github.com/agilira/chiron-sub000/internal/logging"
	"github.com/agilira/chiron-sub000/internal/manifest"
)

// Loader scans plugin roots and builds a Registry.
type Loader struct {
	sources     []Source
	logger      *slog.Logger
	concurrency int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithConcurrency bounds the number of descriptors parsed in parallel.
// Values below 1 select GOMAXPROCS.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		l.concurrency = n
	}
}

// NewLoader creates a loader over sources. The first source is required to
// exist; later sources are optional.
func NewLoader(sources []Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		sources: append([]Source(nil), sources...),
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.concurrency < 1 {
		l.concurrency = runtime.GOMAXPROCS(0)
	}
	return l
}

// Load scans every source and returns the resulting registry together with a
// report of every directory considered. Per-plugin failures never abort the
// load; they are recorded as skipped outcomes.
func (l *Loader) Load(ctx context.Context) (*Registry, *LoadReport, error) {
	if len(l.sources) == 0 {
		return nil, nil, errors.New("no plugin sources configured")
	}
	start := time.Now()

	var candidates []candidate
	for i, src := range l.sources {
		found, err := discover(src)
		if err != nil {
			if i == 0 {
				return nil, nil, fmt.Errorf("read plugins root %s: %w", src.BasePath, err)
			}
			l.logger.Warn("skipping unreadable plugin root",
				logfields.Root(src.BasePath), logfields.Error(err))
			continue
		}
		candidates = append(candidates, found...)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	mapper := iter.Mapper[candidate, Outcome]{MaxGoroutines: l.concurrency}
	outcomes := mapper.Map(candidates, func(c *candidate) Outcome {
		return loadCandidate(ctx, *c)
	})

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	b := newBuilder()
	for i := range outcomes {
		o := &outcomes[i]
		if o.Err == nil {
			if err := b.add(o.Descriptor); err != nil {
				o.Err = err
				o.Descriptor = nil
			}
		}
		l.logOutcome(*o)
	}

	reg := b.build()
	for _, m := range reg.AmbiguousCapabilities() {
		l.logger.Warn("capability has multiple providers",
			logfields.Capability(m.Capability),
			logfields.Provider(m.Provider),
			logfields.Candidates(m.Candidates))
	}

	report := &LoadReport{Outcomes: outcomes, Duration: time.Since(start)}
	l.logger.Info("plugin registry loaded",
		logfields.Count(reg.Len()),
		slog.Int("skipped", len(report.Skipped())),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return reg, report, nil
}

func loadCandidate(ctx context.Context, c candidate) Outcome {
	o := Outcome{Source: c.source, Dir: c.dir}
	if err := ctx.Err(); err != nil {
		o.Err = err
		return o
	}
	path, err := manifest.FindDescriptor(c.dir)
	if err != nil {
		o.Err = err
		return o
	}
	d, err := manifest.Parse(path)
	if err != nil {
		o.Err = err
		return o
	}
	o.Descriptor = d
	return o
}

func (l *Loader) logOutcome(o Outcome) {
	switch {
	case o.Loaded():
		l.logger.Debug("plugin loaded",
			logfields.Plugin(o.Descriptor.Name), logfields.Path(o.Descriptor.SourcePath))
	case errors.Is(o.Err, manifest.ErrNoDescriptor):
		l.logger.Debug("skipping directory without descriptor", logfields.Path(o.Dir))
	default:
		var dup *DuplicateError
		if errors.As(o.Err, &dup) {
			l.logger.Warn("duplicate plugin name, keeping first",
				logfields.Plugin(dup.Name),
				logfields.Path(dup.Path),
				slog.String("kept", dup.ExistingPath))
			return
		}
		l.logger.Warn("skipping plugin",
			logfields.Path(o.Dir),
			logfields.Reason(o.Reason()),
			logfields.Error(o.Err))
	}
}
