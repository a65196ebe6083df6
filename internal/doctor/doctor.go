package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agilira/chiron-sub000/internal/manifest"
	"github.com/agilira/chiron-sub000/internal/registry"
	"github.com/agilira/chiron-sub000/internal/resolver"
)

// Result counts the outcome of each check.
type Result struct {
	OK   int
	Warn int
	Fail int
	Miss int
}

// Healthy reports whether no check failed.
func (r *Result) Healthy() bool {
	return r.Fail == 0
}

type printer struct {
	w   io.Writer
	res *Result
}

func (p *printer) ok(format string, args ...any) {
	p.res.OK++
	fmt.Fprintf(p.w, "  [ OK ] "+format+"\n", args...)
}

func (p *printer) warn(format string, args ...any) {
	p.res.Warn++
	fmt.Fprintf(p.w, "  [WARN] "+format+"\n", args...)
}

func (p *printer) fail(format string, args ...any) {
	p.res.Fail++
	fmt.Fprintf(p.w, "  [FAIL] "+format+"\n", args...)
}

func (p *printer) miss(format string, args ...any) {
	p.res.Miss++
	fmt.Fprintf(p.w, "  [MISS] "+format+"\n", args...)
}

// Check validates the plugin roots in sources, the first being the primary
// root, and every plugin found in them. opts are passed to the resolver used
// for loading.
func Check(ctx context.Context, w io.Writer, sources []registry.Source, opts ...resolver.Option) (*Result, error) {
	if len(sources) == 0 {
		return nil, errors.New("no plugin roots to check")
	}
	p := &printer{w: w, res: &Result{}}

	fmt.Fprintln(w, "Plugin roots:")
	for i, src := range sources {
		checkRoot(p, src, i == 0)
	}

	r := resolver.New(sources[0].BasePath, append(opts, resolver.WithSources(sources[1:]...))...)
	if err := r.LoadRegistry(ctx); err != nil {
		p.fail("%v", err)
		return p.res, nil
	}

	reg := r.Registry()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Descriptors:")
	p.ok("%d plugins loaded", reg.Len())
	checkSkipped(p, r.LoadReport())

	for _, m := range reg.AmbiguousCapabilities() {
		p.warn("capability %q provided by %s (using %q)", m.Capability, strings.Join(m.Candidates, ", "), m.Provider)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dependencies:")
	checkGraph(p, r, reg.Names())
	return p.res, nil
}

func checkRoot(p *printer, src registry.Source, primary bool) {
	info, err := os.Stat(src.BasePath)
	switch {
	case os.IsNotExist(err):
		if primary {
			p.fail("%s does not exist", src.BasePath)
		} else {
			p.miss("%s does not exist (skipped)", src.BasePath)
		}
	case err != nil:
		p.fail("%s: %v", src.BasePath, err)
	case !info.IsDir():
		p.fail("%s is not a directory", src.BasePath)
	default:
		p.ok("%s", src.BasePath)
	}
}

func checkSkipped(p *printer, report *registry.LoadReport) {
	for _, o := range report.Skipped() {
		if errors.Is(o.Err, manifest.ErrNoDescriptor) {
			continue
		}
		var dup *registry.DuplicateError
		if errors.As(o.Err, &dup) {
			p.warn("%s shadowed by %s", dup.Path, dup.ExistingPath)
			continue
		}
		p.fail("%s: %v", o.Dir, o.Err)
	}
}

func checkGraph(p *printer, r *resolver.Resolver, names []string) {
	report := r.Validate(names)
	for _, d := range report.Errors {
		p.fail("%s", d.Message)
	}
	for _, d := range report.Warnings {
		if d.Kind == resolver.KindAmbiguousProvider {
			continue
		}
		p.warn("%s", d.Message)
	}
	if report.Valid {
		p.ok("all %d plugins resolve", len(names))
	}
}
