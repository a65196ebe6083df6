package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agilira/chiron-sub000/internal/manifest"
	"github.com/agilira/chiron-sub000/internal/registry"
	"github.com/agilira/chiron-sub000/internal/semver"
)

// errStop aborts a fail-fast walk once the first error diagnostic is recorded.
var errStop = errors.New("stop")

// walk is the per-call traversal state shared by Resolve and Validate. It is
// never stored on the Resolver.
type walk struct {
	reg      *registry.Registry
	failFast bool

	done   map[string]bool // permanently visited
	active map[string]bool // in progress
	stack  []string        // in-progress chain, for cycle messages
	order  []string

	errs   []Diagnostic
	warns  []Diagnostic
	seen   map[string]bool // diagnostic keys already recorded
	failed *Diagnostic     // first error, for fail-fast callers
}

func newWalk(reg *registry.Registry, failFast bool) *walk {
	return &walk{
		reg:      reg,
		failFast: failFast,
		done:     make(map[string]bool),
		active:   make(map[string]bool),
		seen:     make(map[string]bool),
	}
}

func (w *walk) run(names []string) {
	for _, name := range names {
		target, ok := w.lookup(name, "")
		if !ok {
			w.report(Diagnostic{
				Kind:    KindNotFound,
				Plugin:  name,
				Message: fmt.Sprintf("plugin %q not found in registry", name),
			})
			if w.stopped() {
				return
			}
			continue
		}
		if err := w.visit(target); err != nil {
			return
		}
	}
}

// visit expands one plugin depth-first and appends it after its required
// dependencies.
func (w *walk) visit(name string) error {
	if w.done[name] {
		return nil
	}
	if w.active[name] {
		chain := w.cycleChain(name)
		w.report(Diagnostic{
			Kind:    KindCircularDependency,
			Plugin:  name,
			Chain:   chain,
			Message: "circular dependency detected: " + strings.Join(chain, " -> "),
		})
		if w.stopped() {
			return errStop
		}
		return nil
	}

	desc, err := w.reg.Get(name)
	if err != nil {
		// lookup only hands out registered names
		return err
	}

	w.active[name] = true
	w.stack = append(w.stack, name)

	for _, dep := range desc.Dependencies.Required {
		target, ok := w.lookup(dep.Name, name)
		if !ok {
			w.report(Diagnostic{
				Kind:       KindMissingDependency,
				Plugin:     name,
				Dependency: dep.Name,
				Message:    fmt.Sprintf("plugin %q requires %q, which is not provided by any registered plugin", name, dep.Name),
			})
			if w.stopped() {
				return errStop
			}
			continue
		}
		if d, ok := w.checkVersion(name, dep, target, KindIncompatibleVersion); !ok {
			w.report(d)
			if w.stopped() {
				return errStop
			}
		}
		if err := w.visit(target); err != nil {
			return err
		}
	}

	if !w.failFast {
		w.checkOptional(name, desc.Dependencies.Optional)
	}

	w.stack = w.stack[:len(w.stack)-1]
	delete(w.active, name)
	w.done[name] = true
	w.order = append(w.order, name)
	return nil
}

// lookup maps a name to a registered plugin, falling back to the capability
// locator when no plugin has that exact name. from is the dependent plugin,
// empty for top-level requests.
func (w *walk) lookup(name, from string) (string, bool) {
	if w.reg.Has(name) {
		return name, true
	}
	m, err := w.reg.FindProvider(name)
	if err != nil {
		return "", false
	}
	if m.Ambiguous() {
		w.report(Diagnostic{
			Kind:       KindAmbiguousProvider,
			Plugin:     from,
			Dependency: name,
			Available:  strings.Join(m.Candidates, ", "),
			Message: fmt.Sprintf("capability %q is provided by %s; using %q",
				name, strings.Join(m.Candidates, ", "), m.Provider),
		})
	}
	return m.Provider, true
}

// checkVersion verifies a dependency constraint against the target plugin's
// version. Unversioned plugins satisfy every constraint.
func (w *walk) checkVersion(from string, dep manifest.DependencySpec, target string, kind Kind) (Diagnostic, bool) {
	if !dep.HasConstraint() {
		return Diagnostic{}, true
	}
	desc, err := w.reg.Get(target)
	if err != nil {
		return Diagnostic{}, true
	}
	ok, err := semver.Check(desc.Version, dep.Version)
	if err == nil && ok {
		return Diagnostic{}, true
	}

	msg := fmt.Sprintf("plugin %q requires %s %s, but version %s is available",
		from, dep.Name, dep.Version, desc.Version)
	if target != dep.Name {
		msg = fmt.Sprintf("plugin %q requires %s %s, but provider %q has version %s",
			from, dep.Name, dep.Version, target, desc.Version)
	}
	if err != nil {
		msg += fmt.Sprintf(" (%v)", err)
	}
	return Diagnostic{
		Kind:       kind,
		Plugin:     from,
		Dependency: dep.Name,
		Required:   dep.Version,
		Available:  desc.Version,
		Message:    msg,
	}, false
}

func (w *walk) checkOptional(name string, specs []manifest.DependencySpec) {
	for _, dep := range specs {
		target, ok := w.lookup(dep.Name, name)
		if !ok {
			w.report(Diagnostic{
				Kind:       KindMissingOptional,
				Plugin:     name,
				Dependency: dep.Name,
				Message:    fmt.Sprintf("optional dependency %q of plugin %q is not available", dep.Name, name),
			})
			continue
		}
		if d, ok := w.checkVersion(name, dep, target, KindIncompatibleOptional); !ok {
			d.Message = "optional dependency: " + d.Message
			w.report(d)
		}
	}
}

// cycleChain returns the in-progress path from name back to itself.
func (w *walk) cycleChain(name string) []string {
	start := 0
	for i, n := range w.stack {
		if n == name {
			start = i
			break
		}
	}
	chain := append([]string(nil), w.stack[start:]...)
	return append(chain, name)
}

func (w *walk) report(d Diagnostic) {
	if !d.Kind.IsError() {
		if w.failFast || w.seen[d.key()] {
			return
		}
		w.seen[d.key()] = true
		w.warns = append(w.warns, d)
		return
	}
	if w.failFast {
		if w.failed == nil {
			w.failed = &d
		}
		return
	}
	if w.seen[d.key()] {
		return
	}
	w.seen[d.key()] = true
	w.errs = append(w.errs, d)
}

func (w *walk) stopped() bool {
	return w.failFast && w.failed != nil
}
