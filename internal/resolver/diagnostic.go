package resolver

import (
	"errors"

	"github.com/agilira/chiron-sub000/internal/registry"
)

// Kind classifies a Diagnostic.
type Kind string

const (
	KindNotFound             Kind = "not_found"
	KindMissingDependency    Kind = "missing_dependency"
	KindCircularDependency   Kind = "circular_dependency"
	KindIncompatibleVersion  Kind = "incompatible_version"
	KindMissingOptional      Kind = "missing_optional"
	KindIncompatibleOptional Kind = "incompatible_optional"
	KindAmbiguousProvider    Kind = "ambiguous_provider"
	KindMalformedDescriptor  Kind = "malformed_descriptor"
)

// IsError reports whether diagnostics of this kind invalidate a report.
func (k Kind) IsError() bool {
	switch k {
	case KindNotFound, KindMissingDependency, KindCircularDependency, KindIncompatibleVersion:
		return true
	}
	return false
}

var (
	// ErrRegistryNotLoaded is returned when resolution is attempted before
	// LoadRegistry has succeeded.
	ErrRegistryNotLoaded = errors.New("plugin registry not loaded")

	// ErrMissingDependency matches required dependencies that no plugin satisfies.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrCircularDependency matches dependency cycles.
	ErrCircularDependency = errors.New("circular dependency")

	// ErrIncompatibleVersion matches version constraint mismatches.
	ErrIncompatibleVersion = errors.New("incompatible version")
)

// Diagnostic describes one problem found while walking the dependency graph.
type Diagnostic struct {
	Kind       Kind     `json:"type"`
	Plugin     string   `json:"plugin,omitempty"`
	Dependency string   `json:"dependency,omitempty"`
	Required   string   `json:"required,omitempty"`
	Available  string   `json:"available,omitempty"`
	Chain      []string `json:"chain,omitempty"`
	Message    string   `json:"message"`
}

func (d Diagnostic) key() string {
	return string(d.Kind) + "\x00" + d.Plugin + "\x00" + d.Dependency
}

// Report is the result of Validate.
type Report struct {
	Valid    bool         `json:"valid"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
	// Order is the activation order; it is only set when Valid is true.
	Order []string `json:"order,omitempty"`
}

// ResolutionError is returned by Resolve. errors.Is matches it against the
// sentinel for its kind; not-found and missing-dependency errors also match
// registry.ErrNotFound.
type ResolutionError struct {
	Diagnostic
}

func (e *ResolutionError) Error() string { return e.Message }

func (e *ResolutionError) Is(target error) bool {
	switch e.Kind {
	case KindNotFound:
		return target == registry.ErrNotFound
	case KindMissingDependency:
		return target == ErrMissingDependency || target == registry.ErrNotFound
	case KindCircularDependency:
		return target == ErrCircularDependency
	case KindIncompatibleVersion:
		return target == ErrIncompatibleVersion
	}
	return false
}
