package registry

import (
	"errors"
	"time"

	"github.com/agilira/chiron-sub000/internal/manifest"
)

// Source represents a plugins root to scan. Earlier sources take priority
// when two roots contain a plugin with the same name.
type Source struct {
	Name     string // e.g., "plugins", "vendor"
	BasePath string // path to the directory holding one subdirectory per plugin
}

// Outcome is the tagged result of loading one plugin directory: either
// Loaded (Descriptor set) or Skipped (Err set).
type Outcome struct {
	Source     string
	Dir        string
	Descriptor *manifest.Descriptor
	Err        error
}

// Loaded reports whether the directory produced a registered descriptor.
func (o Outcome) Loaded() bool {
	return o.Err == nil && o.Descriptor != nil
}

// Reason returns a short description of why the directory was skipped.
func (o Outcome) Reason() string {
	switch {
	case o.Err == nil:
		return ""
	case errors.Is(o.Err, manifest.ErrNoDescriptor):
		return "no descriptor"
	case errors.Is(o.Err, ErrDuplicatePlugin):
		return "duplicate plugin name"
	default:
		var me *manifest.MalformedError
		if errors.As(o.Err, &me) {
			return "malformed descriptor"
		}
		return "load error"
	}
}

// LoadReport collects every outcome of a load, in discovery order.
type LoadReport struct {
	Outcomes []Outcome
	Duration time.Duration
}

// Loaded returns the outcomes that produced a registered plugin.
func (r *LoadReport) Loaded() []Outcome {
	return r.filter(true)
}

// Skipped returns the outcomes that were skipped, with their reasons.
func (r *LoadReport) Skipped() []Outcome {
	return r.filter(false)
}

func (r *LoadReport) filter(loaded bool) []Outcome {
	if r == nil {
		return nil
	}
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Loaded() == loaded {
			out = append(out, o)
		}
	}
	return out
}
