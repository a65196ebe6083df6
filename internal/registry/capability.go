package registry

import "sort"

// ProviderMatch is the result of locating a capability provider.
type ProviderMatch struct {
	Capability string
	Provider   string   // the selected plugin
	Candidates []string // every plugin providing the capability, sorted
}

// Ambiguous reports whether more than one plugin provides the capability.
func (m ProviderMatch) Ambiguous() bool {
	return len(m.Candidates) > 1
}

// FindProvider returns the plugin that provides capability. When several
// plugins provide it, the lexicographically smallest name is selected and the
// match is marked ambiguous. It returns a *NoProviderError if none does.
func (r *Registry) FindProvider(capability string) (ProviderMatch, error) {
	candidates := r.capabilities[capability]
	if len(candidates) == 0 {
		return ProviderMatch{}, &NoProviderError{Capability: capability}
	}
	return ProviderMatch{
		Capability: capability,
		Provider:   candidates[0],
		Candidates: append([]string(nil), candidates...),
	}, nil
}

// Capabilities returns every declared capability in lexicographic order.
func (r *Registry) Capabilities() []string {
	out := make([]string, 0, len(r.capabilities))
	for c := range r.capabilities {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// AmbiguousCapabilities returns the matches for every capability that more
// than one plugin provides, ordered by capability.
func (r *Registry) AmbiguousCapabilities() []ProviderMatch {
	var out []ProviderMatch
	for _, c := range r.Capabilities() {
		if len(r.capabilities[c]) > 1 {
			m, _ := r.FindProvider(c)
			out = append(out, m)
		}
	}
	return out
}
