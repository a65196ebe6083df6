// Package logfields holds the canonical slog attribute keys shared by the
// loader, registry and resolver.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPlugin     = "plugin"
	KeyPath       = "path"
	KeyRoot       = "root"
	KeyCapability = "capability"
	KeyProvider   = "provider"
	KeyCandidates = "candidates"
	KeyReason     = "reason"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func Plugin(name string) slog.Attr        { return slog.String(KeyPlugin, name) }
func Path(p string) slog.Attr             { return slog.String(KeyPath, p) }
func Root(r string) slog.Attr             { return slog.String(KeyRoot, r) }
func Capability(c string) slog.Attr       { return slog.String(KeyCapability, c) }
func Provider(p string) slog.Attr         { return slog.String(KeyProvider, p) }
func Candidates(names []string) slog.Attr { return slog.Any(KeyCandidates, names) }
func Reason(r string) slog.Attr           { return slog.String(KeyReason, r) }
func Count(n int) slog.Attr               { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr     { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
