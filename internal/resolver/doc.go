// Package resolver turns a requested set of plugin names into an activation
// order in which every plugin appears after everything it requires.
//
// A Resolver owns one registry, loaded from an explicit plugins root (plus any
// additional roots) by LoadRegistry. Resolve is fail-fast and returns a
// *ResolutionError for the first unsatisfiable request; Validate walks the
// same graph fail-soft and returns a Report of every error and warning.
// Both keep their traversal state per call, so concurrent use is safe.
package resolver
