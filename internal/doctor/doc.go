// Package doctor runs health checks over a site's plugin roots: that every
// root is readable, which plugin directories were skipped, which capabilities
// are ambiguous, and whether the full plugin set resolves.
package doctor
