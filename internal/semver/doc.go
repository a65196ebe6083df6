// Package semver wraps github.com/Masterminds/semver/v3 with the version and
// constraint rules used for plugin descriptors. A leading "v" is tolerated,
// a bare version in a constraint is an exact match, and an empty constraint
// or "*" accepts any version.
package semver
