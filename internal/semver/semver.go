package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Any is the constraint that accepts every version.
const Any = "*"

// Version is a parsed plugin version.
type Version struct {
	v *mm.Version
}

// Constraint is a parsed version constraint, e.g. ">=1.2.0 <2.0.0", "^1.0", "~1.4", "2.1.0".
type Constraint struct {
	raw string
	c   *mm.Constraints
}

// ParseVersion parses a version string, stripping a leading "v".
func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(strings.TrimPrefix(strings.TrimSpace(raw), "v"))
	if err != nil {
		return Version{}, fmt.Errorf("parsing version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseConstraint parses a constraint string. Empty input is treated as Any.
func ParseConstraint(raw string) (Constraint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = Any
	}
	c, err := mm.NewConstraint(trimmed)
	if err != nil {
		return Constraint{}, fmt.Errorf("parsing version constraint %q: %w", raw, err)
	}
	return Constraint{raw: trimmed, c: c}, nil
}

// MustParseConstraint is like ParseConstraint but panics on error.
func MustParseConstraint(raw string) Constraint {
	c, err := ParseConstraint(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the original version text.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// String returns the normalized constraint text.
func (c Constraint) String() string { return c.raw }

// Satisfies reports whether v is accepted by c. Zero values never match.
func Satisfies(v Version, c Constraint) bool {
	if v.v == nil || c.c == nil {
		return false
	}
	return c.c.Check(v.v)
}

// Compare returns -1, 0 or 1 when a is lower than, equal to or greater than b.
// A zero Version sorts before any parsed one.
func Compare(a, b Version) int {
	switch {
	case a.v == nil && b.v == nil:
		return 0
	case a.v == nil:
		return -1
	case b.v == nil:
		return 1
	}
	return a.v.Compare(b.v)
}

// Check parses both strings and reports whether version satisfies constraint.
// An empty version is unversioned and satisfies every constraint.
func Check(version, constraint string) (bool, error) {
	c, err := ParseConstraint(constraint)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(version) == "" {
		return true, nil
	}
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	return Satisfies(v, c), nil
}
