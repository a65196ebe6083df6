package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a plugin name is not registered.
	ErrNotFound = errors.New("plugin not found")

	// ErrNoProvider is returned when no registered plugin provides a capability.
	ErrNoProvider = errors.New("no provider for capability")

	// ErrDuplicatePlugin is returned when two descriptors declare the same name.
	ErrDuplicatePlugin = errors.New("duplicate plugin name")
)

// NoProviderError names the capability that could not be satisfied.
type NoProviderError struct {
	Capability string
}

func (e *NoProviderError) Error() string {
	return fmt.Sprintf("no registered plugin provides capability %q", e.Capability)
}

func (e *NoProviderError) Unwrap() error { return ErrNoProvider }

// DuplicateError records a descriptor rejected because its name was already
// registered from ExistingPath.
type DuplicateError struct {
	Name         string
	Path         string
	ExistingPath string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("plugin %q at %s already registered from %s", e.Name, e.Path, e.ExistingPath)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicatePlugin }
