// Package registry discovers plugin descriptors under one or more plugin
// roots and holds them in an immutable, name-keyed Registry. It also locates
// the plugin that provides an abstract capability.
package registry
