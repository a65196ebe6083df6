// Package manifest handles parsing and validation of plugin descriptors
// (plugin.yaml). Every descriptor is checked against an embedded JSON Schema
// before it is decoded, and decoding failures are reported as MalformedError
// so callers can skip a single broken plugin without aborting a load.
package manifest
