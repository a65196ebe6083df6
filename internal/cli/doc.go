// Package cli defines the Cobra command tree for the chiron CLI. Each file
// in this package registers one top-level command (resolve, validate, list,
// etc.) with the root command. Command implementations delegate to internal
// packages for the resolution logic and only handle flags and output.
package cli
