// Package scaffold generates new plugin directories from embedded templates.
// It powers the "chiron create" command, producing a plugin.yaml descriptor and
// a README, and checks the generated descriptor against the descriptor schema.
package scaffold
