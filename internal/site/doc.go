// Package site manages the per-site .chiron/site.yaml file: the plugins a
// documentation site enables and where its plugin roots live. The resolve and
// validate commands fall back to the enabled list when no plugins are named.
package site
