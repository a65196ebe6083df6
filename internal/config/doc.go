// Package config manages user-level settings stored at ~/.chiron/config.yaml,
// with CHIRON_* environment overrides. Settings cover the plugins roots,
// logging and loader concurrency.
package config
