// Package config builds the immutable merge configuration from layered
// option sources: defaults, csmerge.toml, legacy "/name:value" tokens and
// command-line flags, in ascending precedence.
package config
