// Package config handles configuration management for rdpgen.
// It layers the embedded defaults, the user's TOML file, RDPGEN_
// environment variables and command-line flags, in that order.
package config
