// Package file stores sectrack configuration as a TOML file on disk,
// by default ~/.sectrack/config.toml.
package file
