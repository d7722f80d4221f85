// Package config loads panicfmt settings from a YAML file.
//
// Values are resolved in order: built-in defaults, the file, then
// PANICFMT_* environment variables. Command-line flags are applied by the
// command itself.
package config
