// Package config loads zoodb.json (or zoodb.yaml) project configuration.
//
// Missing fields fall back to defaults, so an empty file is a valid
// configuration that serves the built-in habitat catalogue on
// localhost:3000.
package config
