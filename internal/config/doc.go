// Package config loads, validates, and normalizes application
// configuration from TOML. A single Config value is constructed at
// startup and passed explicitly to every subsystem; there is no ambient
// global configuration.
package config
