// Package config loads, normalizes, and validates reelstore configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from the standard locations. The Config
// type centralizes every knob the CLI and server need, so the asset root and
// index directories are discovered in one pass rather than through ambient
// process state.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
