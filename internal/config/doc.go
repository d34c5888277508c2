// Package config loads, normalizes, and validates nimbus configuration data.
//
// It supplies repository defaults, honours the OPENROUTER_API_KEY family of
// environment variables, expands user paths (including tilde shortcuts), and
// reads TOML files. The Config type centralizes every knob the classifier and
// CLI need: the remote endpoint, model and generation settings, the input
// length bounds, and where logs and evaluation history live.
//
// Always obtain settings through this package so downstream code receives a
// single immutable value built at startup instead of reading the environment
// on its own.
package config
