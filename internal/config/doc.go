// Package config loads, normalizes, and validates rewindtrack configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the legacy environment overrides
// (SHOW_NAME, SUBREDDITS, QUERY_TERMS, and friends) that scheduled
// deployments still rely on. The Config type centralizes every knob the CLI
// needs and derives the output file layout from the show slug, so downstream
// code never assembles paths by hand.
package config
