// Package config loads, normalizes, and validates curator's TOML
// configuration. Defaults cover every field so the tool runs without a
// config file; an on-disk file only overrides what it mentions.
package config
