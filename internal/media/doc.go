// Package media defines the shared domain types that flow through the
// organize pipeline: scanned source files, best-effort parsed filename
// attributes, and the extra-content vocabulary.
//
// Attributes are deliberately partial. Every field has an explicit "unknown"
// state because filename parsing is a guess, not a lookup; downstream stages
// must treat missing fields as data, never as errors.
package media
