// Package logging wraps log/slog with the attribute helpers and handler
// construction used across curator. Components never build handlers
// themselves; they receive a *slog.Logger and add a component attribute via
// NewComponentLogger.
package logging
