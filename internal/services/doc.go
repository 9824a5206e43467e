// Package services defines the shared error taxonomy for pipeline stages and
// their external collaborators. Stage errors are tagged with a sentinel
// marker so callers can distinguish configuration mistakes, bad input, and
// external-tool failures without string matching.
package services
