// Package preflight provides readiness checks for the filesystem paths and
// external tools an organize run depends on. The organize command runs them
// before touching anything so a doomed run fails in seconds, not after hours
// of copying.
package preflight
