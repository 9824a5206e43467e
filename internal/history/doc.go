// Package history records organize runs and their per-file outcomes in a
// SQLite database under the state directory. The most recent completed run
// also serves as the source of default directories for the next invocation.
package history
