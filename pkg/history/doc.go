// Package history is an append-only SQLite journal of kubectl
// invocations, kept purely for diagnostics. Nothing in the
// classification path ever reads it; the pipeline's statelessness
// invariant holds whether or not a journal is attached.
package history
