// Package classify decides the ternary outcome of an executed action:
// changed, unchanged, or failed. Read verbs never report changed;
// mutating verbs report changed on exit 0; a recognized no-op stderr
// signature turns a non-zero exit into a successful no-op. The
// signature table is configuration, not code: a default table ships
// compiled in, and an override file can be loaded and hot reloaded.
package classify
