// Package kubectl translates an action.Request into a kubectl argument
// vector and executes it as a subprocess. The builder is a pure
// function of the request; the runner captures stdout and stderr
// independently and surfaces spawn failures separately from non-zero
// exits.
package kubectl
