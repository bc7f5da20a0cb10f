// Package action defines the request and result types for a single
// kubectl invocation: the declarative Request supplied by a caller,
// the Result verdict handed back, and the classified error taxonomy
// shared by the whole pipeline.
package action
