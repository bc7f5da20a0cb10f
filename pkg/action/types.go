package action

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList accepts either a single string or an ordered sequence of
// strings in YAML/JSON input and normalizes both to a slice. Order is
// preserved verbatim; elements are never split or merged.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*s = StringList(many)
		return nil
	default:
		return fmt.Errorf("expected string or sequence of strings, got %v", node.Kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler with the same
// string-or-sequence semantics as the YAML form.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or sequence of strings: %w", err)
	}
	*s = StringList(many)
	return nil
}

// Request describes one kubectl invocation. It is a pure value: the
// pipeline never mutates it and retains nothing between calls.
type Request struct {
	// KubectlPath overrides the kubectl binary. Empty means "kubectl"
	// resolved on PATH.
	KubectlPath string `json:"kubectl,omitempty" yaml:"kubectl,omitempty"`

	// Command is the kubectl verb (get, create, apply, delete, label,
	// describe, ...). Required unless Filename is set.
	Command string `json:"command,omitempty" yaml:"command,omitempty"`

	// Resource is the resource type, optionally with sub-names
	// (e.g. ["secret", "generic"]). Order is preserved into argv.
	Resource StringList `json:"resource,omitempty" yaml:"resource,omitempty"`

	// Name is the target object name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Namespace is emitted as --namespace=<ns>.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Filename is a manifest file or directory path. When set the
	// invocation is always "apply -f <filename>" regardless of Command.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`

	// KeyVars are trailing argv tokens appended verbatim, one token per
	// element. A single string stays a single token; callers wanting
	// several independent flags must supply a sequence.
	KeyVars StringList `json:"keyvars,omitempty" yaml:"keyvars,omitempty"`

	// Label is emitted as --selector=<label>. Meaningful for get/label.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Server is emitted as --server=<url>.
	Server string `json:"server,omitempty" yaml:"server,omitempty"`

	// Kubeconfig is emitted as --kubeconfig=<path>.
	Kubeconfig string `json:"kubeconfig,omitempty" yaml:"kubeconfig,omitempty"`

	// Ignore emits --ignore-not-found.
	Ignore bool `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Overwrite emits --overwrite.
	Overwrite bool `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`

	// Force emits --force.
	Force bool `json:"force,omitempty" yaml:"force,omitempty"`

	// All emits --all.
	All bool `json:"all,omitempty" yaml:"all,omitempty"`

	// LogLevel emits --v=<n> when positive.
	LogLevel int `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"gte=0,lte=10"`

	// Filter is a regular expression applied to stdout. All
	// non-overlapping matches are collected; when the expression has
	// capture groups the first group is extracted, otherwise the whole
	// match. Empty means "no reduction": trimmed stdout becomes the
	// single fact.
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// ExecutionResult is the raw outcome of one subprocess run. Stdout and
// stderr are captured independently and never merged.
type ExecutionResult struct {
	// Argv is the exact vector executed, for diagnostics.
	Argv []string `json:"argv"`

	// ExitCode is the subprocess exit status.
	ExitCode int `json:"exit_code"`

	// Stdout is the captured standard output.
	Stdout string `json:"stdout"`

	// Stderr is the captured standard error.
	Stderr string `json:"stderr"`
}

// Result is the final payload returned to the caller. It is constructed
// once per Request and never mutated afterward.
type Result struct {
	// Changed reports whether this invocation is believed to have
	// altered cluster state.
	Changed bool `json:"changed"`

	// Failed reports a genuine command failure (not a recognized
	// idempotent no-op).
	Failed bool `json:"failed"`

	// Facts are the reduced stdout facts, in order of appearance.
	// Duplicates are preserved; an empty set is a legitimate state, not
	// an error.
	Facts []string `json:"facts"`

	// RC is the subprocess exit code.
	RC int `json:"rc"`

	// Stdout and Stderr carry the raw output for failure diagnostics.
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`

	// Msg is a short human-readable summary.
	Msg string `json:"msg,omitempty"`
}
