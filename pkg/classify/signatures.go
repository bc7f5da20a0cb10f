package classify

import (
	"fmt"
	"regexp"
)

// Signature recognizes one idempotent no-op message on stderr. The
// wording is tied to kubectl's own output and therefore fragile across
// versions and locales; keeping signatures as data lets operators patch
// the table without a rebuild.
type Signature struct {
	// Verbs restricts the signature to specific kubectl verbs. Empty
	// means any mutating verb.
	Verbs []string `yaml:"verbs,omitempty"`

	// Pattern is a regular expression matched against stderr,
	// case-insensitively.
	Pattern string `yaml:"pattern"`

	re *regexp.Regexp
}

// Table is an ordered set of no-op signatures.
type Table struct {
	// Version identifies the table revision, for skew diagnostics.
	Version string `yaml:"version,omitempty"`

	// Signatures are evaluated in order; first match wins.
	Signatures []Signature `yaml:"signatures"`
}

// DefaultTable returns the signature table matching kubectl's stock
// wording for "already satisfied" mutations.
func DefaultTable() *Table {
	t := &Table{
		Version: "builtin",
		Signatures: []Signature{
			{Verbs: []string{"create", "apply"}, Pattern: `already exists`},
			{Verbs: []string{"delete"}, Pattern: `not found`},
			{Verbs: []string{"apply", "replace"}, Pattern: `unchanged`},
			{Verbs: []string{"label", "annotate"}, Pattern: `already has a value`},
			{Pattern: `\(AlreadyExists\)`},
		},
	}
	// The builtin table must always compile.
	if err := t.Compile(); err != nil {
		panic(err)
	}
	return t
}

// Compile compiles every signature pattern. Must be called before
// Match; loaders call it on behalf of their callers.
func (t *Table) Compile() error {
	for i := range t.Signatures {
		re, err := regexp.Compile(`(?i)` + t.Signatures[i].Pattern)
		if err != nil {
			return fmt.Errorf("signature %d (%q): %w", i, t.Signatures[i].Pattern, err)
		}
		t.Signatures[i].re = re
	}
	return nil
}

// Match reports whether stderr carries a recognized no-op signature for
// the given verb.
func (t *Table) Match(verb, stderr string) bool {
	if stderr == "" {
		return false
	}
	for i := range t.Signatures {
		s := &t.Signatures[i]
		if len(s.Verbs) > 0 && !contains(s.Verbs, verb) {
			continue
		}
		if s.re != nil && s.re.MatchString(stderr) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
