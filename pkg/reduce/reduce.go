// Package reduce turns raw kubectl stdout into an ordered fact set.
// With no filter the trimmed stdout is the single fact; with a filter
// every non-overlapping match contributes one fact, first capture group
// preferred over the whole match.
package reduce

import (
	"regexp"
	"strings"
)

// Reduce applies the optional filter to stdout and returns the
// extracted facts in order of appearance. The function is pure:
// reducing the same stdout with the same filter always yields the same
// result.
//
// Stdout is treated as one contiguous text blob, not per-line records,
// so a pattern can match across embedded delimiters (for example
// tuples flattened out of a jsonpath {range} projection). An empty
// match set is a legitimate outcome, reported as an empty non-nil
// slice so callers can distinguish "ran, nothing matched" from
// "never reduced".
func Reduce(stdout string, filter *regexp.Regexp) []string {
	if filter == nil {
		return []string{strings.TrimSpace(stdout)}
	}

	matches := filter.FindAllStringSubmatch(stdout, -1)
	facts := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) > 1 {
			facts = append(facts, m[1])
		} else {
			facts = append(facts, m[0])
		}
	}
	return facts
}
