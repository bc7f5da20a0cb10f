package classify

import (
	"fmt"
	"sync"

	"github.com/piwi3910/kubeact/pkg/action"
)

// Classifier assembles the final action.Result from an executed
// request. It carries only the signature table; every Classify call is
// independent and decides purely from its inputs.
type Classifier struct {
	mu    sync.RWMutex
	table *Table
}

// New creates a classifier with the given signature table. A nil table
// selects the builtin default.
func New(table *Table) *Classifier {
	if table == nil {
		table = DefaultTable()
	}
	return &Classifier{table: table}
}

// SetTable swaps the signature table. Used by the hot-reload watcher.
func (c *Classifier) SetTable(table *Table) {
	c.mu.Lock()
	c.table = table
	c.mu.Unlock()
}

// Table returns the current signature table.
func (c *Classifier) Table() *Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.table
}

// Classify decides the ternary verdict for one executed request.
//
// Read verbs fail on any non-zero exit and never report changed; the
// caller compares facts across polls to detect movement. Mutating verbs
// (and every filename-driven apply) report changed on exit 0. A
// recognized no-op signature on stderr takes precedence over a non-zero
// exit code: kubectl returns non-zero for "already applied" states, and
// those classify as successful no-ops, not failures.
func (c *Classifier) Classify(req *action.Request, exec *action.ExecutionResult, facts []string) *action.Result {
	result := &action.Result{
		Facts:  facts,
		RC:     exec.ExitCode,
		Stdout: exec.Stdout,
		Stderr: exec.Stderr,
	}

	verb := req.Command
	if req.Filename != "" {
		// Filename routes through the apply branch regardless of the
		// request's verb.
		verb = "apply"
	}

	if action.IsReadVerb(verb) {
		result.Failed = exec.ExitCode != 0
		if result.Failed {
			result.Msg = fmt.Sprintf("kubectl %s failed (rc=%d)", verb, exec.ExitCode)
		} else {
			result.Msg = fmt.Sprintf("successfully ran kubectl %s", verb)
		}
		return result
	}

	if exec.ExitCode == 0 {
		result.Changed = true
		result.Msg = fmt.Sprintf("successfully ran kubectl %s", verb)
		return result
	}

	if c.Table().Match(verb, exec.Stderr) {
		result.Msg = fmt.Sprintf("kubectl %s was already satisfied", verb)
		return result
	}

	result.Failed = true
	result.Msg = fmt.Sprintf("kubectl %s failed (rc=%d)", verb, exec.ExitCode)
	return result
}
