// Package poll owns the retry/until loop the core deliberately does
// not: it re-invokes the pipeline with an identical request, waits a
// fixed delay between attempts, and stops when a caller-supplied
// condition on the result holds or the attempt budget is spent. The
// pipeline stays stateless; poll only re-invokes it.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/piwi3910/kubeact/pkg/action"
	"github.com/piwi3910/kubeact/pkg/pipeline"
)

// Condition judges whether a result satisfies the caller.
type Condition func(*action.Result) bool

// Options bound the loop.
type Options struct {
	// Attempts is the maximum number of invocations. Zero means one.
	Attempts int

	// Delay is the pause between attempts.
	Delay time.Duration
}

// ErrConditionNotMet is wrapped into the error returned when the
// attempt budget runs out.
var ErrConditionNotMet = fmt.Errorf("condition not met")

// Until repeats the request until cond holds. It returns the result of
// the satisfying attempt and the number of attempts used. When the
// budget is exhausted the last result is returned alongside an error
// wrapping ErrConditionNotMet; invocation-level errors (invalid
// request, spawn failure) abort the loop immediately.
func Until(ctx context.Context, p *pipeline.Pipeline, req *action.Request, opts Options, cond Condition) (*action.Result, int, error) {
	attempts := opts.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var last *action.Result
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := p.Execute(ctx, req)
		if err != nil {
			return last, attempt, err
		}
		last = result

		if cond(result) {
			return result, attempt, nil
		}

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return last, attempt, ctx.Err()
		case <-time.After(opts.Delay):
		}
	}

	return last, attempts, fmt.Errorf("%w after %d attempts", ErrConditionNotMet, attempts)
}

// MinFacts is satisfied when at least n facts were extracted.
func MinFacts(n int) Condition {
	return func(r *action.Result) bool {
		return len(r.Facts) >= n
	}
}

// Unchanged is satisfied by a successful invocation that reported no
// change, the usual "already converged" terminal state.
func Unchanged() Condition {
	return func(r *action.Result) bool {
		return !r.Failed && !r.Changed
	}
}

// Succeeded is satisfied by any non-failed invocation.
func Succeeded() Condition {
	return func(r *action.Result) bool {
		return !r.Failed
	}
}

// All combines conditions conjunctively.
func All(conds ...Condition) Condition {
	return func(r *action.Result) bool {
		for _, c := range conds {
			if !c(r) {
				return false
			}
		}
		return true
	}
}
