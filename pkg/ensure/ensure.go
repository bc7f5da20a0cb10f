// Package ensure layers desired-state semantics over the single-shot
// pipeline: present creates unless an exists probe finds the object,
// absent deletes only what exists, latest applies with overwrite. The
// probe is itself an ordinary pipeline invocation, so the core stays
// stateless.
package ensure

import (
	"context"
	"fmt"

	"github.com/piwi3910/kubeact/pkg/action"
	"github.com/piwi3910/kubeact/pkg/pipeline"
)

// State is the desired end state of a resource.
type State string

const (
	// StatePresent creates the resource when the exists probe misses.
	StatePresent State = "present"

	// StateAbsent deletes the resource when the exists probe hits.
	StateAbsent State = "absent"

	// StateLatest applies with overwrite, no probe.
	StateLatest State = "latest"
)

// ParseState validates a state string.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StatePresent, StateAbsent, StateLatest:
		return State(s), nil
	default:
		return "", fmt.Errorf("unrecognized state %q (want present, absent, or latest)", s)
	}
}

// Apply drives the request toward the desired state and returns the
// classified result of the decisive invocation. When the probe already
// finds the desired state, a synthetic unchanged result is returned
// without running a mutation.
func Apply(ctx context.Context, p *pipeline.Pipeline, req *action.Request, state State) (*action.Result, error) {
	switch state {
	case StatePresent:
		return applyPresent(ctx, p, req)
	case StateAbsent:
		return applyAbsent(ctx, p, req)
	case StateLatest:
		return applyLatest(ctx, p, req)
	default:
		return nil, action.NewInvalidRequestError(fmt.Sprintf("unrecognized state %q", state), nil)
	}
}

func applyPresent(ctx context.Context, p *pipeline.Pipeline, req *action.Request) (*action.Result, error) {
	mutate := *req
	if mutate.Filename == "" && mutate.Command == "" {
		mutate.Command = "create"
	}

	// Manifest application is idempotent on its own; only resource
	// requests get an exists probe.
	if req.Filename == "" {
		exists, err := Exists(ctx, p, req)
		if err != nil {
			return nil, err
		}
		if exists && !action.IsReadVerb(mutate.Command) {
			return noop(fmt.Sprintf("%s %s already present", resourceKind(req), req.Name)), nil
		}
	}

	return p.Execute(ctx, &mutate)
}

func applyAbsent(ctx context.Context, p *pipeline.Pipeline, req *action.Request) (*action.Result, error) {
	// A filename always drives an apply invocation, so a manifest can
	// never express a delete.
	if req.Filename != "" {
		return nil, action.NewInvalidRequestError("state absent requires a resource, not a filename", nil)
	}

	if !req.Force {
		exists, err := Exists(ctx, p, req)
		if err != nil {
			return nil, err
		}
		if !exists {
			return noop(fmt.Sprintf("%s %s already absent", resourceKind(req), req.Name)), nil
		}
	}

	del := *req
	del.Command = "delete"
	return p.Execute(ctx, &del)
}

func applyLatest(ctx context.Context, p *pipeline.Pipeline, req *action.Request) (*action.Result, error) {
	latest := *req
	latest.Overwrite = true
	if latest.Filename == "" && latest.Command == "" {
		latest.Command = "apply"
	}
	return p.Execute(ctx, &latest)
}

// Exists probes for the resource with a get invocation. kubectl's
// --ignore-not-found makes a miss exit zero with empty output, so
// existence reduces to "the probe produced any stdout".
func Exists(ctx context.Context, p *pipeline.Pipeline, req *action.Request) (bool, error) {
	if len(req.Resource) == 0 {
		return false, action.NewInvalidRequestError("resource required for exists probe", nil)
	}

	probe := &action.Request{
		KubectlPath: req.KubectlPath,
		Command:     "get",
		Resource:    req.Resource[:1],
		Name:        req.Name,
		Namespace:   req.Namespace,
		Server:      req.Server,
		Kubeconfig:  req.Kubeconfig,
		All:         req.All,
		Ignore:      true,
	}

	result, err := p.Execute(ctx, probe)
	if err != nil {
		return false, err
	}
	if result.Failed {
		return false, action.NewCommandFailureError(fmt.Sprintf("exists probe failed (rc=%d): %s", result.RC, result.Stderr), nil)
	}

	return len(result.Facts) > 0 && result.Facts[0] != "", nil
}

func resourceKind(req *action.Request) string {
	if len(req.Resource) > 0 {
		return req.Resource[0]
	}
	return "resource"
}

func noop(msg string) *action.Result {
	return &action.Result{
		Changed: false,
		Failed:  false,
		Facts:   []string{},
		Msg:     msg,
	}
}
