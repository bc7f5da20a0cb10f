package kubectl

import (
	"strconv"

	"github.com/piwi3910/kubeact/pkg/action"
)

// DefaultBinary is the kubectl executable resolved on PATH when the
// request does not override it.
const DefaultBinary = "kubectl"

// Build maps a request onto an ordered argument vector. It is pure and
// total over well-formed requests: the same request always yields the
// same argv, and no token is ever split, merged, or shell-quoted.
//
// A set Filename forces an "apply -f <path>" invocation regardless of
// the request's Command; the path is passed through unmodified
// (directory expansion is kubectl's job). Otherwise the verb, the
// flattened resource tokens, the name, and the flag tokens are emitted
// in a fixed order with KeyVars always last.
func Build(req *action.Request) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bin := req.KubectlPath
	if bin == "" {
		bin = DefaultBinary
	}
	argv := []string{bin}

	if req.Filename != "" {
		argv = append(argv, "apply", "-f", req.Filename)
		return append(argv, globalFlags(req)...), nil
	}

	argv = append(argv, req.Command)
	argv = append(argv, req.Resource...)
	if req.Name != "" {
		argv = append(argv, req.Name)
	}
	argv = append(argv, globalFlags(req)...)
	if req.Label != "" {
		argv = append(argv, "--selector="+req.Label)
	}
	argv = append(argv, extraFlags(req)...)
	if req.Command == "get" {
		argv = append(argv, "--no-headers")
	}
	if req.Overwrite {
		argv = append(argv, "--overwrite")
	}

	// KeyVars close the vector so callers can rely on them being the
	// trailing tokens, in order, one token per element.
	argv = append(argv, req.KeyVars...)

	return argv, nil
}

// globalFlags emits the flags that apply to every invocation shape.
func globalFlags(req *action.Request) []string {
	var flags []string
	if req.Namespace != "" {
		flags = append(flags, "--namespace="+req.Namespace)
	}
	if req.Server != "" {
		flags = append(flags, "--server="+req.Server)
	}
	if req.Kubeconfig != "" {
		flags = append(flags, "--kubeconfig="+req.Kubeconfig)
	}
	if req.LogLevel > 0 {
		flags = append(flags, "--v="+strconv.Itoa(req.LogLevel))
	}
	return flags
}

// extraFlags emits the boolean flags meaningful only in resource mode.
func extraFlags(req *action.Request) []string {
	var flags []string
	if req.Ignore {
		flags = append(flags, "--ignore-not-found")
	}
	if req.Force {
		flags = append(flags, "--force")
	}
	if req.All {
		flags = append(flags, "--all")
	}
	return flags
}
