package action

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks that the request is well-formed: either a filename
// drives an apply-style invocation, or a recognized verb plus resource
// drives the command. A filename excludes resource and name, and all
// excludes namespace. A filter, when present, must compile.
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return NewInvalidRequestError("request validation failed", err)
	}

	if r.Filename == "" {
		if r.Command == "" || len(r.Resource) == 0 {
			return NewInvalidRequestError("filename or command and resource required", nil)
		}
		if !IsKnownVerb(r.Command) {
			return NewInvalidRequestError(fmt.Sprintf("unrecognized command %q", r.Command), nil)
		}
	} else {
		if len(r.Resource) > 0 {
			return NewInvalidRequestError("filename and resource are mutually exclusive", nil)
		}
		if r.Name != "" {
			return NewInvalidRequestError("filename and name are mutually exclusive", nil)
		}
	}

	if r.All && r.Namespace != "" {
		return NewInvalidRequestError("namespace and all are mutually exclusive", nil)
	}

	if r.Filter != "" {
		if _, err := regexp.Compile(r.Filter); err != nil {
			return NewInvalidRequestError("filter does not compile", err)
		}
	}

	return nil
}

// CompileFilter returns the compiled filter expression, or nil when no
// filter is set. Validate must have accepted the request first.
func (r *Request) CompileFilter() (*regexp.Regexp, error) {
	if r.Filter == "" {
		return nil, nil
	}
	re, err := regexp.Compile(r.Filter)
	if err != nil {
		return nil, NewInvalidRequestError("filter does not compile", err)
	}
	return re, nil
}
