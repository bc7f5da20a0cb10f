package action

import "testing"

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{
			name:    "filename alone is valid",
			req:     Request{Filename: "/manifests/kube-dns/"},
			wantErr: false,
		},
		{
			name:    "command with resource is valid",
			req:     Request{Command: "get", Resource: StringList{"node"}},
			wantErr: false,
		},
		{
			name:    "empty request",
			req:     Request{},
			wantErr: true,
		},
		{
			name:    "command without resource",
			req:     Request{Command: "get"},
			wantErr: true,
		},
		{
			name:    "resource without command",
			req:     Request{Resource: StringList{"node"}},
			wantErr: true,
		},
		{
			name:    "unrecognized verb",
			req:     Request{Command: "frobnicate", Resource: StringList{"node"}},
			wantErr: true,
		},
		{
			name:    "filename overrides missing command",
			req:     Request{Filename: "/tmp/nginx.yml", Command: ""},
			wantErr: false,
		},
		{
			name:    "filename with command is valid",
			req:     Request{Filename: "/tmp/nginx.yml", Command: "get"},
			wantErr: false,
		},
		{
			name:    "filename and resource are mutually exclusive",
			req:     Request{Filename: "/tmp/nginx.yml", Resource: StringList{"rc"}},
			wantErr: true,
		},
		{
			name:    "filename and name are mutually exclusive",
			req:     Request{Filename: "/tmp/nginx.yml", Name: "nginx"},
			wantErr: true,
		},
		{
			name:    "namespace and all are mutually exclusive",
			req:     Request{Command: "delete", Resource: StringList{"pod"}, Namespace: "default", All: true},
			wantErr: true,
		},
		{
			name:    "all without namespace is valid",
			req:     Request{Command: "delete", Resource: StringList{"pod"}, All: true},
			wantErr: false,
		},
		{
			name:    "broken filter",
			req:     Request{Command: "get", Resource: StringList{"node"}, Filter: "("},
			wantErr: true,
		},
		{
			name:    "filter without groups is accepted",
			req:     Request{Command: "get", Resource: StringList{"node"}, Filter: `Ready=True`},
			wantErr: false,
		},
		{
			name:    "log level out of range",
			req:     Request{Command: "get", Resource: StringList{"node"}, LogLevel: 99},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil && !IsInvalidRequest(err) {
				t.Errorf("error is not classified as invalid request: %v", err)
			}
		})
	}
}

func TestCompileFilter(t *testing.T) {
	req := Request{Command: "get", Resource: StringList{"node"}, Filter: `(\S+):Ready=True;`}
	re, err := req.CompileFilter()
	if err != nil {
		t.Fatalf("CompileFilter failed: %v", err)
	}
	if re == nil {
		t.Fatal("expected compiled expression")
	}

	none := Request{Command: "get", Resource: StringList{"node"}}
	re, err = none.CompileFilter()
	if err != nil {
		t.Fatalf("CompileFilter failed: %v", err)
	}
	if re != nil {
		t.Error("expected nil expression for empty filter")
	}
}
