package action

import (
	"encoding/json"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestStringListUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{
			name:  "scalar becomes single element",
			input: `resource: rc`,
			want:  StringList{"rc"},
		},
		{
			name:  "sequence preserves order",
			input: "resource:\n  - secret\n  - generic",
			want:  StringList{"secret", "generic"},
		},
		{
			name:  "scalar with embedded whitespace stays one token",
			input: `resource: "--cert=a --key=b"`,
			want:  StringList{"--cert=a --key=b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				Resource StringList `yaml:"resource"`
			}
			if err := yaml.Unmarshal([]byte(tt.input), &doc); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(doc.Resource, tt.want) {
				t.Errorf("got %v, want %v", doc.Resource, tt.want)
			}
		})
	}
}

func TestStringListUnmarshalYAMLRejectsMapping(t *testing.T) {
	var doc struct {
		Resource StringList `yaml:"resource"`
	}
	err := yaml.Unmarshal([]byte("resource:\n  key: value"), &doc)
	if err == nil {
		t.Fatal("expected error for mapping node")
	}
}

func TestStringListUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{
			name:  "string",
			input: `{"keyvars": "--from-literal=a=b"}`,
			want:  StringList{"--from-literal=a=b"},
		},
		{
			name:  "array",
			input: `{"keyvars": ["--cert=a", "--key=b"]}`,
			want:  StringList{"--cert=a", "--key=b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				KeyVars StringList `json:"keyvars"`
			}
			if err := json.Unmarshal([]byte(tt.input), &doc); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(doc.KeyVars, tt.want) {
				t.Errorf("got %v, want %v", doc.KeyVars, tt.want)
			}
		})
	}
}

func TestRequestUnmarshalYAML(t *testing.T) {
	input := `
command: get
resource: node
namespace: kube-system
label: tier=control-plane
filter: '(\S+):Ready=True;'
`
	var req Request
	if err := yaml.Unmarshal([]byte(input), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if req.Command != "get" {
		t.Errorf("command = %q, want get", req.Command)
	}
	if !reflect.DeepEqual(req.Resource, StringList{"node"}) {
		t.Errorf("resource = %v, want [node]", req.Resource)
	}
	if req.Namespace != "kube-system" {
		t.Errorf("namespace = %q", req.Namespace)
	}
	if req.Filter != `(\S+):Ready=True;` {
		t.Errorf("filter = %q", req.Filter)
	}
}
