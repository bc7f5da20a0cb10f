package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kubeact/pkg/action"
)

// parseRequest runs flag parsing the way a subcommand would and
// materializes the request.
func parseRequest(t *testing.T, args []string) *action.Request {
	t.Helper()

	flags := &requestFlags{}
	var req *action.Request
	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			req, err = flags.toRequest(cmd)
			return err
		},
	}
	flags.register(cmd)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return req
}

func writeActionFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "action.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write action file: %v", err)
	}
	return path
}

func TestToRequestFromFlags(t *testing.T) {
	req := parseRequest(t, []string{
		"--command", "create",
		"--resource", "secret", "--resource", "generic",
		"--name", "creds",
		"--keyvar", "--from-literal=a=b",
		"--ignore",
	})

	if req.Command != "create" {
		t.Errorf("Command = %q, want create", req.Command)
	}
	if len(req.Resource) != 2 || req.Resource[1] != "generic" {
		t.Errorf("Resource = %v, want [secret generic]", req.Resource)
	}
	if !req.Ignore {
		t.Error("Ignore must be set")
	}
}

func TestToRequestFlagsOverrideFile(t *testing.T) {
	path := writeActionFile(t, `
command: get
resource: node
namespace: kube-system
ignore: true
log_level: 4
`)

	req := parseRequest(t, []string{
		"--file", path,
		"--namespace", "monitoring",
		"--ignore=false",
		"--v", "0",
	})

	if req.Namespace != "monitoring" {
		t.Errorf("Namespace = %q, flag must override file", req.Namespace)
	}
	if req.Ignore {
		t.Error("explicit --ignore=false must revert a file-supplied true")
	}
	if req.LogLevel != 0 {
		t.Errorf("LogLevel = %d, explicit --v 0 must revert the file value", req.LogLevel)
	}
	if req.Command != "get" {
		t.Errorf("Command = %q, untouched file fields must survive", req.Command)
	}
}

func TestToRequestFileValuesSurviveUnsetFlags(t *testing.T) {
	path := writeActionFile(t, `
command: delete
resource: pod
name: web-0
force: true
`)

	req := parseRequest(t, []string{"--file", path})

	if !req.Force {
		t.Error("file-supplied force must survive when the flag is unset")
	}
	if req.Name != "web-0" {
		t.Errorf("Name = %q, want web-0", req.Name)
	}
}
