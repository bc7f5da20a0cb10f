package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/kubeact/pkg/action"
)

// requestFlags binds the action.Request fields to cobra flags so every
// action-taking subcommand exposes the same surface.
type requestFlags struct {
	file string

	kubectlPath string
	command     string
	resource    []string
	name        string
	namespace   string
	filename    string
	keyvars     []string
	label       string
	server      string
	kubeconfig  string
	ignore      bool
	overwrite   bool
	force       bool
	all         bool
	logVerbose  int
	filter      string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "file", "", "load the action request from a YAML file")
	cmd.Flags().StringVar(&f.kubectlPath, "kubectl", "", "kubectl binary (default resolved on PATH)")
	cmd.Flags().StringVar(&f.command, "command", "", "kubectl verb (get, create, apply, delete, label, describe, ...)")
	cmd.Flags().StringArrayVar(&f.resource, "resource", nil, "resource type token, repeatable and order-preserving")
	cmd.Flags().StringVar(&f.name, "name", "", "target object name")
	cmd.Flags().StringVar(&f.namespace, "namespace", "", "target namespace")
	cmd.Flags().StringVar(&f.filename, "filename", "", "manifest file or directory, forces apply mode")
	cmd.Flags().StringArrayVar(&f.keyvars, "keyvar", nil, "trailing argv token, repeatable, appended verbatim")
	cmd.Flags().StringVar(&f.label, "label", "", "label selector")
	cmd.Flags().StringVar(&f.server, "server", "", "API server URL")
	cmd.Flags().StringVar(&f.kubeconfig, "kubeconfig", "", "kubeconfig path")
	cmd.Flags().BoolVar(&f.ignore, "ignore", false, "ignore not-found errors")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "overwrite existing values")
	cmd.Flags().BoolVar(&f.force, "force", false, "force the operation")
	cmd.Flags().BoolVar(&f.all, "all", false, "operate on all objects")
	cmd.Flags().IntVar(&f.logVerbose, "v", 0, "kubectl verbosity level")
	cmd.Flags().StringVar(&f.filter, "filter", "", "regular expression reducing stdout into facts")
}

// toRequest materializes the request, reading the YAML file first when
// one was given so explicit flags can override its fields. Boolean and
// numeric flags override only when set on the command line, so
// --ignore=false can revert a file-supplied true.
func (f *requestFlags) toRequest(cmd *cobra.Command) (*action.Request, error) {
	req := &action.Request{}

	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read action file: %w", err)
		}
		if err := yaml.Unmarshal(data, req); err != nil {
			return nil, fmt.Errorf("failed to parse action file: %w", err)
		}
	}

	if f.kubectlPath != "" {
		req.KubectlPath = f.kubectlPath
	}
	if f.command != "" {
		req.Command = f.command
	}
	if len(f.resource) > 0 {
		req.Resource = action.StringList(f.resource)
	}
	if f.name != "" {
		req.Name = f.name
	}
	if f.namespace != "" {
		req.Namespace = f.namespace
	}
	if f.filename != "" {
		req.Filename = f.filename
	}
	if len(f.keyvars) > 0 {
		req.KeyVars = action.StringList(f.keyvars)
	}
	if f.label != "" {
		req.Label = f.label
	}
	if f.server != "" {
		req.Server = f.server
	}
	if f.kubeconfig != "" {
		req.Kubeconfig = f.kubeconfig
	}
	if cmd.Flags().Changed("ignore") {
		req.Ignore = f.ignore
	}
	if cmd.Flags().Changed("overwrite") {
		req.Overwrite = f.overwrite
	}
	if cmd.Flags().Changed("force") {
		req.Force = f.force
	}
	if cmd.Flags().Changed("all") {
		req.All = f.all
	}
	if cmd.Flags().Changed("v") {
		req.LogLevel = f.logVerbose
	}
	if f.filter != "" {
		req.Filter = f.filter
	}

	return req, nil
}
