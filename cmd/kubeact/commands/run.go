package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	flags := &requestFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one action",
		Long: `Execute a single action: build the kubectl argument vector, run it,
reduce stdout into facts, and classify the outcome.

The command exits non-zero when the action is classified as failed.`,
		Example: `  # Apply a manifest directory
  kubeact run --filename /manifests/kube-dns/

  # Create a generic secret with trailing key=value flags
  kubeact run --command create --resource secret --resource generic \
      --name registry-creds --keyvar --from-literal=user=admin

  # Extract ready node names
  kubeact run --command get --resource node \
      --keyvar '-o=jsonpath={range .items[*]}{.metadata.name}:Ready={.status.conditions[?(@.type=="Ready")].status};{end}' \
      --filter '(\S+):Ready=True;'

  # Run a request described in YAML
  kubeact run --file action.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.toRequest(cmd)
			if err != nil {
				return err
			}

			p, _, cleanup, err := buildPipeline(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := p.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			if err := printResult(result); err != nil {
				return err
			}
			if result.Failed {
				return fmt.Errorf("action failed (rc=%d)", result.RC)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
