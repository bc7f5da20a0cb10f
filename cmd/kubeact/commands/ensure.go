package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kubeact/pkg/ensure"
)

func newEnsureCommand() *cobra.Command {
	flags := &requestFlags{}
	var state string

	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Drive a resource toward a desired state",
		Long: `Drive a resource toward a desired state.

States:
  present  create the resource unless an exists probe finds it
  absent   delete the resource only when it exists
  latest   apply with overwrite, no probe`,
		Example: `  # Make sure a replication controller exists
  kubeact ensure --state present --resource rc --name nginx

  # Remove it again
  kubeact ensure --state absent --resource rc --name nginx

  # Converge a manifest to its latest definition
  kubeact ensure --state latest --filename /tmp/nginx.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			desired, err := ensure.ParseState(state)
			if err != nil {
				return err
			}

			req, err := flags.toRequest(cmd)
			if err != nil {
				return err
			}

			p, _, cleanup, err := buildPipeline(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := ensure.Apply(cmd.Context(), p, req, desired)
			if err != nil {
				return err
			}

			if err := printResult(result); err != nil {
				return err
			}
			if result.Failed {
				return fmt.Errorf("ensure failed (rc=%d)", result.RC)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&state, "state", "present", "desired state (present, absent, latest)")
	return cmd
}
