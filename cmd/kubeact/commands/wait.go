package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kubeact/pkg/poll"
)

func newWaitCommand() *cobra.Command {
	flags := &requestFlags{}
	var (
		retries        int
		delay          time.Duration
		minFacts       int
		untilUnchanged bool
	)

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Repeat an action until a condition holds",
		Long: `Repeat an identical action with a delay between attempts until a
condition on the result holds or the attempt budget is spent. The
underlying pipeline stays stateless; this command only re-invokes it.`,
		Example: `  # Wait for three ready nodes
  kubeact wait --command get --resource node \
      --keyvar '-o=jsonpath={range .items[*]}{.metadata.name}:Ready={.status.conditions[?(@.type=="Ready")].status};{end}' \
      --filter '(\S+):Ready=True;' \
      --min-facts 3 --retries 30 --delay 10s

  # Re-apply until converged
  kubeact wait --filename /manifests/ --until-unchanged --retries 5 --delay 5s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.toRequest(cmd)
			if err != nil {
				return err
			}

			conds := []poll.Condition{poll.Succeeded()}
			if minFacts > 0 {
				conds = append(conds, poll.MinFacts(minFacts))
			}
			if untilUnchanged {
				conds = append(conds, poll.Unchanged())
			}

			p, logger, cleanup, err := buildPipeline(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			result, attempts, err := poll.Until(cmd.Context(), p, req, poll.Options{
				Attempts: retries,
				Delay:    delay,
			}, poll.All(conds...))
			if err != nil {
				if result != nil {
					_ = printResult(result)
				}
				return err
			}

			logger.Info().Int("attempts", attempts).Msg("Condition satisfied")
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
	cmd.Flags().IntVar(&retries, "retries", 10, "maximum number of attempts")
	cmd.Flags().DurationVar(&delay, "delay", 5*time.Second, "delay between attempts")
	cmd.Flags().IntVar(&minFacts, "min-facts", 0, "wait until at least this many facts are extracted")
	cmd.Flags().BoolVar(&untilUnchanged, "until-unchanged", false, "wait until the action reports no change")
	return cmd
}
