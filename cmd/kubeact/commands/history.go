package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/kubeact/pkg/history"
)

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded invocations",
		Long: `List the most recent invocations from the journal, newest first.
Requires --journal pointing at the SQLite file previous runs wrote to.`,
		Example: `  kubeact history --journal kubeact.db --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if journalPath == "" {
				return fmt.Errorf("--journal is required for history")
			}

			store, err := history.NewStore(journalPath)
			if err != nil {
				return err
			}
			if err := store.Init(cmd.Context()); err != nil {
				return err
			}
			defer store.Close()
			if err := store.Migrate(cmd.Context()); err != nil {
				return err
			}

			invocations, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(invocations)
			}

			for _, inv := range invocations {
				verdict := "unchanged"
				switch {
				case inv.Failed:
					verdict = "failed"
				case inv.Changed:
					verdict = "changed"
				}
				fmt.Printf("%s  %-9s rc=%d facts=%d %s  %s\n",
					inv.CreatedAt.Format("2006-01-02 15:04:05"),
					verdict,
					inv.RC,
					inv.Facts,
					inv.Duration,
					strings.Join(inv.Argv, " "),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of rows")
	return cmd
}
