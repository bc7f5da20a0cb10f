// Package commands implements the kubeact CLI.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel       string
	logFormat      string
	jsonOutput     bool
	signaturesPath string
	journalPath    string
	metricsListen  string
)

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kubeact",
		Short: "kubeact - declarative kubectl front-end",
		Long: `kubeact translates a declarative action description into a kubectl
invocation, executes it, and reduces the output into extracted facts
plus an idempotent changed/unchanged/failed verdict.

Features:
  - Structured action requests (flags or YAML files)
  - Regex-driven fact extraction from stdout
  - Idempotency classification with a configurable no-op signature table
  - Desired-state semantics (present, absent, latest)
  - Convergence polling with bounded retries
  - Optional SQLite invocation journal`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results in JSON format")
	rootCmd.PersistentFlags().StringVar(&signaturesPath, "signatures", "", "no-op signature table file (YAML), overrides the builtin table")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "SQLite file recording every invocation")
	rootCmd.PersistentFlags().StringVar(&metricsListen, "metrics-listen", "", "expose Prometheus metrics on this address")

	// Add subcommands
	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newEnsureCommand())
	rootCmd.AddCommand(newWaitCommand())
	rootCmd.AddCommand(newHistoryCommand())

	return rootCmd
}
