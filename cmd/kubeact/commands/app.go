package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/piwi3910/kubeact/pkg/action"
	"github.com/piwi3910/kubeact/pkg/classify"
	"github.com/piwi3910/kubeact/pkg/history"
	"github.com/piwi3910/kubeact/pkg/pipeline"
	"github.com/piwi3910/kubeact/pkg/telemetry"
)

// buildPipeline assembles the pipeline from the global flags. The
// returned cleanup closes the journal store when one was attached.
func buildPipeline(ctx context.Context) (*pipeline.Pipeline, zerolog.Logger, func(), error) {
	logger, err := telemetry.NewLogger(telemetry.LoggingConfig{
		Level:  logLevel,
		Format: logFormat,
		Output: "stderr",
	})
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	classifier := classify.New(nil)
	if signaturesPath != "" {
		table, err := classify.NewLoader(logger).Load(signaturesPath)
		if err != nil {
			return nil, logger, nil, err
		}
		classifier.SetTable(table)
	}

	metricsCfg := telemetry.DefaultMetricsConfig()
	if metricsListen != "" {
		metricsCfg.Enabled = true
		metricsCfg.ListenAddress = metricsListen
	}
	metrics := telemetry.NewMetrics(metricsCfg)
	metrics.StartMetricsServer(ctx, func(err error) {
		logger.Error().Err(err).Msg("Metrics server error")
	})

	opts := []pipeline.Option{
		pipeline.WithClassifier(classifier),
		pipeline.WithLogger(logger.With().Str("component", "pipeline").Logger()),
		pipeline.WithMetrics(metrics),
	}

	cleanup := func() {}
	if journalPath != "" {
		store, err := history.NewStore(journalPath)
		if err != nil {
			return nil, logger, nil, err
		}
		if err := store.Init(ctx); err != nil {
			return nil, logger, nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, logger, nil, err
		}
		opts = append(opts, pipeline.WithRecorder(store))
		cleanup = func() { _ = store.Close() }
	}

	return pipeline.New(opts...), logger, cleanup, nil
}

// printResult writes the result to stdout, as JSON or a console
// summary depending on the global flag.
func printResult(result *action.Result) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("changed=%v failed=%v rc=%d facts=%d\n", result.Changed, result.Failed, result.RC, len(result.Facts))
	for _, fact := range result.Facts {
		fmt.Printf("  %s\n", fact)
	}
	if result.Msg != "" {
		fmt.Println(result.Msg)
	}
	if result.Failed && result.Stderr != "" {
		fmt.Fprintln(os.Stderr, result.Stderr)
	}
	return nil
}
