// Package pipeline wires the four stages of a kubeact invocation:
// build the argument vector, run the subprocess, reduce stdout into
// facts, classify the outcome. The pipeline itself is stateless; every
// Execute call is an independent, single-shot unit that a convergence
// loop can repeat safely.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/piwi3910/kubeact/pkg/action"
	"github.com/piwi3910/kubeact/pkg/classify"
	"github.com/piwi3910/kubeact/pkg/kubectl"
	"github.com/piwi3910/kubeact/pkg/reduce"
	"github.com/piwi3910/kubeact/pkg/telemetry"
)

// Record is one invocation's journal entry.
type Record struct {
	Argv     []string
	RC       int
	Changed  bool
	Failed   bool
	Facts    int
	Duration time.Duration
}

// Recorder receives a journal entry after each invocation. Recording is
// diagnostics only: failures are logged, never propagated, and nothing
// recorded ever feeds back into classification.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Pipeline executes action requests end to end.
type Pipeline struct {
	runner     *kubectl.Runner
	classifier *classify.Classifier
	logger     zerolog.Logger
	metrics    *telemetry.Metrics
	recorder   Recorder
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClassifier overrides the classifier (and thereby the signature
// table).
func WithClassifier(c *classify.Classifier) Option {
	return func(p *Pipeline) { p.classifier = c }
}

// WithLogger sets the pipeline logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithRecorder sets the invocation journal.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// New creates a pipeline with the builtin signature table, a nop
// logger, and disabled metrics unless options override them.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		runner:     kubectl.NewRunner(),
		classifier: classify.New(nil),
		logger:     zerolog.Nop(),
		metrics:    telemetry.NewMetrics(telemetry.MetricsConfig{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute runs a single request through the pipeline and returns its
// classified result.
//
// Only two conditions surface as errors: an invalid request and a
// process that could not be launched (or was forcibly terminated). A
// subprocess that ran to completion always yields a result, with
// Failed carrying the verdict; callers inspect Changed/Failed rather
// than the error. There is no internal retry and no internal timeout.
func (p *Pipeline) Execute(ctx context.Context, req *action.Request) (*action.Result, error) {
	argv, err := kubectl.Build(req)
	if err != nil {
		return nil, err
	}

	filter, err := req.CompileFilter()
	if err != nil {
		return nil, err
	}

	verb := req.Command
	if req.Filename != "" {
		verb = "apply"
	}

	p.logger.Debug().Strs("argv", argv).Msg("Executing kubectl")

	start := time.Now()
	exec, err := p.runner.Run(ctx, argv)
	duration := time.Since(start)
	if err != nil {
		p.metrics.RecordSpawnError()
		p.logger.Error().Err(err).Strs("argv", argv).Msg("Failed to launch kubectl")
		return nil, err
	}

	facts := reduce.Reduce(exec.Stdout, filter)
	result := p.classifier.Classify(req, exec, facts)

	verdict := "unchanged"
	switch {
	case result.Failed:
		verdict = "failed"
	case result.Changed:
		verdict = "changed"
	}

	p.metrics.RecordInvocation(verb, verdict, duration, len(result.Facts))
	p.logger.Info().
		Str("verb", verb).
		Str("verdict", verdict).
		Int("rc", result.RC).
		Int("facts", len(result.Facts)).
		Dur("duration", duration).
		Msg("Invocation classified")

	if p.recorder != nil {
		rec := Record{
			Argv:     argv,
			RC:       result.RC,
			Changed:  result.Changed,
			Failed:   result.Failed,
			Facts:    len(result.Facts),
			Duration: duration,
		}
		if err := p.recorder.Record(ctx, rec); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to record invocation")
		}
	}

	return result, nil
}
