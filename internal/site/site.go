package site

import (
	"context"
	"io/fs"
	"log/slog"

	"git.home.luguber.info/inful/styleguide/internal/config"
	"git.home.luguber.info/inful/styleguide/internal/extract"
	"git.home.luguber.info/inful/styleguide/internal/foundation/errors"
	"git.home.luguber.info/inful/styleguide/internal/logfields"
	"git.home.luguber.info/inful/styleguide/internal/manifest"
	"git.home.luguber.info/inful/styleguide/internal/metrics"
)

type options struct {
	onComplete func(*Report)
	recorder   metrics.Recorder
	logger     *slog.Logger
	theme      fs.FS
}

// Option customises a Run.
type Option func(*options)

// WithOnComplete registers a callback invoked once after every output has been
// written. It is not called when the build fails.
func WithOnComplete(fn func(*Report)) Option {
	return func(o *options) { o.onComplete = fn }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTheme replaces the embedded default theme. Directories configured under
// templates still take precedence.
func WithTheme(fsys fs.FS) Option {
	return func(o *options) { o.theme = fsys }
}

type textfileWriter interface {
	WriteTextfile(path string) error
}

// Run builds the styleguide described by cfg. The returned report is non-nil
// whenever cfg is valid, including on failure.
func Run(ctx context.Context, cfg *config.Config, opts ...Option) (*Report, error) {
	if cfg == nil {
		return nil, errors.ConfigError("configuration is required").Build()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.recorder == nil {
		if cfg.MetricsFile != "" {
			o.recorder = metrics.NewPrometheusRecorder(nil)
		} else {
			o.recorder = metrics.NoopRecorder{}
		}
	}

	report := newReport(manifest.NewBuildID())
	if hash, err := manifest.HashValue(cfg); err == nil {
		report.ConfigHash = hash
	}

	bs := &BuildState{
		Config:   cfg,
		Mode:     extract.ModeFor(cfg.Capture),
		Report:   report,
		logger:   o.logger.With(logfields.BuildID(report.BuildID)),
		recorder: o.recorder,
		opts:     o,
	}

	bs.logger.Info("Building styleguide", logfields.Output(cfg.Output), slog.String("mode", bs.Mode.String()))
	runErr := runStages(ctx, bs, defaultStages())

	report.Finish()
	report.DeriveOutcome()
	o.recorder.ObserveBuildDuration(report.Duration())
	o.recorder.IncBuildOutcome(outcomeLabel(report.Outcome))

	if cfg.MetricsFile != "" {
		if tw, ok := o.recorder.(textfileWriter); ok {
			if err := tw.WriteTextfile(cfg.MetricsFile); err != nil {
				bs.logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.MetricsFile), logfields.Error(err))
			}
		}
	}

	if runErr != nil {
		bs.logger.Error("Build failed", slog.String("summary", report.Summary()), logfields.Error(runErr))
		return report, unwrapStageError(runErr)
	}

	bs.logger.Info("Build complete", slog.String("summary", report.Summary()))
	if o.onComplete != nil {
		o.onComplete(report)
	}
	return report, nil
}

// unwrapStageError returns the classified cause of a stage error so callers can
// map it to an exit code. Cancellations become canceled errors.
func unwrapStageError(err error) error {
	se, ok := err.(*StageError)
	if !ok {
		return err
	}
	if se.Kind == StageErrorCanceled {
		return errors.WrapError(se.Err, errors.CategoryCanceled, "build canceled").
			WithContext("stage", string(se.Stage)).
			Build()
	}
	if ce, ok := errors.AsClassified(se.Err); ok {
		return ce.WithContext("stage", string(se.Stage))
	}
	return errors.WrapError(se.Err, errors.CategoryBuild, "build stage failed").
		WithContext("stage", string(se.Stage)).
		Build()
}
