package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

const namespace = "styleguide"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	sourceFiles   prom.Gauge
	blocks        prom.Counter
	pages         prom.Counter
}

// NewPrometheusRecorder constructs the collectors and registers them on reg. A nil
// reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		sourceFiles: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "source_files",
			Help:      "Source files scanned by the last build",
		}),
		blocks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_extracted_total",
			Help:      "Documentation blocks parsed from sources",
		}),
		pages: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "HTML pages written, index included",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.sourceFiles, pr.blocks, pr.pages)
	return pr
}

// Registry returns the registry the collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetSourceFiles(n int) { p.sourceFiles.Set(float64(n)) }
func (p *PrometheusRecorder) AddBlocks(n int)      { p.blocks.Add(float64(n)) }
func (p *PrometheusRecorder) IncPagesWritten()     { p.pages.Inc() }

// WriteTextfile writes the registry to path in the node-exporter textfile format.
// The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write metrics textfile").
			WithContext("path", path).
			Build()
	}
	return nil
}
