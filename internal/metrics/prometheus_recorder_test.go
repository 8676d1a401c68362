package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gatherByName(t *testing.T, pr *PrometheusRecorder) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := pr.Registry().Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPrometheusRecorder(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.ObserveStageDuration("write_output", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("write_output", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.SetSourceFiles(3)
	pr.AddBlocks(4)
	pr.IncPagesWritten()
	pr.IncPagesWritten()

	mfs := gatherByName(t, pr)
	require.Contains(t, mfs, "styleguide_stage_duration_seconds")
	require.Contains(t, mfs, "styleguide_build_outcomes_total")
	require.InDelta(t, 3, mfs["styleguide_source_files"].GetMetric()[0].GetGauge().GetValue(), 0)
	require.InDelta(t, 4, mfs["styleguide_blocks_extracted_total"].GetMetric()[0].GetCounter().GetValue(), 0)
	require.InDelta(t, 2, mfs["styleguide_pages_written_total"].GetMetric()[0].GetCounter().GetValue(), 0)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.AddBlocks(2)

	path := filepath.Join(t.TempDir(), "styleguide.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "styleguide_blocks_extracted_total 2")
}

func TestPrometheusRecorder_WriteTextfileError(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	err := pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
}
