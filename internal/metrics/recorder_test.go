package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("build_tree", time.Millisecond)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("build_tree", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.SetSourceFiles(1)
	r.AddBlocks(1)
	r.IncPagesWritten()
}

var _ Recorder = (*PrometheusRecorder)(nil)
