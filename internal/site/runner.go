package site

import (
	"context"
	"time"

	"git.home.luguber.info/inful/styleguide/internal/logfields"
)

// runStages executes stages in order, recording timing and stopping on the first
// fatal or canceled stage.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.Name, ctx.Err())
			bs.Report.addStageError(se)
			bs.Report.recordStageResult(st.Name, StageResultCanceled, bs.recorder)
			return se
		default:
		}

		bs.logger.Debug("Stage started", logfields.Stage(string(st.Name)))
		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[string(st.Name)] = dur
		bs.recorder.ObserveStageDuration(string(st.Name), dur)

		if err == nil {
			bs.Report.recordStageResult(st.Name, StageResultSuccess, bs.recorder)
			bs.logger.Debug("Stage complete", logfields.Stage(string(st.Name)), logfields.Duration(dur))
			continue
		}

		se := classifyStageError(st.Name, err)
		bs.Report.addStageError(se)
		bs.Report.recordStageResult(st.Name, resultFromKind(se.Kind), bs.recorder)

		if se.Kind == StageErrorWarning {
			bs.logger.Warn("Stage completed with warnings",
				logfields.Stage(string(st.Name)),
				logfields.Duration(dur),
				logfields.Error(se.Err))
			continue
		}
		return se
	}
	return nil
}
