package site

import (
	stdErrors "errors"
	"fmt"
	"time"

	"git.home.luguber.info/inful/styleguide/internal/metrics"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// TemplateInfo records where a theme part was loaded from.
type TemplateInfo struct {
	Source string `json:"source"` // embedded | file
	Path   string `json:"path,omitempty"`
}

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int
	Warning  int
	Fatal    int
	Canceled int
}

// Report captures what one build did.
type Report struct {
	BuildID         string
	Start           time.Time
	End             time.Time
	Files           int
	Blocks          int
	Pages           int // item pages written, index excluded
	Assets          int
	Errors          []error
	Warnings        []error
	StageDurations  map[string]time.Duration
	StageCounts     map[StageName]StageCount
	Templates       map[string]TemplateInfo
	BrokenLinks     int
	ManifestPath    string
	ConfigHash      string
	Outcome         BuildOutcome
	PreviousBuildID string // from the manifest this build replaced, if any
	ContentChanged  bool   // page content differs from the previous manifest
}

func newReport(buildID string) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          time.Now(),
		StageDurations: make(map[string]time.Duration),
		StageCounts:    make(map[StageName]StageCount),
		Templates:      make(map[string]TemplateInfo),
	}
}

// addStageError mirrors a stage error into Errors or Warnings.
func (r *Report) addStageError(se *StageError) {
	if se.Kind == StageErrorWarning {
		r.Warnings = append(r.Warnings, se)
		return
	}
	r.Errors = append(r.Errors, se)
}

// recordStageResult updates counters and emits metrics.
func (r *Report) recordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	sc := r.StageCounts[stage]
	switch res {
	case StageResultSuccess:
		sc.Success++
		recorder.IncStageResult(string(stage), metrics.ResultSuccess)
	case StageResultWarning:
		sc.Warning++
		recorder.IncStageResult(string(stage), metrics.ResultWarning)
	case StageResultFatal:
		sc.Fatal++
		recorder.IncStageResult(string(stage), metrics.ResultFatal)
	case StageResultCanceled:
		sc.Canceled++
		recorder.IncStageResult(string(stage), metrics.ResultCanceled)
	}
	r.StageCounts[stage] = sc
}

// Finish sets the end time of the report.
func (r *Report) Finish() { r.End = time.Now() }

// Duration returns the wall time of the build.
func (r *Report) Duration() time.Duration { return r.End.Sub(r.Start) }

// DeriveOutcome sets Outcome from the recorded errors and warnings.
func (r *Report) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if stdErrors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("files=%d blocks=%d pages=%d assets=%d duration=%s errors=%d warnings=%d broken_links=%d outcome=%s",
		r.Files, r.Blocks, r.Pages, r.Assets, r.Duration().Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), r.BrokenLinks, string(r.Outcome))
}

func outcomeLabel(o BuildOutcome) metrics.BuildOutcomeLabel {
	switch o {
	case OutcomeSuccess:
		return metrics.BuildOutcomeSuccess
	case OutcomeWarning:
		return metrics.BuildOutcomeWarning
	case OutcomeCanceled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}
