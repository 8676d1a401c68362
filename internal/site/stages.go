package site

import (
	"context"
	stdErrors "errors"
	"fmt"

	"git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageDiscoverSources StageName = "discover_sources"
	StageExtractBlocks   StageName = "extract_blocks"
	StageBuildTree       StageName = "build_tree"
	StagePrepareOutput   StageName = "prepare_output"
	StageWriteOutput     StageName = "write_output"
	StagePostProcess     StageName = "post_process"
)

// Stage is a discrete unit of work in the build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageDef pairs a stage name with its implementation.
type StageDef struct {
	Name StageName
	Fn   Stage
}

func defaultStages() []StageDef {
	return []StageDef{
		{StageDiscoverSources, stageDiscoverSources},
		{StageExtractBlocks, stageExtractBlocks},
		{StageBuildTree, stageBuildTree},
		{StagePrepareOutput, stagePrepareOutput},
		{StageWriteOutput, stageWriteOutput},
		{StagePostProcess, stagePostProcess},
	}
}

// StageErrorKind classifies the outcome of a stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a stage failure carrying its kind and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

func newWarnStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorWarning, Stage: stage, Err: err}
}

func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// StageResult is the classified result of one stage execution.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultWarning  StageResult = "warning"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

// classifyStageError converts a raw stage error into a StageError. Plain errors are
// fatal unless they are context errors or classified with a non-fatal severity.
func classifyStageError(stage StageName, err error) *StageError {
	var se *StageError
	if stdErrors.As(err, &se) {
		return se
	}
	if stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) {
		return newCanceledStageError(stage, err)
	}
	if errors.GetSeverity(err) == errors.SeverityWarning {
		return newWarnStageError(stage, err)
	}
	return newFatalStageError(stage, err)
}

func resultFromKind(k StageErrorKind) StageResult {
	switch k {
	case StageErrorWarning:
		return StageResultWarning
	case StageErrorCanceled:
		return StageResultCanceled
	default:
		return StageResultFatal
	}
}
