package app

import "fmt"

// Stage names a pipeline step.
type Stage string

const (
	StageConfig  Stage = "config"
	StageParse   Stage = "parse"
	StageScore   Stage = "score"
	StagePresent Stage = "present"
	StageGPX     Stage = "gpx"
	StageUpload  Stage = "upload"
	StageSave    Stage = "save"
)

// StageError records which pipeline step failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func fail(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
