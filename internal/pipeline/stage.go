package pipeline

import (
	"errors"
	"fmt"
	"time"
)

// Stage is a state of the conversion state machine
type Stage int

const (
	StageExtracting Stage = iota
	StageStructuring
	StageAwaitingRendering
	StageAssembling
	StageDone
	StageFailed
)

var stageNames = map[Stage]string{
	StageExtracting:        "extracting",
	StageStructuring:       "structuring",
	StageAwaitingRendering: "awaiting external rendering",
	StageAssembling:        "assembling",
	StageDone:              "done",
	StageFailed:            "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

var (
	ErrNoSections = errors.New("no text sections extracted")
	ErrNoSlides   = errors.New("no section produced slide content")
)

// StageError ties a fatal cause to the stage it aborted
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage.String() + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Result summarizes a run. State is StageDone or StageFailed; FailedAt is only set for the latter.
type Result struct {
	State    Stage
	FailedAt Stage

	DeckPath  string
	VideoPath string

	Sections     int
	Slides       int
	SilentSlides int
	VideoSeconds float64
	Elapsed      time.Duration
}

func (r Result) String() string {
	if r.State == StageFailed {
		return fmt.Sprintf("failed(%s)", r.FailedAt)
	}
	return r.State.String()
}
