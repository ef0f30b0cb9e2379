package services

import (
	"errors"
	"fmt"

	"wiki-summary/repositories"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("summary not found")
	// ErrNoContent means the page was fetched but no article text could be extracted.
	ErrNoContent = errors.New("no extractable content")
	// ErrEmptySummary is returned when the model answered with blank text. Nothing is stored.
	ErrEmptySummary = errors.New("model returned an empty summary")
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageFetch     Stage = "fetch"
	StageExtract   Stage = "extract"
	StageSummarize Stage = "summarize"
	StageStore     Stage = "store"
)

// StageError wraps a pipeline failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Retriable reports whether the same request may succeed later.
// 추출 실패와 저장 충돌 외의 일시적 장애만 해당한다.
func (e *StageError) Retriable() bool {
	switch e.Stage {
	case StageFetch, StageSummarize:
		return true
	case StageStore:
		return errors.Is(e.Err, repositories.ErrStorageUnavailable)
	default:
		return false
	}
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
