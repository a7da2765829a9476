package scoring

import (
	"errors"
	"fmt"
	"wellcheck/internal/model"
)

var (
	ErrMissingAnswer   = errors.New("missing answer")
	ErrOutOfRange      = errors.New("answer out of range")
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrEmptyCatalog    = errors.New("catalog has no categories")
	ErrEmptyCategory   = errors.New("category has no questions")
)

// AnswerError identifies the question that made scoring fail. It unwraps
// to ErrMissingAnswer or ErrOutOfRange.
type AnswerError struct {
	Err   error
	Key   model.AnswerKey
	Value int // recorded value, only meaningful for ErrOutOfRange
}

func (e *AnswerError) Error() string {
	if errors.Is(e.Err, ErrOutOfRange) {
		return fmt.Sprintf("%s: category %q question %d has value %d, want %d-%d",
			e.Err, e.Key.CategoryID, e.Key.Index, e.Value, model.MinScore, model.MaxScore)
	}
	return fmt.Sprintf("%s: category %q question %d", e.Err, e.Key.CategoryID, e.Key.Index)
}

func (e *AnswerError) Unwrap() error { return e.Err }

// ScoreError reports a derived score outside the answer scale
type ScoreError struct {
	Score float64
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("%s: %v", ErrScoreOutOfRange, e.Score)
}

func (e *ScoreError) Unwrap() error { return ErrScoreOutOfRange }
