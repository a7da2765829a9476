// Package scoring turns a complete answer set into category scores, an
// overall score and their classifications.
//
// Every function here is pure: no I/O, no shared state, safe to call
// concurrently from any number of sessions.
package scoring

import (
	"fmt"
	"wellcheck/internal/model"
)

// ScoreCategory averages the answers recorded for every question of cat.
// No rounding is applied; formatting is left to the caller.
func ScoreCategory(cat model.Category, answers model.AnswerSet) (model.CategoryScore, error) {
	if len(cat.Questions) == 0 {
		return model.CategoryScore{}, fmt.Errorf("category %q: %w", cat.ID, ErrEmptyCategory)
	}

	sum := 0
	for i := range cat.Questions {
		key := model.AnswerKey{CategoryID: cat.ID, Index: i}
		v, ok := answers.Get(key)
		if !ok {
			return model.CategoryScore{}, &AnswerError{Err: ErrMissingAnswer, Key: key}
		}
		if !model.InRange(v) {
			return model.CategoryScore{}, &AnswerError{Err: ErrOutOfRange, Key: key, Value: v}
		}
		sum += v
	}

	return model.CategoryScore{
		CategoryID: cat.ID,
		Label:      cat.Label,
		Score:      float64(sum) / float64(len(cat.Questions)),
	}, nil
}

// ScoreAll scores every category in catalog order. The overall score is the
// unweighted mean of the category means, so a category's weight does not
// depend on how many questions it has. The first failure aborts scoring.
func ScoreAll(catalog model.Catalog, answers model.AnswerSet) (*model.Result, error) {
	if len(catalog.Categories) == 0 {
		return nil, ErrEmptyCatalog
	}

	scores := make([]model.CategoryScore, 0, len(catalog.Categories))
	total := 0.0
	for _, cat := range catalog.Categories {
		cs, err := ScoreCategory(cat, answers)
		if err != nil {
			return nil, err
		}
		scores = append(scores, cs)
		total += cs.Score
	}

	return &model.Result{
		Categories: scores,
		Overall:    total / float64(len(scores)),
	}, nil
}

// Evaluate scores and classifies a complete answer set, producing the
// ordered per-category tuples and the overall tuple for display.
func Evaluate(catalog model.Catalog, answers model.AnswerSet) (*model.Report, error) {
	res, err := ScoreAll(catalog, answers)
	if err != nil {
		return nil, err
	}

	report := &model.Report{Categories: make([]model.ScoredCategory, 0, len(res.Categories))}
	for _, cs := range res.Categories {
		cl, err := Classify(cs.Score)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cs.CategoryID, err)
		}
		report.Categories = append(report.Categories, model.ScoredCategory{CategoryScore: cs, Classification: cl})
	}

	cl, err := Classify(res.Overall)
	if err != nil {
		return nil, fmt.Errorf("overall: %w", err)
	}
	report.Overall = model.OverallSummary{Score: res.Overall, Classification: cl}
	return report, nil
}
