package scoring

import (
	"math"
	"wellcheck/internal/model"
)

// Tier thresholds; a score equal to a threshold belongs to the higher tier
const (
	MediumThreshold = 5.0
	HighThreshold   = 7.0
)

var classifications = map[model.Tier]model.Classification{
	model.TierLow: {
		Tier:           model.TierLow,
		Icon:           "❌",
		Message:        "Needs focus and care.",
		Recommendation: "Consider focusing on this area. Explore support, learning, or coaching.",
	},
	model.TierMedium: {
		Tier:           model.TierMedium,
		Icon:           "⚠️",
		Message:        "Doing okay, room for growth!",
		Recommendation: "Good foundation! Keep building strength and exploring new ways to grow.",
	},
	model.TierHigh: {
		Tier:           model.TierHigh,
		Icon:           "✅",
		Message:        "Great job! You're thriving.",
		Recommendation: "Excellent! You’re thriving here. Keep shining! ✨",
	},
}

// TierOf maps a score to its tier without range checking
func TierOf(score float64) model.Tier {
	switch {
	case score < MediumThreshold:
		return model.TierLow
	case score < HighThreshold:
		return model.TierMedium
	default:
		return model.TierHigh
	}
}

// Classify returns the tier and feedback for a category or overall score.
// Scores outside [1,10] mean an upstream invariant was broken.
func Classify(score float64) (model.Classification, error) {
	if math.IsNaN(score) || score < model.MinScore || score > model.MaxScore {
		return model.Classification{}, &ScoreError{Score: score}
	}
	return classifications[TierOf(score)], nil
}
