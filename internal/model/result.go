package model

import "time"

// Tier is the qualitative band a score falls into
type Tier string

const (
	TierLow    Tier = "low"    // score < 5
	TierMedium Tier = "medium" // 5 <= score < 7
	TierHigh   Tier = "high"   // score >= 7
)

// Classification is a tier plus the fixed feedback shown with it
type Classification struct {
	Tier           Tier   `json:"tier" bson:"tier"`
	Icon           string `json:"icon" bson:"icon"`
	Message        string `json:"message" bson:"message"`
	Recommendation string `json:"recommendation" bson:"recommendation"`
}

// CategoryScore is the mean of one category's answers
type CategoryScore struct {
	CategoryID string  `json:"categoryId" bson:"categoryId"`
	Label      string  `json:"label" bson:"label"`
	Score      float64 `json:"score" bson:"score"`
}

// Result is the raw output of scoring a complete answer set
type Result struct {
	Categories []CategoryScore `json:"categories"`
	Overall    float64         `json:"overall"`
}

// ScoredCategory pairs a category score with its classification
type ScoredCategory struct {
	CategoryScore  `bson:",inline"`
	Classification Classification `json:"classification" bson:"classification"`
}

// OverallSummary is the overall score with its classification
type OverallSummary struct {
	Score          float64        `json:"score" bson:"score"`
	Classification Classification `json:"classification" bson:"classification"`
}

// Report is everything a presentation layer needs to render results
type Report struct {
	Categories []ScoredCategory `json:"categories" bson:"categories"`
	Overall    OverallSummary   `json:"overall" bson:"overall"`
}

// Assessment is a submitted, scored session as persisted in MongoDB
type Assessment struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	SessionID   string    `json:"sessionId" bson:"sessionId"`
	CatalogName string    `json:"catalogName" bson:"catalogName"`
	Answers     []Answer  `json:"answers" bson:"answers"`
	Report      Report    `json:"report" bson:"report"`
	StartedAt   time.Time `json:"startedAt" bson:"startedAt"`
	CompletedAt time.Time `json:"completedAt" bson:"completedAt"`
}

// TierStats is the distribution of overall scores across submitted assessments
type TierStats struct {
	Total  int64 `json:"total"`
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}
