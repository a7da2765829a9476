package model

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionSubmitted SessionStatus = "submitted"
)

// Session is one respondent's in-progress assessment, held in Redis
type Session struct {
	ID          string        `json:"id"`
	CatalogName string        `json:"catalogName"`
	Status      SessionStatus `json:"status"`
	Answers     AnswerSet     `json:"answers"`
	Touched     []AnswerKey   `json:"touched,omitempty"` // questions the respondent actually set
	StartedAt   time.Time     `json:"startedAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// IsTouched reports whether the respondent has set key explicitly
func (s *Session) IsTouched(key AnswerKey) bool {
	for _, k := range s.Touched {
		if k == key {
			return true
		}
	}
	return false
}

// Touch marks key as explicitly answered
func (s *Session) Touch(key AnswerKey) {
	if !s.IsTouched(key) {
		s.Touched = append(s.Touched, key)
	}
}

// CategoryProgress is how many of a category's questions were explicitly answered
type CategoryProgress struct {
	CategoryID string `json:"categoryId"`
	Answered   int    `json:"answered"`
	Total      int    `json:"total"`
	Complete   bool   `json:"complete"`
}

// Progress tracks how far a respondent has worked through the catalog
type Progress struct {
	SessionID           string             `json:"sessionId"`
	Categories          []CategoryProgress `json:"categories"`
	CompletedCategories int                `json:"completedCategories"`
	TotalCategories     int                `json:"totalCategories"`
	Fraction            float64            `json:"fraction"` // completed categories / total categories
}

// StartResponse is returned when a new assessment session begins
type StartResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	Answers   AnswerSet `json:"answers"`
	Catalog   Catalog   `json:"catalog"`
}
