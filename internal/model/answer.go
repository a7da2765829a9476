package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Answer scale bounds
const (
	MinScore = 1
	MaxScore = 10

	// DefaultNeutralScore is what the presentation layer records for a question
	// the respondent has not touched yet, like a slider resting at its midpoint.
	DefaultNeutralScore = 5
)

// AnswerKey addresses one question: the category it belongs to and its
// position inside that category
type AnswerKey struct {
	CategoryID string `json:"category" bson:"category" yaml:"category"`
	Index      int    `json:"question" bson:"question" yaml:"question"`
}

func (k AnswerKey) String() string {
	return fmt.Sprintf("%s#%d", k.CategoryID, k.Index)
}

// Answer is the flat, serialisable form of one AnswerSet entry
type Answer struct {
	AnswerKey `bson:",inline" yaml:",inline"`
	Value     int `json:"value" bson:"value" yaml:"value"`
}

// InRange reports whether v is on the 1-10 answer scale
func InRange(v int) bool {
	return v >= MinScore && v <= MaxScore
}

// AnswerSet maps each answered question to its score. It may be partial;
// scoring is only meaningful once it is complete for a catalog.
type AnswerSet map[AnswerKey]int

// NewAnswerSet builds an answer set from flat entries, rejecting duplicates
func NewAnswerSet(entries []Answer) (AnswerSet, error) {
	s := make(AnswerSet, len(entries))
	for _, e := range entries {
		if _, dup := s[e.AnswerKey]; dup {
			return nil, fmt.Errorf("duplicate answer for %s", e.AnswerKey)
		}
		s[e.AnswerKey] = e.Value
	}
	return s, nil
}

// DefaultAnswerSet pre-fills every catalog question with DefaultNeutralScore
func DefaultAnswerSet(c Catalog) AnswerSet {
	s := make(AnswerSet, c.QuestionCount())
	for _, k := range c.Keys() {
		s[k] = DefaultNeutralScore
	}
	return s
}

// Set records value for key, replacing any previous answer
func (s AnswerSet) Set(key AnswerKey, value int) {
	s[key] = value
}

// Get returns the answer recorded for key
func (s AnswerSet) Get(key AnswerKey) (int, bool) {
	v, ok := s[key]
	return v, ok
}

// IsComplete reports whether s holds exactly one answer per question of c
func (s AnswerSet) IsComplete(c Catalog) bool {
	if len(s) != c.QuestionCount() {
		return false
	}
	for _, k := range c.Keys() {
		if _, ok := s[k]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (s AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Entries returns the answers sorted by category id and question index
func (s AnswerSet) Entries() []Answer {
	out := make([]Answer, 0, len(s))
	for k, v := range s {
		out = append(out, Answer{AnswerKey: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// MarshalJSON encodes the set as a list, since JSON objects cannot be keyed by a struct
func (s AnswerSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

func (s *AnswerSet) UnmarshalJSON(data []byte) error {
	var entries []Answer
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	set, err := NewAnswerSet(entries)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
