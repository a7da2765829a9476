package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoCategories      = errors.New("catalog has no categories")
	ErrEmptyCategoryID   = errors.New("category id is empty")
	ErrDuplicateCategory = errors.New("duplicate category id")
	ErrNoQuestions       = errors.New("category has no questions")
	ErrEmptyPrompt       = errors.New("question prompt is empty")
)

// Category is a named group of related survey questions
type Category struct {
	ID        string   `json:"id" bson:"id" yaml:"id"`
	Label     string   `json:"label" bson:"label" yaml:"label"`
	Icon      string   `json:"icon,omitempty" bson:"icon,omitempty" yaml:"icon,omitempty"`
	Questions []string `json:"questions" bson:"questions" yaml:"questions"`
}

// DisplayName returns the icon-prefixed label shown on result cards
func (c Category) DisplayName() string {
	label := c.Label
	if label == "" {
		label = c.ID
	}
	if c.Icon == "" {
		return label
	}
	return c.Icon + " " + label
}

// Catalog is the ordered definition of every category and its questions.
// It is built once at startup and never mutated afterwards.
type Catalog struct {
	Name       string     `json:"name" bson:"name" yaml:"name"`
	Categories []Category `json:"categories" bson:"categories" yaml:"categories"`
}

// Validate checks the structural invariants the scoring engine relies on
func (c Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return ErrNoCategories
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.ID) == "" {
			return fmt.Errorf("category %d: %w", i, ErrEmptyCategoryID)
		}
		if _, ok := seen[cat.ID]; ok {
			return fmt.Errorf("category %q: %w", cat.ID, ErrDuplicateCategory)
		}
		seen[cat.ID] = struct{}{}
		if len(cat.Questions) == 0 {
			return fmt.Errorf("category %q: %w", cat.ID, ErrNoQuestions)
		}
		for j, q := range cat.Questions {
			if strings.TrimSpace(q) == "" {
				return fmt.Errorf("category %q question %d: %w", cat.ID, j, ErrEmptyPrompt)
			}
		}
	}
	return nil
}

// Category looks up a category by id
func (c Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Contains reports whether key addresses a question of this catalog
func (c Catalog) Contains(key AnswerKey) bool {
	cat, ok := c.Category(key.CategoryID)
	if !ok {
		return false
	}
	return key.Index >= 0 && key.Index < len(cat.Questions)
}

// QuestionCount returns the total number of questions across all categories
func (c Catalog) QuestionCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Questions)
	}
	return n
}

// Keys returns every answer key in catalog order
func (c Catalog) Keys() []AnswerKey {
	keys := make([]AnswerKey, 0, c.QuestionCount())
	for _, cat := range c.Categories {
		for i := range cat.Questions {
			keys = append(keys, AnswerKey{CategoryID: cat.ID, Index: i})
		}
	}
	return keys
}

// Clone returns a deep copy so the shared catalog cannot be mutated by callers
func (c Catalog) Clone() Catalog {
	out := Catalog{Name: c.Name, Categories: make([]Category, len(c.Categories))}
	for i, cat := range c.Categories {
		cat.Questions = append([]string(nil), cat.Questions...)
		out.Categories[i] = cat
	}
	return out
}
