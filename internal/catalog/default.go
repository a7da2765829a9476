// Package catalog provides the question catalog the assessment runs over.
package catalog

import "wellcheck/internal/model"

// DefaultName identifies the built-in catalog in storage
const DefaultName = "wellness-v1"

var builtin = model.Catalog{
	Name: DefaultName,
	Categories: []model.Category{
		{
			ID: "body", Label: "Body", Icon: "💪",
			Questions: []string{
				"How would you rate your current physical health (1-10)?",
				"How many hours of sleep do you get each night?",
				"How often do you exercise weekly?",
				"Rate your energy levels throughout the day (1-10)?",
			},
		},
		{
			ID: "mindset", Label: "Mindset", Icon: "🧠",
			Questions: []string{
				"How optimistic are you overall (1-10)?",
				"How often do you experience negative self-talk (1-10)?",
				"Rate your confidence in achieving goals (1-10)?",
				"How easily do you adapt to change (1-10)?",
			},
		},
		{
			ID: "emotions", Label: "Emotions", Icon: "💓",
			Questions: []string{
				"How well do you manage emotions (1-10)?",
				"How often do you feel stressed (1-10)?",
				"Rate your comfort expressing emotions (1-10)?",
				"How often do you practice self-compassion (1-10)?",
			},
		},
		{
			ID: "joy", Label: "Joy", Icon: "😄",
			Questions: []string{
				"How often do you feel joy (1-10)?",
				"How connected are you to your passions (1-10)?",
				"How often do you express gratitude (1-10)?",
				"Rate your overall contentment (1-10)?",
			},
		},
		{
			ID: "relationships", Label: "Relationships", Icon: "🤝",
			Questions: []string{
				"How would you rate your relationships overall (1-10)?",
				"How supported do you feel by loved ones (1-10)?",
				"How well do you communicate your needs (1-10)?",
				"Rate your comfort in asking for help (1-10)?",
			},
		},
		{
			ID: "wealth", Label: "Wealth", Icon: "💰",
			Questions: []string{
				"How satisfied are you with your financial situation (1-10)?",
				"Do you have clear financial goals (1-10)?",
				"Rate how well you manage finances (1-10)?",
				"How secure do you feel financially (1-10)?",
			},
		},
		{
			ID: "purpose", Label: "Purpose", Icon: "🎯",
			Questions: []string{
				"How clear are you about your life's purpose (1-10)?",
				"How meaningful is your daily life (1-10)?",
				"How strong is your sense of fulfillment (1-10)?",
				"How inspired do you feel day-to-day (1-10)?",
			},
		},
		{
			ID: "contribution", Label: "Contribution", Icon: "🌍",
			Questions: []string{
				"How often do you help or volunteer (1-10)?",
				"How much impact do you feel you make (1-10)?",
				"How connected are you to your community (1-10)?",
				"How satisfied are you with your contribution (1-10)?",
			},
		},
	},
}

// Default returns a copy of the built-in wellness catalog
func Default() model.Catalog {
	return builtin.Clone()
}
