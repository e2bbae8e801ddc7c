package faq

import "github.com/agenthands/faqdesk/internal/core/model"

// Defaults is the built-in FAQ set used when no source is configured.
func Defaults() []model.FaqEntry {
	return []model.FaqEntry{
		{
			Question: "What are the office working hours?",
			Answer:   "Office hours are 9:30 AM - 6:30 PM, Monday to Friday.",
		},
		{
			Question: "How to contact IT support?",
			Answer:   "Email IT at it-support@example.com or call ext. 1234.",
		},
		{
			Question: "How to apply for leave?",
			Answer:   "Use the HR portal -> Leave Request. Contact hr@example.com for urgent help.",
		},
	}
}
