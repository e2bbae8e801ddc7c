package model

import "time"

type Kind string

const (
	KindFAQAnswer   Kind = "FAQ_ANSWER"
	KindModelAnswer Kind = "MODEL_ANSWER"
	KindEscalate    Kind = "ESCALATE"
)

// Provenance labels carried in Decision.Source.
const (
	SourceFAQ        = "faq"
	SourceModel      = "model"
	SourceEscalation = "escalation"
	SourceError      = "error"
)

// Decision is the outcome of resolving one query. Kind, Text and Source are
// what a presentation layer renders; the remaining fields are diagnostics.
type Decision struct {
	ID              string    `json:"id"`
	Kind            Kind      `json:"kind"`
	Text            string    `json:"text"`
	Source          string    `json:"source"`
	Score           float64   `json:"score"`
	MatchedQuestion string    `json:"matched_question,omitempty"`
	Trigger         string    `json:"trigger,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
