package models

import "time"

// Answer is a reusable library answer distilled from a finalized question.
// It is matched against new questions by text, not by foreign key.
type Answer struct {
	ID           string    `json:"id"`
	QuestionText string    `json:"questionText" validate:"required"`
	AnswerText   string    `json:"answerText" validate:"required"`
	Keywords     []string  `json:"keywords"`
	UsageCount   int       `json:"usageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
