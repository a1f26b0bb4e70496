package grading

import "manabiya-quiz/internal/models"

// SelectedAnswer is one student choice keyed by canonical question index.
// Clients translate randomized positions back through original_index before
// submitting, so indices here always refer to the stored definition.
type SelectedAnswer struct {
	QuestionIndex       int `json:"question_index"`
	SelectedOptionIndex int `json:"selected_option_index"`
}

// Summary is the derived outcome shared by both quiz variants.
type Summary struct {
	Score       float64 `json:"score"`
	TotalPoints float64 `json:"total_points"`
	Percentage  int     `json:"percentage"`
	Passed      bool    `json:"passed"`
}

// MCQResult is the full auto-grading outcome for an MCQ attempt.
type MCQResult struct {
	Summary
	Answers []models.MCQAnswer `json:"answers"`
}
