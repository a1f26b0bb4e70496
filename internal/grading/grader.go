package grading

import (
	"fmt"
	"math"

	"manabiya-quiz/internal/models"
)

// Percentage computes the rounded 0-100 percentage, 0 when totalPoints is 0.
func Percentage(score, totalPoints float64) int {
	if totalPoints <= 0 {
		return 0
	}
	return int(math.Round(score / totalPoints * 100))
}

// Summarize derives percentage and pass state from a raw score.
func Summarize(score, totalPoints, passingScore float64) Summary {
	pct := Percentage(score, totalPoints)
	return Summary{
		Score:       score,
		TotalPoints: totalPoints,
		Percentage:  pct,
		Passed:      float64(pct) >= passingScore,
	}
}

// ScoreMCQ grades a set of selected answers against the canonical question
// list. Every question produces exactly one MCQAnswer, in canonical order;
// questions with no matching selection are recorded as unanswered
// (selected_option_index = -1) and earn nothing. A duplicate selection for
// the same question keeps the first one seen.
func ScoreMCQ(variant *models.MCQVariant, selections []SelectedAnswer, passingScore float64) MCQResult {
	byQuestion := make(map[int]int, len(selections))
	for _, sel := range selections {
		if _, seen := byQuestion[sel.QuestionIndex]; !seen {
			byQuestion[sel.QuestionIndex] = sel.SelectedOptionIndex
		}
	}

	answers := make([]models.MCQAnswer, 0, len(variant.Questions))
	var score float64
	for i, q := range variant.Questions {
		selected, answered := byQuestion[i]
		if !answered || selected < 0 || selected >= len(q.Options) {
			selected = -1
		}
		correct := selected >= 0 && selected == q.CorrectOptionIndex()
		var earned float64
		if correct {
			earned = q.Points
			score += earned
		}
		answers = append(answers, models.MCQAnswer{
			QuestionIndex:       i,
			SelectedOptionIndex: selected,
			IsCorrect:           correct,
			PointsEarned:        earned,
		})
	}

	return MCQResult{
		Summary: Summarize(score, variant.TotalPoints(), passingScore),
		Answers: answers,
	}
}

// ValidateManualScore checks an instructor-assigned score against the quiz
// definition's point total.
func ValidateManualScore(score, totalPoints float64) error {
	if score < 0 || score > totalPoints {
		return fmt.Errorf("score %.1f outside [0, %.1f]", score, totalPoints)
	}
	return nil
}
