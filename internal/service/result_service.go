package service

import (
	"context"
	"fmt"

	"manabiya-quiz/internal/models"
)

// ResultView is one attempt from the student's own history, filtered by the
// quiz's answer-visibility policy.
type ResultView struct {
	Submission        *models.Submission        `json:"submission"`
	ShowAnswers       bool                      `json:"show_answers"`
	Questions         []models.AnsweredQuestion `json:"questions,omitempty"`
	OpenEndedQuestion *models.OpenEndedView     `json:"open_ended_question,omitempty"`
}

// ResultService assembles a student's own submission history for a quiz.
type ResultService struct {
	Courses     CourseStore
	Submissions SubmissionStore
}

func NewResultService(courses CourseStore, subs SubmissionStore) *ResultService {
	return &ResultService{Courses: courses, Submissions: subs}
}

// GetResults returns the student's submissions for a quiz, most recent
// attempt first. A non-empty submissionID narrows the history to that one
// attempt. MCQ answer keys are included only when the quiz shows answers
// after submission; open-ended views always carry the student's own answer
// and grade.
func (s *ResultService) GetResults(ctx context.Context, ref models.QuizRef, student Identity, submissionID string) ([]ResultView, error) {
	if student.ID == "" {
		return nil, ErrUnauthorized
	}

	item, err := findQuizItem(ctx, s.Courses, ref)
	if err != nil {
		return nil, err
	}
	def := item.Quiz

	subs, err := s.Submissions.FindByStudent(ctx, ref, student.ID)
	if err != nil {
		return nil, fmt.Errorf("submission lookup: %w", err)
	}
	if submissionID != "" {
		filtered := subs[:0]
		for _, sub := range subs {
			if sub.ID.Hex() == submissionID {
				filtered = append(filtered, sub)
			}
		}
		subs = filtered
	}
	if len(subs) == 0 {
		return nil, ErrNotFound
	}

	showAnswers := def.QuizType == models.QuizTypeMCQ && def.MCQ.ShowAnswersAfterSubmission
	views := make([]ResultView, 0, len(subs))
	for i := range subs {
		sub := subs[i]
		view := ResultView{
			Submission:  submissionView(&sub, showAnswers),
			ShowAnswers: showAnswers,
		}
		switch def.QuizType {
		case models.QuizTypeMCQ:
			if showAnswers {
				view.Questions = answeredQuestions(def.MCQ, sub.MCQAnswers)
			}
		case models.QuizTypeOpenEnded:
			view.OpenEndedQuestion = &models.OpenEndedView{
				Question:         def.OpenEnded.Question,
				QuestionFileURL:  def.OpenEnded.QuestionFileURL,
				AcceptTextAnswer: def.OpenEnded.AcceptTextAnswer,
				AcceptFileUpload: def.OpenEnded.AcceptFileUpload,
			}
		}
		views = append(views, view)
	}
	return views, nil
}
