package service

import (
	"context"
	"fmt"
	"time"

	"manabiya-quiz/internal/grading"
	"manabiya-quiz/internal/models"
)

// SubmitRequest carries one attempt's answers. For MCQ, Answers holds
// canonical question/option indices; for open-ended, TextAnswer and/or
// FileURL.
type SubmitRequest struct {
	QuizType   string
	StartedAt  time.Time
	Answers    []grading.SelectedAnswer
	TextAnswer string
	FileURL    string
}

// SubmitResult is the policy-filtered response to a submission. Questions is
// populated, answer key included, only for MCQ quizzes that allow showing
// answers after submission; the embedded submission view has per-question
// results stripped otherwise.
type SubmitResult struct {
	Submission  *models.Submission        `json:"submission"`
	ShowAnswers bool                      `json:"show_answers"`
	Questions   []models.AnsweredQuestion `json:"questions,omitempty"`
}

// SubmissionService creates exactly one Submission per attempt.
type SubmissionService struct {
	Courses     CourseStore
	Submissions SubmissionStore
	now         func() time.Time
}

func NewSubmissionService(courses CourseStore, subs SubmissionStore) *SubmissionService {
	return &SubmissionService{Courses: courses, Submissions: subs, now: time.Now}
}

// SubmitQuiz validates attempt eligibility, scores MCQ answers (or stores an
// open-ended answer for review) and persists the attempt. The attempt number
// is re-derived at call time; the storage-level unique index turns a lost
// race into ErrConcurrentAttempt.
func (s *SubmissionService) SubmitQuiz(ctx context.Context, ref models.QuizRef, student Identity, req SubmitRequest) (*SubmitResult, error) {
	if student.ID == "" {
		return nil, ErrUnauthorized
	}

	item, err := findQuizItem(ctx, s.Courses, ref)
	if err != nil {
		return nil, err
	}
	if !item.Published {
		return nil, &ForbiddenError{Reason: ForbiddenUnpublished}
	}
	def := item.Quiz

	if req.QuizType != "" && req.QuizType != def.QuizType {
		return nil, &ValidationError{Msg: fmt.Sprintf("quiz type %q does not match definition %q", req.QuizType, def.QuizType)}
	}

	count, err := s.Submissions.CountByStudent(ctx, ref, student.ID)
	if err != nil {
		return nil, fmt.Errorf("attempt count: %w", err)
	}
	if count > 0 && !def.AllowMultipleAttempts {
		return nil, &ForbiddenError{Reason: ForbiddenAlreadySubmitted}
	}

	submittedAt := s.now()
	startedAt := req.StartedAt
	if startedAt.IsZero() || startedAt.After(submittedAt) {
		startedAt = submittedAt
	}
	timeSpent := int(submittedAt.Sub(startedAt).Seconds())

	sub := &models.Submission{
		QuizRef:          ref,
		StudentID:        student.ID,
		StudentName:      student.DisplayName,
		AttemptNumber:    count + 1,
		QuizType:         def.QuizType,
		StartedAt:        startedAt,
		SubmittedAt:      submittedAt,
		TimeSpentSeconds: timeSpent,
		Late:             def.TimeLimitMinutes > 0 && timeSpent > def.TimeLimitMinutes*60,
	}

	switch def.QuizType {
	case models.QuizTypeMCQ:
		result := grading.ScoreMCQ(def.MCQ, req.Answers, def.PassingScore)
		sub.MCQAnswers = result.Answers
		sub.Score = result.Score
		sub.TotalPoints = result.TotalPoints
		sub.Percentage = result.Percentage
		sub.Passed = result.Passed
	case models.QuizTypeOpenEnded:
		if err := validateOpenEndedInput(def.OpenEnded, req); err != nil {
			return nil, err
		}
		sub.OpenEnded = &models.OpenEndedAnswer{
			TextAnswer: req.TextAnswer,
			FileURL:    req.FileURL,
		}
		// Placeholder values pending manual grading.
		sub.TotalPoints = def.OpenEnded.TotalPoints
	default:
		return nil, ErrNotFound
	}

	if err := s.Submissions.Create(ctx, sub); err != nil {
		if s.Submissions.IsDuplicate(err) {
			return nil, ErrConcurrentAttempt
		}
		return nil, fmt.Errorf("persist submission: %w", err)
	}

	showAnswers := def.QuizType == models.QuizTypeMCQ && def.MCQ.ShowAnswersAfterSubmission
	res := &SubmitResult{
		Submission:  submissionView(sub, showAnswers),
		ShowAnswers: showAnswers,
	}
	if showAnswers {
		res.Questions = answeredQuestions(def.MCQ, sub.MCQAnswers)
	}
	return res, nil
}

func validateOpenEndedInput(variant *models.OpenEndedVariant, req SubmitRequest) error {
	if req.TextAnswer == "" && req.FileURL == "" {
		return &ValidationError{Msg: "an answer is required: text_answer or file_url"}
	}
	if req.TextAnswer != "" && !variant.AcceptTextAnswer {
		return &ValidationError{Msg: "this quiz does not accept text answers"}
	}
	if req.FileURL != "" && !variant.AcceptFileUpload {
		return &ValidationError{Msg: "this quiz does not accept file uploads"}
	}
	return nil
}

// submissionView copies a submission for the response, stripping per-question
// results when the quiz withholds answers after submission.
func submissionView(sub *models.Submission, showAnswers bool) *models.Submission {
	view := *sub
	if sub.QuizType == models.QuizTypeMCQ && !showAnswers {
		view.MCQAnswers = nil
	}
	return &view
}

// answeredQuestions pairs each canonical question, answer key included, with
// the student's graded answer.
func answeredQuestions(variant *models.MCQVariant, answers []models.MCQAnswer) []models.AnsweredQuestion {
	out := make([]models.AnsweredQuestion, 0, len(answers))
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= len(variant.Questions) {
			continue
		}
		q := variant.Questions[a.QuestionIndex]
		out = append(out, models.AnsweredQuestion{
			Text:               q.Text,
			Points:             q.Points,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex(),
			Answer:             a,
		})
	}
	return out
}
