package service

import (
	"context"
	"fmt"

	"manabiya-quiz/internal/models"
	"manabiya-quiz/internal/randomize"
)

// QuizService serves the student-facing quiz view with the answer key
// stripped and the attempt-limit policy applied.
type QuizService struct {
	Courses     CourseStore
	Submissions SubmissionStore
	shuffler    *randomize.Shuffler
}

func NewQuizService(courses CourseStore, subs SubmissionStore, shuffler *randomize.Shuffler) *QuizService {
	if shuffler == nil {
		shuffler = randomize.NewShuffler()
	}
	return &QuizService{Courses: courses, Submissions: subs, shuffler: shuffler}
}

// findQuizItem resolves a positional quiz reference against the course
// store. It performs the NotFound checks only; callers that serve students
// must additionally gate on item.Published.
func findQuizItem(ctx context.Context, courses CourseStore, ref models.QuizRef) (*models.ModuleItem, error) {
	course, err := courses.FindByID(ctx, ref.CourseID)
	if err != nil {
		if courses.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("course lookup: %w", err)
	}
	if ref.ModuleIndex < 0 || ref.ModuleIndex >= len(course.Curriculum.Modules) {
		return nil, ErrNotFound
	}
	module := course.Curriculum.Modules[ref.ModuleIndex]
	if ref.ItemIndex < 0 || ref.ItemIndex >= len(module.Items) {
		return nil, ErrNotFound
	}
	item := module.Items[ref.ItemIndex]
	if item.ItemType != models.ItemTypeQuiz || item.Quiz == nil {
		return nil, ErrNotFound
	}
	// A definition whose variant sub-document is missing is unusable data;
	// treat it the same as an absent quiz.
	switch item.Quiz.QuizType {
	case models.QuizTypeMCQ:
		if item.Quiz.MCQ == nil {
			return nil, ErrNotFound
		}
	case models.QuizTypeOpenEnded:
		if item.Quiz.OpenEnded == nil {
			return nil, ErrNotFound
		}
	default:
		return nil, ErrNotFound
	}
	return &item, nil
}

// GetQuizForStudent returns the redacted quiz view the student is about to
// attempt. For single-attempt quizzes a prior submission makes this fail
// with alreadySubmitted, carrying the latest submission as context.
func (s *QuizService) GetQuizForStudent(ctx context.Context, ref models.QuizRef, student Identity) (*models.QuizView, error) {
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

	prior, err := s.Submissions.FindByStudent(ctx, ref, student.ID)
	if err != nil {
		return nil, fmt.Errorf("submission lookup: %w", err)
	}
	if len(prior) > 0 && !def.AllowMultipleAttempts {
		return nil, &ForbiddenError{
			Reason:         ForbiddenAlreadySubmitted,
			LastSubmission: &prior[0],
		}
	}

	view := &models.QuizView{
		Title:                 item.Title,
		QuizType:              def.QuizType,
		TimeLimitMinutes:      def.TimeLimitMinutes,
		TotalPoints:           def.TotalPoints(),
		PassingScore:          def.PassingScore,
		AllowMultipleAttempts: def.AllowMultipleAttempts,
		AttemptNumber:         len(prior) + 1,
	}

	switch def.QuizType {
	case models.QuizTypeMCQ:
		view.Questions = s.shuffler.Questions(def.MCQ)
	case models.QuizTypeOpenEnded:
		view.OpenEnded = &models.OpenEndedView{
			Question:         def.OpenEnded.Question,
			QuestionFileURL:  def.OpenEnded.QuestionFileURL,
			AcceptTextAnswer: def.OpenEnded.AcceptTextAnswer,
			AcceptFileUpload: def.OpenEnded.AcceptFileUpload,
		}
	default:
		return nil, ErrNotFound
	}

	return view, nil
}
