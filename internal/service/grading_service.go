package service

import (
	"context"
	"fmt"
	"time"

	"manabiya-quiz/internal/grading"
	"manabiya-quiz/internal/models"
)

// GradingQueue partitions a quiz's submissions for instructor review.
type GradingQueue struct {
	Ungraded []models.Submission `json:"ungraded"`
	Graded   []models.Submission `json:"graded"`
	Total    int                 `json:"total"`
}

// QuizAnalytics is an in-memory reduce over all submissions for one quiz.
type QuizAnalytics struct {
	Attempts          int       `json:"attempts"`
	Students          int       `json:"students"`
	AveragePercentage float64   `json:"average_percentage"`
	PassRate          float64   `json:"pass_rate"`
	PendingGrades     int       `json:"pending_grades"`
	QuestionCorrect   []float64 `json:"question_correct_rate,omitempty"`
}

// GradingService applies instructor grades to open-ended submissions and
// feeds the review queue.
type GradingService struct {
	Courses     CourseStore
	Submissions SubmissionStore
	now         func() time.Time
}

func NewGradingService(courses CourseStore, subs SubmissionStore) *GradingService {
	return &GradingService{Courses: courses, Submissions: subs, now: time.Now}
}

// GetSubmission returns one submission in full, graded or not, for the
// review screen.
func (s *GradingService) GetSubmission(ctx context.Context, submissionID string, caller Identity) (*models.Submission, error) {
	if caller.ID == "" {
		return nil, ErrUnauthorized
	}
	sub, err := s.Submissions.FindByID(ctx, submissionID)
	if err != nil {
		if s.Submissions.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("submission lookup: %w", err)
	}
	return sub, nil
}

// GradeSubmission applies an instructor's score and feedback to an
// open-ended submission. Re-grading overwrites the previous grade.
func (s *GradingService) GradeSubmission(ctx context.Context, submissionID string, grader Identity, score float64, feedback string) (*models.Submission, error) {
	if grader.ID == "" {
		return nil, ErrUnauthorized
	}

	sub, err := s.Submissions.FindByID(ctx, submissionID)
	if err != nil {
		if s.Submissions.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("submission lookup: %w", err)
	}
	if sub.QuizType != models.QuizTypeOpenEnded {
		return nil, &ValidationError{Msg: "only open-ended submissions are graded manually"}
	}

	// The quiz definition is authoritative for totalPoints and passingScore;
	// never trust the values a client sends alongside the grade.
	item, err := findQuizItem(ctx, s.Courses, sub.QuizRef)
	if err != nil {
		return nil, err
	}
	def := item.Quiz
	totalPoints := def.TotalPoints()

	if err := grading.ValidateManualScore(score, totalPoints); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	summary := grading.Summarize(score, totalPoints, def.PassingScore)
	gradedAt := s.now()
	graded := models.OpenEndedAnswer{
		GradedScore: &score,
		Feedback:    feedback,
		GradedAt:    &gradedAt,
		GradedBy:    grader.ID,
	}
	if sub.OpenEnded != nil {
		graded.TextAnswer = sub.OpenEnded.TextAnswer
		graded.FileURL = sub.OpenEnded.FileURL
	}

	if err := s.Submissions.ApplyGrade(ctx, submissionID, graded, summary); err != nil {
		return nil, fmt.Errorf("apply grade: %w", err)
	}

	sub.OpenEnded = &graded
	sub.Score = summary.Score
	sub.TotalPoints = summary.TotalPoints
	sub.Percentage = summary.Percentage
	sub.Passed = summary.Passed
	return sub, nil
}

// Queue returns the quiz's submissions split into ungraded and graded sets,
// newest first. Auto-graded MCQ submissions always land in the graded set.
func (s *GradingService) Queue(ctx context.Context, ref models.QuizRef, caller Identity) (*GradingQueue, error) {
	if caller.ID == "" {
		return nil, ErrUnauthorized
	}
	if _, err := findQuizItem(ctx, s.Courses, ref); err != nil {
		return nil, err
	}

	subs, err := s.Submissions.FindByQuiz(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("submission lookup: %w", err)
	}

	queue := &GradingQueue{
		Ungraded: []models.Submission{},
		Graded:   []models.Submission{},
		Total:    len(subs),
	}
	for _, sub := range subs {
		if sub.QuizType == models.QuizTypeOpenEnded && !sub.OpenEnded.Graded() {
			queue.Ungraded = append(queue.Ungraded, sub)
		} else {
			queue.Graded = append(queue.Graded, sub)
		}
	}
	return queue, nil
}

// Analytics reduces all submissions for one quiz into summary numbers for
// the instructor dashboard.
func (s *GradingService) Analytics(ctx context.Context, ref models.QuizRef, caller Identity) (*QuizAnalytics, error) {
	if caller.ID == "" {
		return nil, ErrUnauthorized
	}
	item, err := findQuizItem(ctx, s.Courses, ref)
	if err != nil {
		return nil, err
	}

	subs, err := s.Submissions.FindByQuiz(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("submission lookup: %w", err)
	}

	stats := &QuizAnalytics{Attempts: len(subs)}
	if len(subs) == 0 {
		return stats, nil
	}

	students := make(map[string]struct{})
	var pctSum float64
	var passedCount int
	for _, sub := range subs {
		students[sub.StudentID] = struct{}{}
		pctSum += float64(sub.Percentage)
		if sub.Passed {
			passedCount++
		}
		if sub.QuizType == models.QuizTypeOpenEnded && !sub.OpenEnded.Graded() {
			stats.PendingGrades++
		}
	}
	stats.Students = len(students)
	stats.AveragePercentage = pctSum / float64(len(subs))
	stats.PassRate = float64(passedCount) / float64(len(subs))

	if item.Quiz.QuizType == models.QuizTypeMCQ {
		stats.QuestionCorrect = questionCorrectRates(item.Quiz.MCQ, subs)
	}
	return stats, nil
}

func questionCorrectRates(variant *models.MCQVariant, subs []models.Submission) []float64 {
	correct := make([]int, len(variant.Questions))
	counted := make([]int, len(variant.Questions))
	for _, sub := range subs {
		for _, a := range sub.MCQAnswers {
			if a.QuestionIndex < 0 || a.QuestionIndex >= len(variant.Questions) {
				continue
			}
			counted[a.QuestionIndex]++
			if a.IsCorrect {
				correct[a.QuestionIndex]++
			}
		}
	}
	rates := make([]float64, len(variant.Questions))
	for i := range rates {
		if counted[i] > 0 {
			rates[i] = float64(correct[i]) / float64(counted[i])
		}
	}
	return rates
}
