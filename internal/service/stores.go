package service

import (
	"context"

	"manabiya-quiz/internal/grading"
	"manabiya-quiz/internal/models"
)

// Identity is the resolved caller, passed explicitly into every operation.
// It is never read from ambient state inside the services.
type Identity struct {
	ID          string
	DisplayName string
	Email       string
}

// CourseStore is the read-only course collaborator.
type CourseStore interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	IsNotFound(err error) bool
}

// SubmissionStore persists quiz attempts. IsDuplicate must report whether a
// Create failed on the unique attempt-identity index.
type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	FindByID(ctx context.Context, id string) (*models.Submission, error)
	FindByStudent(ctx context.Context, ref models.QuizRef, studentID string) ([]models.Submission, error)
	CountByStudent(ctx context.Context, ref models.QuizRef, studentID string) (int, error)
	FindByQuiz(ctx context.Context, ref models.QuizRef) ([]models.Submission, error)
	ApplyGrade(ctx context.Context, id string, graded models.OpenEndedAnswer, summary grading.Summary) error
	IsDuplicate(err error) bool
	IsNotFound(err error) bool
}
