package service

import (
	"errors"
	"fmt"

	"manabiya-quiz/internal/models"
)

var (
	// ErrUnauthorized is returned when an operation is invoked without a
	// resolved caller identity.
	ErrUnauthorized = errors.New("authentication required")

	// ErrNotFound covers an absent course, module, item, quiz definition or
	// submission.
	ErrNotFound = errors.New("not found")

	// ErrConcurrentAttempt is returned when two submissions race for the
	// same attempt number and the storage-level unique index rejects the
	// loser. The client may retry with a fresh submit call.
	ErrConcurrentAttempt = errors.New("concurrent attempt conflict")
)

const (
	ForbiddenUnpublished      = "unpublished"
	ForbiddenAlreadySubmitted = "alreadySubmitted"
)

// ForbiddenError rejects access to content the caller is not allowed to
// reach: unpublished items, or a re-attempt at a single-attempt quiz. For
// alreadySubmitted the most recent submission rides along as context.
type ForbiddenError struct {
	Reason         string
	LastSubmission *models.Submission
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

// ValidationError rejects malformed input: mismatched quiz type, missing
// answer fields, or an out-of-range grading score.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Msg)
}
