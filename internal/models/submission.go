package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizRef addresses one quiz inside a course curriculum by position.
type QuizRef struct {
	CourseID    string `bson:"course_id" json:"course_id"`
	ModuleIndex int    `bson:"module_index" json:"module_index"`
	ItemIndex   int    `bson:"item_index" json:"item_index"`
}

// MCQAnswer records one question's grading outcome in canonical question
// order. SelectedOptionIndex is -1 when the question was left unanswered.
type MCQAnswer struct {
	QuestionIndex       int     `bson:"question_index" json:"question_index"`
	SelectedOptionIndex int     `bson:"selected_option_index" json:"selected_option_index"`
	IsCorrect           bool    `bson:"is_correct" json:"is_correct"`
	PointsEarned        float64 `bson:"points_earned" json:"points_earned"`
}

// OpenEndedAnswer holds the student's free-form answer plus the instructor
// grade once one has been applied. GradedScore is nil until then.
type OpenEndedAnswer struct {
	TextAnswer  string     `bson:"text_answer,omitempty" json:"text_answer,omitempty"`
	FileURL     string     `bson:"file_url,omitempty" json:"file_url,omitempty"`
	GradedScore *float64   `bson:"graded_score,omitempty" json:"graded_score,omitempty"`
	Feedback    string     `bson:"feedback,omitempty" json:"feedback,omitempty"`
	GradedAt    *time.Time `bson:"graded_at,omitempty" json:"graded_at,omitempty"`
	GradedBy    string     `bson:"graded_by,omitempty" json:"graded_by,omitempty"`
}

// Graded reports whether an instructor grade has been applied.
func (a *OpenEndedAnswer) Graded() bool {
	return a != nil && a.GradedScore != nil
}

// Submission is one attempt by one student at one quiz. MCQ submissions are
// immutable after creation; open-ended submissions are mutated only by
// grading. (course_id, module_index, item_index, student_id, attempt_number)
// is unique at the storage layer.
type Submission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizRef     `bson:",inline"`
	StudentID   string `bson:"student_id" json:"student_id"`
	StudentName string `bson:"student_name" json:"student_name"`

	AttemptNumber int    `bson:"attempt_number" json:"attempt_number"`
	QuizType      string `bson:"quiz_type" json:"quiz_type"`

	StartedAt        time.Time `bson:"started_at" json:"started_at"`
	SubmittedAt      time.Time `bson:"submitted_at" json:"submitted_at"`
	TimeSpentSeconds int       `bson:"time_spent_seconds" json:"time_spent_seconds"`
	Late             bool      `bson:"late" json:"late"`

	MCQAnswers []MCQAnswer      `bson:"mcq_answers,omitempty" json:"mcq_answers,omitempty"`
	OpenEnded  *OpenEndedAnswer `bson:"open_ended,omitempty" json:"open_ended,omitempty"`

	Score       float64 `bson:"score" json:"score"`
	TotalPoints float64 `bson:"total_points" json:"total_points"`
	Percentage  int     `bson:"percentage" json:"percentage"`
	Passed      bool    `bson:"passed" json:"passed"`
}
