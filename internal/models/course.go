package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	QuizTypeMCQ       = "mcq"
	QuizTypeOpenEnded = "open-ended"

	ItemTypeQuiz = "quiz"
)

type MCQOption struct {
	Text      string `bson:"text" json:"text"`
	IsCorrect bool   `bson:"is_correct" json:"is_correct"`
}

type MCQQuestion struct {
	Text    string      `bson:"text" json:"text"`
	Options []MCQOption `bson:"options" json:"options"`
	Points  float64     `bson:"points" json:"points"`
}

// CorrectOptionIndex returns the canonical index of the option flagged
// correct, or -1 when no option is flagged.
func (q MCQQuestion) CorrectOptionIndex() int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}

type MCQVariant struct {
	Questions                  []MCQQuestion `bson:"questions" json:"questions"`
	RandomizeQuestions         bool          `bson:"randomize_questions" json:"randomize_questions"`
	RandomizeOptions           bool          `bson:"randomize_options" json:"randomize_options"`
	ShowAnswersAfterSubmission bool          `bson:"show_answers_after_submission" json:"show_answers_after_submission"`
}

// TotalPoints is the sum of all question point values.
func (v MCQVariant) TotalPoints() float64 {
	var total float64
	for _, q := range v.Questions {
		total += q.Points
	}
	return total
}

type OpenEndedVariant struct {
	Question         string  `bson:"question" json:"question"`
	QuestionFileURL  string  `bson:"question_file_url,omitempty" json:"question_file_url,omitempty"`
	AcceptTextAnswer bool    `bson:"accept_text_answer" json:"accept_text_answer"`
	AcceptFileUpload bool    `bson:"accept_file_upload" json:"accept_file_upload"`
	TotalPoints      float64 `bson:"total_points" json:"total_points"`
}

// QuizDefinition is a tagged union discriminated by QuizType: exactly one of
// MCQ / OpenEnded is set for a well-formed definition.
type QuizDefinition struct {
	QuizType              string            `bson:"quiz_type" json:"quiz_type"`
	TimeLimitMinutes      int               `bson:"time_limit_minutes" json:"time_limit_minutes"`
	PassingScore          float64           `bson:"passing_score" json:"passing_score"`
	AllowMultipleAttempts bool              `bson:"allow_multiple_attempts" json:"allow_multiple_attempts"`
	MCQ                   *MCQVariant       `bson:"mcq,omitempty" json:"mcq,omitempty"`
	OpenEnded             *OpenEndedVariant `bson:"open_ended,omitempty" json:"open_ended,omitempty"`
}

// TotalPoints returns the maximum awardable score for either variant.
func (d *QuizDefinition) TotalPoints() float64 {
	switch d.QuizType {
	case QuizTypeMCQ:
		if d.MCQ != nil {
			return d.MCQ.TotalPoints()
		}
	case QuizTypeOpenEnded:
		if d.OpenEnded != nil {
			return d.OpenEnded.TotalPoints
		}
	}
	return 0
}

type ModuleItem struct {
	Title     string          `bson:"title" json:"title"`
	ItemType  string          `bson:"item_type" json:"item_type"`
	Published bool            `bson:"published" json:"published"`
	Quiz      *QuizDefinition `bson:"quiz,omitempty" json:"quiz,omitempty"`
}

type CourseModule struct {
	Title string       `bson:"title" json:"title"`
	Items []ModuleItem `bson:"items" json:"items"`
}

type Curriculum struct {
	Modules []CourseModule `bson:"modules" json:"modules"`
}

// Course is owned by the course store; this service only ever reads it.
type Course struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	InstructorID string             `bson:"instructor_id" json:"instructor_id"`
	Curriculum   Curriculum         `bson:"curriculum" json:"curriculum"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
