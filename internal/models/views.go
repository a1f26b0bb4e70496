package models

// RedactedOption is an MCQ option with the answer key stripped.
// OriginalIndex points back at the canonical definition so answers submitted
// against a randomized view can be translated before scoring.
type RedactedOption struct {
	Text          string `json:"text"`
	OriginalIndex int    `json:"original_index"`
}

// RedactedQuestion is a student-safe MCQ question.
type RedactedQuestion struct {
	Text          string           `json:"text"`
	Points        float64          `json:"points"`
	OriginalIndex int              `json:"original_index"`
	Options       []RedactedOption `json:"options"`
}

// OpenEndedView is the student-facing shape of an open-ended quiz.
type OpenEndedView struct {
	Question         string `json:"question"`
	QuestionFileURL  string `json:"question_file_url,omitempty"`
	AcceptTextAnswer bool   `json:"accept_text_answer"`
	AcceptFileUpload bool   `json:"accept_file_upload"`
}

// QuizView is what a student sees when opening a quiz: everything from the
// definition except correct-answer flags, plus the attempt they are about to
// make.
type QuizView struct {
	Title                 string             `json:"title"`
	QuizType              string             `json:"quiz_type"`
	TimeLimitMinutes      int                `json:"time_limit_minutes"`
	TotalPoints           float64            `json:"total_points"`
	PassingScore          float64            `json:"passing_score"`
	AllowMultipleAttempts bool               `json:"allow_multiple_attempts"`
	AttemptNumber         int                `json:"attempt_number"`
	Questions             []RedactedQuestion `json:"questions,omitempty"`
	OpenEnded             *OpenEndedView     `json:"open_ended,omitempty"`
}

// AnsweredQuestion pairs a canonical question, answer key included, with the
// student's graded answer. Only returned when the quiz's
// show_answers_after_submission policy allows it.
type AnsweredQuestion struct {
	Text               string      `json:"text"`
	Points             float64     `json:"points"`
	Options            []MCQOption `json:"options"`
	CorrectOptionIndex int         `json:"correct_option_index"`
	Answer             MCQAnswer   `json:"answer"`
}
