package handlers

import (
	"net/http"
	"strconv"
	"time"

	"manabiya-quiz/internal/grading"
	"manabiya-quiz/internal/models"
	"manabiya-quiz/internal/service"

	"github.com/gin-gonic/gin"
)

// QuizHandler serves the student-facing quiz lifecycle: fetch, submit,
// results.
type QuizHandler struct {
	Quizzes     *service.QuizService
	Submissions *service.SubmissionService
	Results     *service.ResultService
}

func NewQuizHandler(q *service.QuizService, s *service.SubmissionService, r *service.ResultService) *QuizHandler {
	return &QuizHandler{Quizzes: q, Submissions: s, Results: r}
}

// quizRef parses the positional quiz reference from the route. Garbage
// indices address nothing, so they surface as NOT_FOUND.
func quizRef(c *gin.Context) (models.QuizRef, bool) {
	moduleIndex, err := strconv.Atoi(c.Param("moduleIndex"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return models.QuizRef{}, false
	}
	itemIndex, err := strconv.Atoi(c.Param("itemIndex"))
	if err != nil {
		respondError(c, service.ErrNotFound)
		return models.QuizRef{}, false
	}
	return models.QuizRef{
		CourseID:    c.Param("courseId"),
		ModuleIndex: moduleIndex,
		ItemIndex:   itemIndex,
	}, true
}

// GetQuiz returns the redacted quiz view for the calling student.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	ref, ok := quizRef(c)
	if !ok {
		return
	}
	view, err := h.Quizzes.GetQuizForStudent(c.Request.Context(), ref, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": view})
}

// SubmitQuiz records one attempt and returns the policy-filtered result.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	ref, ok := quizRef(c)
	if !ok {
		return
	}

	var req struct {
		QuizType   string                   `json:"quiz_type"`
		StartedAt  time.Time                `json:"started_at"`
		Answers    []grading.SelectedAnswer `json:"answers"`
		TextAnswer string                   `json:"text_answer"`
		FileURL    string                   `json:"file_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid submission format",
			"code":    "VALIDATION_FAILED",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Submissions.SubmitQuiz(c.Request.Context(), ref, currentIdentity(c), service.SubmitRequest{
		QuizType:   req.QuizType,
		StartedAt:  req.StartedAt,
		Answers:    req.Answers,
		TextAnswer: req.TextAnswer,
		FileURL:    req.FileURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetResults returns the calling student's own submission history for the
// quiz. An optional submissionId query narrows it to one attempt.
func (h *QuizHandler) GetResults(c *gin.Context) {
	ref, ok := quizRef(c)
	if !ok {
		return
	}
	views, err := h.Results.GetResults(c.Request.Context(), ref, currentIdentity(c), c.Query("submissionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"results": views,
		"count":   len(views),
	})
}
