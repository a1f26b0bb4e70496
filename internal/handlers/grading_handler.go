package handlers

import (
	"net/http"

	"manabiya-quiz/internal/service"

	"github.com/gin-gonic/gin"
)

// GradingHandler serves the instructor surface: manual grading, the review
// queue and quiz analytics.
type GradingHandler struct {
	Grading *service.GradingService
}

func NewGradingHandler(g *service.GradingService) *GradingHandler {
	return &GradingHandler{Grading: g}
}

// GradeSubmission applies an instructor's score and feedback to an
// open-ended submission. The quiz reference fields in the body are accepted
// for API compatibility but the stored submission is authoritative.
func (h *GradingHandler) GradeSubmission(c *gin.Context) {
	submissionID := c.Param("submissionId")

	var req struct {
		Score       *float64 `json:"score" binding:"required"`
		Feedback    string   `json:"feedback"`
		CourseID    string   `json:"course_id"`
		ModuleIndex int      `json:"module_index"`
		ItemIndex   int      `json:"item_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid grading payload",
			"code":    "VALIDATION_FAILED",
			"details": err.Error(),
		})
		return
	}

	sub, err := h.Grading.GradeSubmission(c.Request.Context(), submissionID, currentIdentity(c), *req.Score, req.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"submission": sub,
		"message":    "Submission graded",
	})
}

// GetSubmission returns one submission by id for the review screen.
func (h *GradingHandler) GetSubmission(c *gin.Context) {
	sub, err := h.Grading.GetSubmission(c.Request.Context(), c.Param("submissionId"), currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submission": sub})
}

// Queue returns ungraded and graded submissions for one quiz, newest first.
func (h *GradingHandler) Queue(c *gin.Context) {
	ref, ok := quizRef(c)
	if !ok {
		return
	}
	queue, err := h.Grading.Queue(c.Request.Context(), ref, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

// Analytics returns aggregate numbers over all submissions for one quiz.
func (h *GradingHandler) Analytics(c *gin.Context) {
	ref, ok := quizRef(c)
	if !ok {
		return
	}
	stats, err := h.Grading.Analytics(c.Request.Context(), ref, currentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": stats})
}
