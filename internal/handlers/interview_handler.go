package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

type InterviewHandler struct {
	Interviews *services.InterviewService
}

func NewInterviewHandler(interviews *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{Interviews: interviews}
}

func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req dtos.InterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	iv, err := h.Interviews.Schedule(c.Request.Context(), &req)
	if err != nil {
		fail(c, "schedule interview", err)
		return
	}
	c.JSON(http.StatusCreated, iv)
}

// List is GET /interviews?job_id=&student_id=.
func (h *InterviewHandler) List(c *gin.Context) {
	ivs, err := h.Interviews.List(c.Request.Context(), uintQuery(c, "job_id"), uintQuery(c, "student_id"))
	if err != nil {
		fail(c, "list interviews", err)
		return
	}
	c.JSON(http.StatusOK, ivs)
}

// SetResult is PUT /interviews/:id/result. A pass marks the student offered.
func (h *InterviewHandler) SetResult(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dtos.InterviewResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	iv, err := h.Interviews.SetResult(c.Request.Context(), id, req.Result, req.Notes)
	if err != nil {
		fail(c, "update interview", err)
		return
	}
	c.JSON(http.StatusOK, iv)
}
