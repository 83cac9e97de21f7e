package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/services"
)

type JobHandler struct {
	LLMService *services.LLMService // nil when no API key is configured
	JobService *services.JobService
}

func NewJobHandler(llm *services.LLMService, j *services.JobService) *JobHandler {
	return &JobHandler{LLMService: llm,
		JobService: j,
	}
}

// ParseJob is the POST /jobs/extract endpoint.
func (h *JobHandler) ParseJob(c *gin.Context) {
	if h.LLMService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job extraction is not configured"})
		return
	}
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	job, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Extraction failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		fail(c, "create job", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs(c.Request.Context(), uintQuery(c, "client_id"))
	if err != nil {
		fail(c, "list jobs", err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	job, err := h.JobService.GetJob(c.Request.Context(), id)
	if err != nil {
		fail(c, "load job", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// EligibleStudents is GET /jobs/:id/eligible-students.
func (h *JobHandler) EligibleStudents(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	rows, err := h.JobService.EligibleStudents(c.Request.Context(), id)
	if err != nil {
		fail(c, "load eligible students", err)
		return
	}
	if rows == nil {
		rows = []dtos.EligibleStudent{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *JobHandler) CreateClient(c *gin.Context) {
	var req dtos.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	client, err := h.JobService.CreateClient(c.Request.Context(), &req)
	if err != nil {
		fail(c, "create client", err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *JobHandler) ListClients(c *gin.Context) {
	clients, err := h.JobService.ListClients(c.Request.Context())
	if err != nil {
		fail(c, "list clients", err)
		return
	}
	c.JSON(http.StatusOK, clients)
}
