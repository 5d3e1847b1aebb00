package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobhunt/internal/auth"
	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/services"
)

type JobHandler struct {
	LLMService       *services.LLMService
	JobService       *services.JobService
	InterviewService *services.InterviewService
}

func NewJobHandler(llm *services.LLMService, j *services.JobService, i *services.InterviewService) *JobHandler {
	return &JobHandler{
		LLMService:       llm,
		JobService:       j,
		InterviewService: i,
	}
}

// ParseJob is the POST /jobs/extract endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	extractedJSON, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawHTML)
	if err != nil {
		respondError(c, err)
		return
	}
	if !json.Valid([]byte(extractedJSON)) {
		respondError(c, fmt.Errorf("%w: model returned invalid JSON", services.ErrUpstreamUnavailable))
		return
	}

	// json.RawMessage keeps the model's JSON from being escaped into a string.
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(extractedJSON),
	})
}

// CreateJob is the POST /jobs endpoint
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.JobService.CreateJob(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.JobCreationResponse{
		Message: "Job added",
		JobID:   job.JobID,
		Status:  job.Status,
		Job:     job,
	})
}

// ListJobs is the GET /jobs endpoint
func (h *JobHandler) ListJobs(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	jobs, err := h.JobService.ListJobs(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.JobService.GetJob(c.Request.Context(), userID, jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJobStatus is the PATCH /jobs/:id endpoint
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dtos.JobStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	job, err := h.JobService.UpdateStatus(c.Request.Context(), userID, jobID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.JobService.DeleteJob(c.Request.Context(), userID, jobID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// InterviewPrep serves GET /interview-prep/:job_id and POST /interview-prep.
// Advisor failures still answer 200 with fallback content.
func (h *JobHandler) InterviewPrep(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var jobID uint
	if c.Param("job_id") != "" {
		if jobID, ok = pathID(c, "job_id"); !ok {
			return
		}
	} else {
		var req dtos.InterviewPrepRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		jobID = req.JobID
	}

	prep, err := h.InterviewService.JobPrep(c.Request.Context(), userID, jobID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.InterviewPrepResponse{JobID: jobID, PrepContent: prep})
}

func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		respondError(c, services.ErrInvalidScope)
		return 0, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s %q", name, raw)})
		return 0, false
	}
	return uint(id), true
}
