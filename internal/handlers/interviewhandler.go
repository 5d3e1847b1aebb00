package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/services"
)

type InterviewHandler struct {
	InterviewService *services.InterviewService
}

func NewInterviewHandler(i *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{InterviewService: i}
}

func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req dtos.InterviewCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	interview, err := h.InterviewService.CreateInterview(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, interview)
}

func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	interviews, err := h.InterviewService.ListInterviews(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interviews)
}

func (h *InterviewHandler) GetInterview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	interview, err := h.InterviewService.GetInterview(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) UpdateInterview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dtos.InterviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	interview, err := h.InterviewService.UpdateInterview(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) DeleteInterview(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.InterviewService.DeleteInterview(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GeneratePrep is the POST /interviews/:id/prep endpoint
func (h *InterviewHandler) GeneratePrep(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	interview, err := h.InterviewService.GeneratePrep(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}
