package dtos

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type JobCreationRequest struct {
	Company string `json:"company" binding:"required"`
	Title   string `json:"job_title" binding:"required"`
	Role    string `json:"role" binding:"required"`

	// Optional Fields
	Description *string `json:"job_description"`
	Status      string  `json:"status"` // Suggested by the advisor if empty
}

type JobStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type JobCreationResponse struct {
	Message string `json:"message"`
	JobID   uint   `json:"job_id"`
	Status  string `json:"status"`
	Job     any    `json:"job"`
}

type InterviewPrepRequest struct {
	JobID uint `json:"job_id" binding:"required"`
}

type InterviewPrepResponse struct {
	JobID       uint   `json:"job_id"`
	PrepContent string `json:"prep_content"`
}
