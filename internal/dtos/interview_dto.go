package dtos

type InterviewCreationRequest struct {
	JobID uint `json:"job_id" binding:"required"`
	Schedule
	Details string `json:"details"`
}

// InterviewUpdateRequest only touches the fields that are present.
type InterviewUpdateRequest struct {
	JobID *uint `json:"job_id"`
	Schedule
	Details *string `json:"details"`
}

type CalendarEventCreationRequest struct {
	Type  string `json:"type" binding:"required,oneof=job interview"`
	JobID *uint  `json:"job_id"`
	Schedule
	Details string `json:"details"`
}

type CalendarEventUpdateRequest struct {
	Type  *string `json:"type" binding:"omitempty,oneof=job interview"`
	JobID *uint   `json:"job_id"`
	Schedule
	Details *string `json:"details"`
}
