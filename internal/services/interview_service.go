package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InterviewService stores interviews. A job reference is checked against the
// job table on create and whenever an update changes it.
type InterviewService struct {
	DB      *gorm.DB
	Jobs    *JobService
	Advisor PrepAdvisor
}

func NewInterviewService(db *gorm.DB, jobs *JobService, advisor PrepAdvisor) *InterviewService {
	return &InterviewService{DB: db, Jobs: jobs, Advisor: advisor}
}

func (s *InterviewService) CreateInterview(ctx context.Context, userID uint, req *dtos.InterviewCreationRequest) (*models.Interview, error) {
	when, err := req.Schedule.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if _, err := s.Jobs.GetJob(ctx, userID, req.JobID); err != nil {
		return nil, err
	}

	interview := &models.Interview{
		UserID:   userID,
		JobID:    req.JobID,
		DateTime: when,
		Details:  req.Details,
	}
	if err := s.DB.WithContext(ctx).Create(interview).Error; err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}
	zap.S().Named("interviews").Infow("interview scheduled", "user_id", userID, "job_id", req.JobID, "interview_id", interview.ID)
	return interview, nil
}

func (s *InterviewService) ListInterviews(ctx context.Context, userID uint) ([]models.Interview, error) {
	interviews := []models.Interview{}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("list interviews for user %d: %w", userID, err)
	}
	return interviews, nil
}

func (s *InterviewService) GetInterview(ctx context.Context, userID, id uint) (*models.Interview, error) {
	var interview models.Interview
	err := s.DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&interview).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: interview %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get interview %d: %w", id, err)
	}
	return &interview, nil
}

// UpdateInterview applies the fields present in req.
func (s *InterviewService) UpdateInterview(ctx context.Context, userID, id uint, req *dtos.InterviewUpdateRequest) (*models.Interview, error) {
	interview, err := s.GetInterview(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	when, err := req.Schedule.Resolve(&interview.DateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.JobID != nil && *req.JobID != interview.JobID {
		if _, err := s.Jobs.GetJob(ctx, userID, *req.JobID); err != nil {
			return nil, err
		}
		interview.JobID = *req.JobID
	}
	interview.DateTime = when
	if req.Details != nil {
		interview.Details = *req.Details
	}

	if err := s.DB.WithContext(ctx).Save(interview).Error; err != nil {
		return nil, fmt.Errorf("update interview %d: %w", id, err)
	}
	return interview, nil
}

func (s *InterviewService) DeleteInterview(ctx context.Context, userID, id uint) error {
	res := s.DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.Interview{})
	if res.Error != nil {
		return fmt.Errorf("delete interview %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: interview %d", ErrNotFound, id)
	}
	return nil
}

// JobPrep returns preparation content for one of the user's jobs, or
// FallbackPrep when the advisor fails. Only a missing job is an error.
func (s *InterviewService) JobPrep(ctx context.Context, userID, jobID uint) (string, error) {
	job, err := s.Jobs.GetJob(ctx, userID, jobID)
	if err != nil {
		return "", err
	}
	return s.prepFor(ctx, job), nil
}

// GeneratePrep stores preparation content on the interview. A dangling job
// reference is reported as ErrNotFound.
func (s *InterviewService) GeneratePrep(ctx context.Context, userID, id uint) (*models.Interview, error) {
	interview, err := s.GetInterview(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	job, err := s.Jobs.GetJob(ctx, userID, interview.JobID)
	if err != nil {
		return nil, err
	}

	prep := s.prepFor(ctx, job)
	if err := s.DB.WithContext(ctx).Model(interview).Update("prep_tips", prep).Error; err != nil {
		return nil, fmt.Errorf("store prep for interview %d: %w", id, err)
	}
	interview.PrepTips = &prep
	return interview, nil
}

func (s *InterviewService) prepFor(ctx context.Context, job *models.Job) string {
	if s.Advisor == nil {
		return FallbackPrep
	}
	if suggestion := s.Advisor.InterviewPrep(ctx, job); suggestion.OK() {
		return suggestion.Text
	}
	return FallbackPrep
}
