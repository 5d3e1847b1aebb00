package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/metrics"
	"github.com/justsurfingit/jobhunt/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxAllocationAttempts bounds the allocate-and-insert retries on a
// uniqueness conflict. Contention is between requests of one user, so the
// retries run back to back.
const maxAllocationAttempts = 3

type JobService struct {
	DB        *gorm.DB
	Allocator *SequenceAllocator
	Advisor   StatusAdvisor
}

func NewJobService(db *gorm.DB, advisor StatusAdvisor) *JobService {
	return &JobService{
		DB:        db,
		Allocator: NewSequenceAllocator(),
		Advisor:   advisor,
	}
}

// CreateJob stores a new job under the next id for the user. The status is
// taken from the request, then the advisor, then DefaultStatus; advisor
// failures never fail the request.
func (s *JobService) CreateJob(ctx context.Context, userID uint, req *dtos.JobCreationRequest) (*models.Job, error) {
	company := strings.TrimSpace(req.Company)
	title := strings.TrimSpace(req.Title)
	role := strings.TrimSpace(req.Role)
	if company == "" || title == "" || role == "" {
		return nil, fmt.Errorf("%w: company, job_title and role are required", ErrValidation)
	}

	if err := userExists(s.DB.WithContext(ctx), userID); err != nil {
		return nil, err
	}

	// The advisor runs before the transaction so no lock is held across the
	// network call.
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = s.suggestStatus(ctx, company, title, role, req.Description)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		job := &models.Job{
			UserID:      userID,
			Company:     company,
			Title:       title,
			Description: req.Description,
			Role:        role,
			Status:      status,
		}

		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			id, err := s.Allocator.Next(tx, userID)
			if err != nil {
				return err
			}
			job.JobID = id
			return tx.Create(job).Error
		})
		if err == nil {
			zap.S().Named("jobs").Infow("job created", "user_id", userID, "job_id", job.JobID, "status", job.Status)
			return job, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create job: %w", err)
		}

		lastErr = err
		metrics.IncreaseAllocationRetryMetric()
		zap.S().Named("jobs").Warnw("job id conflict, retrying", "user_id", userID, "attempt", attempt)
	}

	return nil, fmt.Errorf("%w: no free job id for user %d after %d attempts: %v", ErrConflict, userID, maxAllocationAttempts, lastErr)
}

func (s *JobService) suggestStatus(ctx context.Context, company, title, role string, description *string) string {
	if s.Advisor == nil {
		return DefaultStatus
	}
	desc := ""
	if description != nil {
		desc = *description
	}
	if suggestion := s.Advisor.SuggestStatus(ctx, company, title, role, desc); suggestion.OK() {
		return suggestion.Text
	}
	return DefaultStatus
}

// ListJobs returns the user's jobs ordered by job id.
func (s *JobService) ListJobs(ctx context.Context, userID uint) ([]models.Job, error) {
	jobs := []models.Job{}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("job_id").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs for user %d: %w", userID, err)
	}
	return jobs, nil
}

// GetJob returns ErrNotFound when the user has no job with that id.
func (s *JobService) GetJob(ctx context.Context, userID, jobID uint) (*models.Job, error) {
	return getJob(s.DB.WithContext(ctx), userID, jobID)
}

func getJob(db *gorm.DB, userID, jobID uint) (*models.Job, error) {
	var job models.Job
	err := db.Where("user_id = ? AND job_id = ?", userID, jobID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: job %d", ErrNotFound, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("get job %d: %w", jobID, err)
	}
	return &job, nil
}

// UpdateStatus replaces the status and leaves every other field alone.
func (s *JobService) UpdateStatus(ctx context.Context, userID, jobID uint, status string) (*models.Job, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}

	res := s.DB.WithContext(ctx).Model(&models.Job{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update status of job %d: %w", jobID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: job %d", ErrNotFound, jobID)
	}
	return s.GetJob(ctx, userID, jobID)
}

// DeleteJob removes the job. Interviews and calendar events that reference
// it are kept, and its id is not handed out again.
func (s *JobService) DeleteJob(ctx context.Context, userID, jobID uint) error {
	res := s.DB.WithContext(ctx).Where("user_id = ? AND job_id = ?", userID, jobID).Delete(&models.Job{})
	if res.Error != nil {
		return fmt.Errorf("delete job %d: %w", jobID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: job %d", ErrNotFound, jobID)
	}
	zap.S().Named("jobs").Infow("job deleted", "user_id", userID, "job_id", jobID)
	return nil
}
