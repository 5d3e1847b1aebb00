package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/models"
	"gorm.io/gorm"
)

type CalendarService struct {
	DB   *gorm.DB
	Jobs *JobService
}

func NewCalendarService(db *gorm.DB, jobs *JobService) *CalendarService {
	return &CalendarService{DB: db, Jobs: jobs}
}

func validEventType(t string) bool {
	return t == models.EventTypeJob || t == models.EventTypeInterview
}

func (s *CalendarService) CreateEvent(ctx context.Context, userID uint, req *dtos.CalendarEventCreationRequest) (*models.CalendarEvent, error) {
	if !validEventType(req.Type) {
		return nil, fmt.Errorf("%w: type must be one of: job, interview", ErrValidation)
	}
	when, err := req.Schedule.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.JobID != nil {
		if _, err := s.Jobs.GetJob(ctx, userID, *req.JobID); err != nil {
			return nil, err
		}
	}

	event := &models.CalendarEvent{
		UserID:   userID,
		Type:     req.Type,
		JobID:    req.JobID,
		DateTime: when,
		Details:  req.Details,
	}
	if err := s.DB.WithContext(ctx).Create(event).Error; err != nil {
		return nil, fmt.Errorf("create calendar event: %w", err)
	}
	return event, nil
}

func (s *CalendarService) ListEvents(ctx context.Context, userID uint) ([]models.CalendarEvent, error) {
	events := []models.CalendarEvent{}
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list calendar events for user %d: %w", userID, err)
	}
	return events, nil
}

func (s *CalendarService) GetEvent(ctx context.Context, userID, id uint) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	err := s.DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: calendar event %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get calendar event %d: %w", id, err)
	}
	return &event, nil
}

func (s *CalendarService) UpdateEvent(ctx context.Context, userID, id uint, req *dtos.CalendarEventUpdateRequest) (*models.CalendarEvent, error) {
	event, err := s.GetEvent(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		if !validEventType(*req.Type) {
			return nil, fmt.Errorf("%w: type must be one of: job, interview", ErrValidation)
		}
		event.Type = *req.Type
	}
	when, err := req.Schedule.Resolve(&event.DateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.JobID != nil && (event.JobID == nil || *event.JobID != *req.JobID) {
		if _, err := s.Jobs.GetJob(ctx, userID, *req.JobID); err != nil {
			return nil, err
		}
		jobID := *req.JobID
		event.JobID = &jobID
	}
	event.DateTime = when
	if req.Details != nil {
		event.Details = *req.Details
	}

	if err := s.DB.WithContext(ctx).Save(event).Error; err != nil {
		return nil, fmt.Errorf("update calendar event %d: %w", id, err)
	}
	return event, nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, userID, id uint) error {
	res := s.DB.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.CalendarEvent{})
	if res.Error != nil {
		return fmt.Errorf("delete calendar event %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: calendar event %d", ErrNotFound, id)
	}
	return nil
}
