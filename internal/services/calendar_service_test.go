package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarEvents(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db, nil)
	calendar := NewCalendarService(db, jobs)
	alice := mustRegister(t, db, "alice")
	bob := mustRegister(t, db, "bob")
	ctx := context.Background()

	job := mustCreateJob(t, jobs, alice.ID, "Acme")

	note, err := calendar.CreateEvent(ctx, alice.ID, &dtos.CalendarEventCreationRequest{
		Type: models.EventTypeJob, Schedule: dtos.Schedule{Date: "2025-04-02"}, Details: "Follow up",
	})
	require.NoError(t, err)
	assert.Nil(t, note.JobID)

	linked, err := calendar.CreateEvent(ctx, alice.ID, &dtos.CalendarEventCreationRequest{
		Type: models.EventTypeInterview, JobID: &job.JobID, Schedule: dtos.Schedule{DateTime: "2025-04-03 09:00"},
	})
	require.NoError(t, err)
	require.NotNil(t, linked.JobID)
	assert.Equal(t, job.JobID, *linked.JobID)

	missing := uint(999)
	_, err = calendar.CreateEvent(ctx, alice.ID, &dtos.CalendarEventCreationRequest{
		Type: models.EventTypeJob, JobID: &missing, Schedule: dtos.Schedule{Date: "2025-04-02"},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = calendar.CreateEvent(ctx, alice.ID, &dtos.CalendarEventCreationRequest{
		Type: "party", Schedule: dtos.Schedule{Date: "2025-04-02"},
	})
	assert.ErrorIs(t, err, ErrValidation)

	list, err := calendar.ListEvents(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = calendar.ListEvents(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = calendar.GetEvent(ctx, bob.ID, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEvent(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db, nil)
	calendar := NewCalendarService(db, jobs)
	user := mustRegister(t, db, "alice")
	ctx := context.Background()

	job := mustCreateJob(t, jobs, user.ID, "Acme")
	event, err := calendar.CreateEvent(ctx, user.ID, &dtos.CalendarEventCreationRequest{
		Type: models.EventTypeJob, Schedule: dtos.Schedule{Date: "2025-04-02"},
	})
	require.NoError(t, err)

	missing := uint(7)
	_, err = calendar.UpdateEvent(ctx, user.ID, event.ID, &dtos.CalendarEventUpdateRequest{JobID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)

	bad := "party"
	_, err = calendar.UpdateEvent(ctx, user.ID, event.ID, &dtos.CalendarEventUpdateRequest{Type: &bad})
	assert.ErrorIs(t, err, ErrValidation)

	interviewType := models.EventTypeInterview
	details := "Panel"
	updated, err := calendar.UpdateEvent(ctx, user.ID, event.ID, &dtos.CalendarEventUpdateRequest{
		Type: &interviewType, JobID: &job.JobID, Details: &details,
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventTypeInterview, updated.Type)
	require.NotNil(t, updated.JobID)
	assert.Equal(t, job.JobID, *updated.JobID)
	assert.Equal(t, "Panel", updated.Details)
	assert.True(t, updated.DateTime.Equal(event.DateTime))

	require.NoError(t, calendar.DeleteEvent(ctx, user.ID, event.ID))
	assert.ErrorIs(t, calendar.DeleteEvent(ctx, user.ID, event.ID), ErrNotFound)
}
