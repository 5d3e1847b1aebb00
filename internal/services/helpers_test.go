package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justsurfingit/jobhunt/internal/config"
	"github.com/justsurfingit/jobhunt/internal/database"
	"github.com/justsurfingit/jobhunt/internal/dtos"
	"github.com/justsurfingit/jobhunt/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(config.DatabaseConfig{Type: config.DatabaseSQLite, URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestUserService(db *gorm.DB) *UserService {
	s := NewUserService(db)
	s.Cost = bcrypt.MinCost
	return s
}

func mustRegister(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user, err := newTestUserService(db).Register(context.Background(), &dtos.CredentialsRequest{Username: username, Password: "secret"})
	require.NoError(t, err)
	return user
}

func mustCreateJob(t *testing.T, jobs *JobService, userID uint, company string) *models.Job {
	t.Helper()
	job, err := jobs.CreateJob(context.Background(), userID, &dtos.JobCreationRequest{
		Company: company,
		Title:   "Backend Engineer",
		Role:    "Backend",
	})
	require.NoError(t, err)
	return job
}

// fakeModel answers every prompt with reply, or fails with err. A positive
// delay is slept without watching the context.
type fakeModel struct {
	reply string
	err   error
	delay time.Duration
	calls atomic.Int32
	// prompt is the text of the last request.
	prompt string
}

var _ llms.Model = (*fakeModel)(nil)

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls.Add(1)
	for _, m := range messages {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				f.prompt = text.Text
			}
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func newFakeLLM(reply string, err error) (*LLMService, *fakeModel) {
	m := &fakeModel{reply: reply, err: err}
	return &LLMService{Client: m, Timeout: time.Second}, m
}

var errProvider = errors.New("provider exploded")
