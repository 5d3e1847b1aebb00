package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/justsurfingit/jobhunt/internal/config"
	"github.com/justsurfingit/jobhunt/internal/metrics"
	"github.com/justsurfingit/jobhunt/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const (
	// DefaultStatus is recorded when the advisor has nothing usable to say.
	DefaultStatus = "Applied"
	// FallbackPrep is returned in place of preparation content the advisor could not produce.
	FallbackPrep = "Unable to fetch prep content due to API error."

	maxDescriptionInPrompt = 500
	maxRawHTML             = 20000
	maxStatusLength        = 64
)

var (
	errAdvisorDisabled  = errors.New("no generative model configured")
	errMalformedSuggest = errors.New("malformed suggestion")
)

// Suggestion is the outcome of one advisor call. Callers that must not fail
// check OK and substitute their own default.
type Suggestion struct {
	Text string
	Err  error
}

func (s Suggestion) OK() bool {
	return s.Err == nil && s.Text != ""
}

// StatusAdvisor proposes an initial status for a new job application.
type StatusAdvisor interface {
	SuggestStatus(ctx context.Context, company, title, role, description string) Suggestion
}

// PrepAdvisor writes interview preparation content for a job.
type PrepAdvisor interface {
	InterviewPrep(ctx context.Context, job *models.Job) Suggestion
}

type LLMService struct {
	Client  llms.Model
	Timeout time.Duration
}

// NewLLMService builds the Gemini client. Without an API key the service is
// still returned, and every suggestion takes the fallback path.
func NewLLMService(ctx context.Context, cfg config.LLMConfig) (*LLMService, error) {
	s := &LLMService{Timeout: cfg.Timeout}
	if cfg.APIKey == "" {
		zap.S().Named("llm").Warn("GEMINI_API_KEY is empty, suggestions will use defaults")
		return s, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	s.Client = llm
	return s, nil
}

// generate makes a single bounded call. The select keeps the bound even if
// the provider client ignores context cancellation.
func (s *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	if s == nil || s.Client == nil {
		return "", errAdvisorDisabled
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// SuggestStatus asks for a short status phrase for a new application.
func (s *LLMService) SuggestStatus(ctx context.Context, company, title, role, description string) Suggestion {
	if description == "" {
		description = "No description provided"
	}
	prompt := fmt.Sprintf(
		"Suggest a status for a job application to %s for the role %s with job title %s. Description: %s. Return a single phrase.",
		company, role, title, truncate(description, maxDescriptionInPrompt),
	)

	text, err := s.generate(ctx, prompt)
	if err == nil {
		text, err = cleanStatus(text)
	}
	if err != nil {
		zap.S().Named("llm").Warnw("status suggestion failed, using default", "company", company, "error", err)
		metrics.IncreaseAdvisorCallsMetric(metrics.AdvisorKindStatus, metrics.AdvisorOutcomeFallback)
		return Suggestion{Err: err}
	}
	metrics.IncreaseAdvisorCallsMetric(metrics.AdvisorKindStatus, metrics.AdvisorOutcomeSuggestion)
	return Suggestion{Text: text}
}

// InterviewPrep asks for advice and five tailored questions for the job.
func (s *LLMService) InterviewPrep(ctx context.Context, job *models.Job) Suggestion {
	description := "No description provided"
	if job.Description != nil && *job.Description != "" {
		description = *job.Description
	}
	prompt := fmt.Sprintf(
		"Provide interview preparation advice and 5 tailored interview questions for a %s role with job title %s at %s. "+
			"Job description: %s. Format as: **Advice:**\n[Advice]\n**Questions:**\n- [Question 1]\n- [Question 2]\n- [Question 3]\n- [Question 4]\n- [Question 5]",
		job.Role, job.Title, job.Company, truncate(description, maxDescriptionInPrompt),
	)

	text, err := s.generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errMalformedSuggest
	}
	if err != nil {
		zap.S().Named("llm").Warnw("interview prep failed, using fallback", "user_id", job.UserID, "job_id", job.JobID, "error", err)
		metrics.IncreaseAdvisorCallsMetric(metrics.AdvisorKindPrep, metrics.AdvisorOutcomeFallback)
		return Suggestion{Err: err}
	}
	metrics.IncreaseAdvisorCallsMetric(metrics.AdvisorKindPrep, metrics.AdvisorOutcomeSuggestion)
	return Suggestion{Text: strings.TrimSpace(text)}
}

// ExtractJobDetails takes raw HTML and returns a structured object
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (string, error) {
	rawHTML = truncate(rawHTML, maxRawHTML)

	const JobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company": "Name of the company (e.g., Google, StartupInc)",
    "job_title": "Job title (e.g., Senior Backend Engineer)",
    "role": "Role family (e.g., Backend, Data, Design)",
    "location": "Job location or 'Remote'",
    "job_description": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "tech_stack": ["Array", "of", "technologies", "mentioned", "e.g., Go, React, AWS"],
    "salary_range": "The salary string if explicitly mentioned (e.g., '$100k - $150k'), otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`
	resp, err := s.generate(ctx, fmt.Sprintf(JobExtractionPrompt, rawHTML))
	if err != nil {
		metrics.IncreaseAdvisorCallsMetric(metrics.AdvisorKindExtract, metrics.AdvisorOutcomeError)
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	metrics.IncreaseAdvisorCallsMetric(metrics.AdvisorKindExtract, metrics.AdvisorOutcomeSuggestion)
	return stripCodeFence(resp), nil
}

// cleanStatus accepts a single short phrase and rejects anything else.
func cleanStatus(text string) (string, error) {
	text = strings.Trim(strings.TrimSpace(text), "\"'*`. ")
	if text == "" || strings.ContainsAny(text, "\n\r") || len(text) > maxStatusLength {
		return "", errMalformedSuggest
	}
	return text, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
