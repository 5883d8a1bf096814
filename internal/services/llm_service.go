package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/HireNest/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const maxExtractionInput = 20000

type LLMService struct {
	Client llms.Model
	Logger *zap.Logger
}

// NewLLMService creates a Gemini client. An empty apiKey means the feature
// is not configured; callers treat a nil *LLMService as disabled.
func NewLLMService(ctx context.Context, apiKey, model string, logger *zap.Logger) (*LLMService, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm, Logger: logger}, nil
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and turn it into a draft job listing.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "description": "A clean summary of the role and its responsibilities. Remove HTML tags.",
    "requirements": "Skills, experience and qualifications asked for, as plain text.",
    "location": "Job location or 'Remote'",
    "salaryRange": {"min": 0, "max": 0, "currency": "INR or USD"}
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractJobDetails turns a pasted job posting into a JSON object shaped like
// a job creation request.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (string, error) {
	if len(rawHTML) > maxExtractionInput {
		rawHTML = rawHTML[:maxExtractionInput]
	}
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
	if err != nil {
		return "", err
	}
	return extractJSONObject(resp)
}

const matchReasonPrompt = `You are a career advisor on a job board. In one short sentence (max 25 words), tell the candidate why this job fits them. Do not invent facts.

Candidate skills: %s
Preferred job type: %s
Preferred location: %s

Job title: %s
Job location: %s
Job requirements: %s
`

// ExplainMatch writes a one-line reason why job suits seeker.
func (s *LLMService) ExplainMatch(ctx context.Context, seeker *models.JobSeeker, job *models.Job) (string, error) {
	prompt := fmt.Sprintf(matchReasonPrompt,
		strings.Join(seeker.Skills, ", "),
		seeker.JobPreferences.PreferredJobType,
		seeker.JobPreferences.PreferredLocation,
		job.Title,
		job.Location,
		truncate(job.Requirements, 1000),
	)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return "", err
	}
	reason := strings.TrimSpace(resp)
	if reason == "" {
		return "", errors.New("empty response")
	}
	if i := strings.IndexByte(reason, '\n'); i >= 0 {
		reason = strings.TrimSpace(reason[:i])
	}
	return reason, nil
}

// extractJSONObject returns the outermost {...} in resp; models sometimes wrap
// JSON in prose or code fences despite the prompt.
func extractJSONObject(resp string) (string, error) {
	start := strings.Index(resp, "{")
	end := strings.LastIndex(resp, "}")
	if start == -1 || end < start {
		return "", errors.New("no JSON found in response")
	}
	return resp[start : end+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
