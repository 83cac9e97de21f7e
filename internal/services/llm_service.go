package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const maxPromptContent = 20000

type LLMService struct {
	Client llms.Model
}

// NewLLMService returns nil when no API key is configured; callers treat a
// nil service as "LLM features disabled".
func NewLLMService(ctx context.Context, apiKey string) *LLMService {
	if apiKey == "" {
		log.Println("⚠️ GEMINI_API_KEY not set. Job extraction and mail analysis are disabled.")
		return nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		log.Printf("❌ Failed to create Gemini client: %v", err)
		return nil
	}

	return &LLMService{
		Client: llm,
	}
}

// ExtractedJob is the structured form of a scraped job posting.
type ExtractedJob struct {
	ClientName  string `json:"client_name"`
	Title       string `json:"role_title"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	SalaryRange string `json:"salary_range"`
	Description string `json:"description"`
}

const jobExtractionPrompt = `
You are a Job Data Extraction Agent for an overseas placement agency. Analyze the raw HTML/Text of a job posting and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists, and advertisements.
2. Output valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "client_name": "Name of the hiring company",
    "role_title": "Job title",
    "location": "Job location (city, country)",
    "category": "Job category, e.g. nursing care, food service, construction",
    "salary_range": "Salary string if explicitly mentioned, otherwise null",
    "description": "A clean summary of responsibilities and requirements without HTML"
}

If a piece of information is missing, set the value to null. Do not guess.

### RAW CONTENT:
%s
`

// ExtractJobDetails turns raw posting HTML into an ExtractedJob.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (*ExtractedJob, error) {
	rawHTML = clip(rawHTML, maxPromptContent)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
	if err != nil {
		return nil, err
	}
	var job ExtractedJob
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &job); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}
	return &job, nil
}

// InterviewAnalysis is the LLM verdict on an interview mail.
type InterviewAnalysis struct {
	Result  string `json:"result"` // PASSED, FAILED or NO_CHANGE
	Summary string `json:"summary"`
}

const interviewMailPrompt = `
You read emails that employers send to a placement agency about candidate interviews.
The email below is from %s.

Decide whether it reports the outcome of an interview:
- "PASSED" if the candidate passed, was selected or received an offer.
- "FAILED" if the candidate was rejected or not selected.
- "NO_CHANGE" for scheduling, reminders or anything else.

Respond with JSON only: {"result": "...", "summary": "one sentence"}

Subject: %s

%s
`

func (s *LLMService) AnalyzeInterviewEmail(ctx context.Context, clientName, subject, body string) (*InterviewAnalysis, error) {
	body = clip(body, maxPromptContent)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client,
		fmt.Sprintf(interviewMailPrompt, clientName, subject, body),
		llms.WithTemperature(0))
	if err != nil {
		return nil, err
	}
	var out InterviewAnalysis
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &out); err != nil {
		return nil, fmt.Errorf("decode analysis: %w (raw: %s)", err, resp)
	}
	out.Result = strings.ToUpper(strings.TrimSpace(out.Result))
	return &out, nil
}

const identifyInterviewPrompt = `
An employer email refers to one of these interviews:
%s
Subject: %s

%s

Reply with only the number of the interview the email is about, or -1 if it is unclear.
`

// IdentifyInterview picks which candidate (by index) an email is about, or
// -1 when the model cannot tell. An error means the call itself failed.
func (s *LLMService) IdentifyInterview(ctx context.Context, candidates []string, subject, body string) (int, error) {
	body = clip(body, maxPromptContent)
	var list strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&list, "%d. %s\n", i, c)
	}
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client,
		fmt.Sprintf(identifyInterviewPrompt, list.String(), subject, body),
		llms.WithTemperature(0))
	if err != nil {
		return -1, fmt.Errorf("identify interview: %w", err)
	}
	return parseChoice(resp, len(candidates)), nil
}

// clip cuts s to at most n bytes without splitting a UTF-8 sequence.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// parseChoice reads an index reply; anything out of range is -1.
func parseChoice(resp string, n int) int {
	i, err := strconv.Atoi(strings.TrimSpace(stripCodeFence(resp)))
	if err != nil || i < 0 || i >= n {
		return -1
	}
	return i
}

// stripCodeFence removes a ```json ... ``` wrapper models add despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
