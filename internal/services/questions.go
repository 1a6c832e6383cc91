package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"cvmentor/interview-api/internal/config"
	"cvmentor/interview-api/internal/models"
)

// QuestionSpec is one generated multiple-choice item as returned by the
// question service. Individual specs may be malformed; callers decide what
// to do with those.
type QuestionSpec struct {
	Question string          `json:"question"`
	Choices  QuestionChoices `json:"choices"`
	Correct  string          `json:"correct"`
}

type QuestionChoices struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Valid reports whether the spec can be persisted: it needs question text and
// a correct key naming one of the four choices.
func (q QuestionSpec) Valid() bool {
	switch q.Correct {
	case "A", "B", "C", "D":
		return q.Question != ""
	}
	return false
}

// QuestionService generates interview questions from an analysis profile.
type QuestionService interface {
	GenerateQuestions(ctx context.Context, analysis *models.AnalysisResult) ([]QuestionSpec, error)
}

type questionService struct {
	client        *resty.Client
	apiKey        string
	model         string
	apiURL        string
	promptBuilder *PromptBuilder
}

func NewQuestionService(cfg config.OpenAIConfig) QuestionService {
	client := resty.New().SetTimeout(cfg.Timeout)

	return &questionService{
		client:        client,
		apiKey:        cfg.APIKey,
		model:         cfg.Model,
		apiURL:        cfg.APIURL,
		promptBuilder: NewPromptBuilder(),
	}
}

// GenerateQuestions implements QuestionService. Call-level failures come back
// wrapping models.ErrQuestionServiceUnavailable; a response that cannot be
// parsed into a non-empty question list wraps models.ErrInvalidQuestionPayload.
func (s *questionService) GenerateQuestions(ctx context.Context, analysis *models.AnalysisResult) ([]QuestionSpec, error) {
	prompt := s.promptBuilder.BuildInterviewQuestionsPrompt(
		analysis.Summary,
		analysis.Skills,
		analysis.ExperienceLevel,
		analysis.Suggestions,
	)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are a professional technical interviewer. Always respond with valid JSON only."},
				{"role": "user", "content": prompt},
			},
			"temperature": 0.7,
			"max_tokens":  2000,
		}).
		Post(s.apiURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrQuestionServiceUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", models.ErrQuestionServiceUnavailable, resp.StatusCode())
	}

	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	return ParseQuestionSpecs(content)
}

// ParseQuestionSpecs decodes the model's answer into question specs. Split
// out from the HTTP call so the parsing contract is testable on its own.
func ParseQuestionSpecs(content string) ([]QuestionSpec, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty completion", models.ErrInvalidQuestionPayload)
	}

	var specs []QuestionSpec
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &specs); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidQuestionPayload, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no questions generated", models.ErrInvalidQuestionPayload)
	}

	return specs, nil
}
