package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"cvmentor/interview-api/internal/config"
)

// AnalyzerService calls the external analysis model with a CV's text content.
// The decoded JSON value is returned as-is; shape validation is the analysis
// lifecycle's job, not the client's. A call-level failure (network, auth,
// timeout, empty response) is returned as an error.
type AnalyzerService interface {
	Analyze(ctx context.Context, cvContent string) (any, error)
}

type analyzerService struct {
	client        *genai.Client
	modelName     string
	timeout       time.Duration
	promptBuilder *PromptBuilder
}

func NewAnalyzerService(cfg config.GeminiConfig) (AnalyzerService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &analyzerService{
		client:        client,
		modelName:     cfg.Model,
		timeout:       cfg.Timeout,
		promptBuilder: NewPromptBuilder(),
	}, nil
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, cvContent string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	temperature := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 2048,
	}

	prompt := a.promptBuilder.BuildCVAnalysisPrompt(cvContent)

	resp, err := a.client.Models.GenerateContent(ctx, a.modelName, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	var decoded any
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &decoded); err != nil {
		// The model answered but not with JSON; hand the raw text back so
		// the lifecycle rejects it as a shape problem, not an outage.
		return text, nil
	}

	return decoded, nil
}
