package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmentor/interview-api/internal/config"
	"cvmentor/interview-api/internal/models"
)

func testAnalysis() *models.AnalysisResult {
	return &models.AnalysisResult{
		Summary:         "Backend engineer with solid fundamentals.",
		Skills:          []string{"Go", "PostgreSQL"},
		ExperienceLevel: "mid",
		Suggestions:     "Quantify project impact.",
	}
}

func questionServiceAgainst(url string) QuestionService {
	return NewQuestionService(config.OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-test",
		APIURL:  url,
		Timeout: 5 * time.Second,
	})
}

func TestGenerateQuestions(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "[{\"question\":\"What does a mutex protect against?\",\"choices\":{\"A\":\"deadlocks\",\"B\":\"data races\",\"C\":\"panics\",\"D\":\"leaks\"},\"correct\":\"B\"}]"}}]
		}`))
	}))
	defer server.Close()

	specs, err := questionServiceAgainst(server.URL).GenerateQuestions(context.Background(), testAnalysis())
	require.NoError(t, err)

	require.Len(t, specs, 1)
	assert.Equal(t, "What does a mutex protect against?", specs[0].Question)
	assert.Equal(t, "B", specs[0].Correct)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-test", gotBody["model"])
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestGenerateQuestionsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := questionServiceAgainst(server.URL).GenerateQuestions(context.Background(), testAnalysis())
	assert.ErrorIs(t, err, models.ErrQuestionServiceUnavailable)
}

func TestGenerateQuestionsUnreachableUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := questionServiceAgainst(server.URL).GenerateQuestions(context.Background(), testAnalysis())
	assert.ErrorIs(t, err, models.ErrQuestionServiceUnavailable)
}

func TestGenerateQuestionsMalformedCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "Sorry, I cannot help with that."}}]}`))
	}))
	defer server.Close()

	_, err := questionServiceAgainst(server.URL).GenerateQuestions(context.Background(), testAnalysis())
	assert.ErrorIs(t, err, models.ErrInvalidQuestionPayload)
}
