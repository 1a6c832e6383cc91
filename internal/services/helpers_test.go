package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cvmentor/interview-api/internal/config"
	"cvmentor/interview-api/internal/models"
)

// setupTestDB opens an in-memory sqlite database with the same gorm settings
// the real database uses, most importantly TranslateError, so the unique
// constraint on analysis_results.cv_id behaves like it does in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCV(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.CV {
	t.Helper()

	cv := &models.CV{
		ID:               uuid.New(),
		UserID:           userID,
		Filename:         "cv_test.pdf",
		OriginalFileName: "resume.pdf",
		FilePath:         "/tmp/cv_test.pdf",
		Content:          "Five years of backend development with Go and Postgres.",
	}
	require.NoError(t, db.Create(cv).Error)
	return cv
}

func seedAnalysis(t *testing.T, db *gorm.DB, cvID uuid.UUID) *models.AnalysisResult {
	t.Helper()

	result := &models.AnalysisResult{
		ID:              uuid.New(),
		CVID:            cvID,
		Summary:         "Backend engineer with solid fundamentals.",
		Skills:          []string{"Go", "PostgreSQL"},
		ExperienceLevel: "mid",
		AIScore:         72,
		Suggestions:     "Quantify project impact.",
	}
	require.NoError(t, db.Create(result).Error)
	return result
}

// stubAnalyzer returns a canned result. onAnalyze, when set, runs before the
// result is returned; tests use it to interleave writes mid-analysis.
type stubAnalyzer struct {
	result    any
	err       error
	calls     int
	onAnalyze func()
}

func (s *stubAnalyzer) Analyze(ctx context.Context, cvContent string) (any, error) {
	s.calls++
	if s.onAnalyze != nil {
		s.onAnalyze()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubQuestionService struct {
	specs []QuestionSpec
	err   error
	calls int
}

func (s *stubQuestionService) GenerateQuestions(ctx context.Context, analysis *models.AnalysisResult) ([]QuestionSpec, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.specs, nil
}

func validProfile() map[string]any {
	return map[string]any{
		"summary":          "Backend engineer with solid fundamentals.",
		"skills":           []any{"Go", "PostgreSQL"},
		"experience_level": "mid",
		"ai_score":         72.0,
		"suggestions":      "Quantify project impact.",
	}
}

func validSpecs(n int) []QuestionSpec {
	specs := make([]QuestionSpec, 0, n)
	for i := 0; i < n; i++ {
		specs = append(specs, QuestionSpec{
			Question: fmt.Sprintf("Question %d", i+1),
			Choices: QuestionChoices{
				A: "Option A",
				B: "Option B",
				C: "Option C",
				D: "Option D",
			},
			Correct: "A",
		})
	}
	return specs
}
