package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cvmentor/interview-api/internal/models"
	"cvmentor/interview-api/internal/repositories"
)

// AnalysisLifecycleService owns the creation rules for analysis results:
// at most one per CV, idempotent re-requests, force replacement, and
// resolution of concurrent-create races through the storage unique constraint.
type AnalysisLifecycleService interface {
	// RequestAnalysis returns the CV's analysis, creating it if needed. The
	// returned bool is true when this call created a fresh result, false when
	// an existing one was returned.
	RequestAnalysis(ctx context.Context, userID, cvID uuid.UUID, force bool) (*models.AnalysisResult, bool, error)
	GetAnalysis(userID, cvID uuid.UUID) (*models.AnalysisResult, error)
}

type analysisLifecycleService struct {
	cvRepo       repositories.CVRepository
	analysisRepo repositories.AnalysisRepository
	analyzer     AnalyzerService
}

func NewAnalysisLifecycleService(
	cvRepo repositories.CVRepository,
	analysisRepo repositories.AnalysisRepository,
	analyzer AnalyzerService,
) AnalysisLifecycleService {
	return &analysisLifecycleService{
		cvRepo:       cvRepo,
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
	}
}

// The five fields the analysis service must return before anything is persisted.
var requiredAnalysisFields = []string{"skills", "summary", "experience_level", "ai_score", "suggestions"}

// RequestAnalysis implements AnalysisLifecycleService.
func (s *analysisLifecycleService) RequestAnalysis(ctx context.Context, userID, cvID uuid.UUID, force bool) (*models.AnalysisResult, bool, error) {
	cv, err := s.cvRepo.FindByIDForUser(cvID, userID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.analysisRepo.FindByCVID(cv.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil && !force {
		return existing, false, nil
	}

	raw, err := s.analyzer.Analyze(ctx, cv.Content)
	if err != nil {
		log.Printf("❌ CV analysis failed for %s: %v\n", cv.ID, err)
		return nil, false, fmt.Errorf("%w: %v", models.ErrAnalysisUnavailable, err)
	}

	profile, ok := raw.(map[string]any)
	if !ok {
		log.Printf("❌ Analysis service returned non-object result for %s\n", cv.ID)
		return nil, false, models.ErrInvalidAnalysisShape
	}

	for _, field := range requiredAnalysisFields {
		if _, present := profile[field]; !present {
			log.Printf("❌ Analysis result for %s is missing %q\n", cv.ID, field)
			return nil, false, fmt.Errorf("%w: missing %s", models.ErrIncompleteAnalysisShape, field)
		}
	}

	// Best-effort removal of the old result when forcing. A failed delete
	// does not block the create; the race below covers whatever happens in
	// between.
	if existing != nil && force {
		if err := s.analysisRepo.Delete(existing.ID); err != nil && !errors.Is(err, models.ErrNotFound) {
			log.Printf("⚠️  Failed to delete previous analysis for %s: %v\n", cv.ID, err)
		}
	}

	result := &models.AnalysisResult{
		ID:              uuid.New(),
		CVID:            cv.ID,
		Summary:         stringField(profile, "summary"),
		Skills:          stringSliceField(profile, "skills"),
		ExperienceLevel: stringField(profile, "experience_level"),
		AIScore:         numberField(profile, "ai_score"),
		Suggestions:     stringField(profile, "suggestions"),
	}

	if err := s.analysisRepo.Create(result); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request won the race. That is a success for us
			// too: return the row that exists now.
			winner, findErr := s.analysisRepo.FindByCVID(cv.ID)
			if findErr != nil {
				return nil, false, fmt.Errorf("analysis exists but could not be loaded: %w", findErr)
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	return result, true, nil
}

// GetAnalysis implements AnalysisLifecycleService.
func (s *analysisLifecycleService) GetAnalysis(userID, cvID uuid.UUID) (*models.AnalysisResult, error) {
	return s.analysisRepo.FindByCVIDForUser(cvID, userID)
}

func stringField(profile map[string]any, key string) string {
	if v, ok := profile[key].(string); ok {
		return v
	}
	return ""
}

func numberField(profile map[string]any, key string) float64 {
	if v, ok := profile[key].(float64); ok {
		return v
	}
	return 0
}

func stringSliceField(profile map[string]any, key string) []string {
	items, ok := profile[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
